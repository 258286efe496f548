// Package services holds the domain services of the freight marketplace:
// logic that spans users, vehicles and orders and does not belong to a
// single aggregate.
//
// The package includes:
//   - PricingEngine: tariff based trip pricing
//   - CapacityTracker: live remaining capacity of a vehicle from its active orders
//   - VehicleMatcher: eligibility filtering and price ranking of a fleet, plus the
//     reverse view of pending orders a vehicle could take
//
// All services are pure and synchronous. Loading the fleet and the order set is
// the caller's job.
package services
