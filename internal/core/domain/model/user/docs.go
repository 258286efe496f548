// Package user models the marketplace participants and the fleet they own.
//
// The package includes:
//   - User: the aggregate root for orderers and transporters
//   - Vehicle: an entity owned by exactly one transporter, carrying capacity
//     limits, capability flags, availability, position and a Tariff
//   - Tariff: the pricing parameters a vehicle quotes with
//
// Key business rules:
//   - Only transporters own vehicles
//   - Vehicle capacity limits and tariff rates are positive / non-negative
//   - A vehicle id is unique within its owner
package user
