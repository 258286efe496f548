package services

import (
	"errors"
	"math"
	"sort"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
)

// MatchRequest describes the shipment a vehicle is searched for.
type MatchRequest struct {
	Cargo          cargo.Cargo
	Pickup         kernel.Coordinate
	Delivery       kernel.Coordinate
	SearchRadiusKm float64
}

// Match is an eligible, priced vehicle.
type Match struct {
	Vehicle            *user.Vehicle
	Transporter        *user.User
	Price              float64
	DistanceKm         float64
	ApproachDistanceKm float64
	Capacity           Capacity
}

// AvailableOrder is a pending order a vehicle could take, with the price its tariff would quote.
type AvailableOrder struct {
	Order          *order.Order
	DistanceKm     float64
	EstimatedPrice float64
}

// VehicleMatcher filters a fleet down to the vehicles that can carry a cargo
// and ranks them by price.
//
// A vehicle is eligible when all of these hold:
//   - it is available
//   - it is refrigerated if the cargo requires it
//   - the cargo fits its static limits
//   - the cargo fits what its active orders leave free
//   - its distance to the pickup point is within the search radius
//
// Having no eligible vehicle is a normal outcome and yields an empty slice.
type VehicleMatcher struct {
	pricing  PricingEngine
	capacity CapacityTracker
}

func NewVehicleMatcher(pricing PricingEngine, capacity CapacityTracker) VehicleMatcher {
	return VehicleMatcher{pricing: pricing, capacity: capacity}
}

// FindMatches evaluates every vehicle of every transporter in fleet order and
// returns the eligible ones sorted by ascending price. Ties keep fleet order.
// activeOrders must be a fresh read of the orders that may consume capacity.
func (m VehicleMatcher) FindMatches(req MatchRequest, fleet []*user.User, activeOrders []*order.Order) ([]Match, error) {
	if err := errors.Join(
		req.Cargo.Validate(),
		req.Pickup.Validate(),
		req.Delivery.Validate(),
		validateDistance("searchRadiusKm", req.SearchRadiusKm),
	); err != nil {
		return nil, err
	}

	distanceKm := req.Pickup.DistanceTo(req.Delivery)
	matches := []Match{}

	for _, transporter := range fleet {
		if transporter.Validate() != nil || !transporter.IsTransporter() {
			continue
		}

		for _, vehicle := range transporter.Vehicles() {
			match, ok, err := m.evaluate(req, distanceKm, transporter, vehicle, activeOrders)
			if err != nil {
				return nil, err
			}
			if ok {
				matches = append(matches, match)
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Price < matches[j].Price
	})

	return matches, nil
}

func (m VehicleMatcher) evaluate(
	req MatchRequest,
	distanceKm float64,
	transporter *user.User,
	vehicle *user.Vehicle,
	activeOrders []*order.Order,
) (Match, bool, error) {
	if !vehicle.IsAvailable() ||
		!vehicle.SatisfiesRequirements(req.Cargo) ||
		!vehicle.FitsStaticCapacity(req.Cargo) {
		return Match{}, false, nil
	}

	capacity := m.capacity.Remaining(vehicle, activeOrders)
	if !capacity.CanCarry(req.Cargo) {
		return Match{}, false, nil
	}

	approachKm := vehicle.Coordinate().DistanceTo(req.Pickup)
	if approachKm > req.SearchRadiusKm {
		return Match{}, false, nil
	}

	price, err := m.pricing.Calculate(distanceKm, approachKm, req.Cargo, vehicle.Tariff())
	if err != nil {
		return Match{}, false, err
	}

	return Match{
		Vehicle:            vehicle,
		Transporter:        transporter,
		Price:              price,
		DistanceKm:         distanceKm,
		ApproachDistanceKm: approachKm,
		Capacity:           capacity,
	}, true, nil
}

// FindAvailableOrders lists the pending orders the vehicle could take, closest
// pickup first. maxDistanceKm ≤ 0 disables the distance filter. Orders whose
// pickup is not geocoded sort last and are dropped when a distance limit is set.
func (m VehicleMatcher) FindAvailableOrders(
	vehicle *user.Vehicle,
	pending []*order.Order,
	activeOrders []*order.Order,
	maxDistanceKm float64,
) ([]AvailableOrder, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	capacity := m.capacity.Remaining(vehicle, activeOrders)
	available := []AvailableOrder{}

	for _, o := range pending {
		if o.Status() != order.Pending {
			continue
		}
		c := o.Cargo()
		if !vehicle.SatisfiesRequirements(c) || !vehicle.FitsStaticCapacity(c) || !capacity.CanCarry(c) {
			continue
		}

		distance := math.MaxFloat64
		if pickup, err := o.Pickup().Coordinate(); err == nil {
			distance = vehicle.Coordinate().DistanceTo(pickup)
		}
		if maxDistanceKm > 0 && distance > maxDistanceKm {
			continue
		}

		approach := distance
		if approach == math.MaxFloat64 {
			approach = 0
		}
		price, err := m.pricing.Calculate(o.DistanceKm(), approach, c, vehicle.Tariff())
		if err != nil {
			return nil, err
		}

		available = append(available, AvailableOrder{Order: o, DistanceKm: distance, EstimatedPrice: price})
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].DistanceKm < available[j].DistanceKm
	})

	return available, nil
}
