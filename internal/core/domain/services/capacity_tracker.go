package services

import (
	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
)

// Capacity is the live load state of a vehicle.
type Capacity struct {
	RemainingWeight float64
	RemainingVolume float64
	AssignedOrders  []*order.Order
}

// CanCarry reports whether the cargo fits into what is left.
func (c Capacity) CanCarry(load cargo.Cargo) bool {
	return load.Weight() <= c.RemainingWeight && load.Volume() <= c.RemainingVolume
}

// IsOverbooked is true when active orders exceed the vehicle limits.
func (c Capacity) IsOverbooked() bool {
	return c.RemainingWeight < 0 || c.RemainingVolume < 0
}

// CapacityTracker derives remaining capacity from the active orders assigned to a vehicle.
// Orders in accepted, pickup and in_transit consume capacity; everything else is ignored.
//
// Callers pass a fresh order set on every call. Nothing is cached here.
type CapacityTracker struct{}

func NewCapacityTracker() CapacityTracker {
	return CapacityTracker{}
}

// Remaining computes the capacity left on the vehicle. An unresolved (nil)
// vehicle has zero capacity and no assigned orders, so it can never be booked.
func (CapacityTracker) Remaining(vehicle *user.Vehicle, orders []*order.Order) Capacity {
	if vehicle.Validate() != nil {
		return Capacity{}
	}

	capacity := Capacity{
		RemainingWeight: vehicle.MaxWeight(),
		RemainingVolume: vehicle.MaxVolume(),
		AssignedOrders:  []*order.Order{},
	}
	for _, o := range orders {
		if o == nil || !o.ConsumesCapacityOf(vehicle.ID()) {
			continue
		}
		capacity.RemainingWeight -= o.Cargo().Weight()
		capacity.RemainingVolume -= o.Cargo().Volume()
		capacity.AssignedOrders = append(capacity.AssignedOrders, o)
	}

	return capacity
}
