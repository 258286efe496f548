package queries

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

type GetOverbookedVehiclesQueryHandler struct {
	users   ports.UserRepository
	orders  ports.OrderRepository
	tracker services.CapacityTracker
}

func NewGetOverbookedVehiclesQueryHandler(
	users ports.UserRepository,
	orders ports.OrderRepository,
) GetOverbookedVehiclesQueryHandler {
	return GetOverbookedVehiclesQueryHandler{
		users:   users,
		orders:  orders,
		tracker: services.NewCapacityTracker(),
	}
}

// Handle walks the whole fleet against one read of the active orders.
func (h GetOverbookedVehiclesQueryHandler) Handle(
	ctx context.Context,
	query GetOverbookedVehiclesQuery,
) ([]VehicleCapacityResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	fleet, err := h.users.GetAllTransporters(ctx)
	if err != nil {
		return nil, err
	}
	active, err := h.orders.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	overbooked := make([]VehicleCapacityResponse, 0)
	for _, owner := range fleet {
		for _, v := range owner.Vehicles() {
			capacity := h.tracker.Remaining(v, active)
			if capacity.IsOverbooked() {
				overbooked = append(overbooked, newVehicleCapacityResponse(owner, v, capacity))
			}
		}
	}
	return overbooked, nil
}
