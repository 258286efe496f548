package queries

import (
	"context"

	"freight/internal/core/domain/model/user"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

type GetVehicleCapacityQueryHandler struct {
	users   ports.UserRepository
	orders  ports.OrderRepository
	tracker services.CapacityTracker
}

func NewGetVehicleCapacityQueryHandler(
	users ports.UserRepository,
	orders ports.OrderRepository,
) GetVehicleCapacityQueryHandler {
	return GetVehicleCapacityQueryHandler{
		users:   users,
		orders:  orders,
		tracker: services.NewCapacityTracker(),
	}
}

func (h GetVehicleCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetVehicleCapacityQuery,
) (VehicleCapacityResponse, error) {
	if err := query.Validate(); err != nil {
		return VehicleCapacityResponse{}, err
	}

	owner, err := h.users.GetByVehicle(ctx, query.VehicleID())
	if err != nil {
		return VehicleCapacityResponse{}, err
	}
	vehicle, err := owner.FindVehicle(query.VehicleID())
	if err != nil {
		return VehicleCapacityResponse{}, err
	}

	active, err := h.orders.GetActiveByVehicle(ctx, vehicle.ID())
	if err != nil {
		return VehicleCapacityResponse{}, err
	}

	return newVehicleCapacityResponse(owner, vehicle, h.tracker.Remaining(vehicle, active)), nil
}

func newVehicleCapacityResponse(owner *user.User, v *user.Vehicle, c services.Capacity) VehicleCapacityResponse {
	return VehicleCapacityResponse{
		VehicleID:       v.ID(),
		TransporterID:   owner.ID(),
		LicensePlate:    v.LicensePlate(),
		MaxWeight:       v.MaxWeight(),
		MaxVolume:       v.MaxVolume(),
		RemainingWeight: c.RemainingWeight,
		RemainingVolume: c.RemainingVolume,
		AssignedOrders:  newOrderViews(c.AssignedOrders),
		Overbooked:      c.IsOverbooked(),
	}
}
