package queries

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// GetAvailableOrdersQueryHandler builds the transporter's view of open orders.
//
// With a distance limit, pending orders are pre-selected by the geohash cells
// around the vehicle and then filtered by exact distance. Without one, or when
// the limit is too large for a cell lookup, every pending order is considered.
type GetAvailableOrdersQueryHandler struct {
	users   ports.UserRepository
	orders  ports.OrderRepository
	matcher services.VehicleMatcher
}

func NewGetAvailableOrdersQueryHandler(
	users ports.UserRepository,
	orders ports.OrderRepository,
) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{
		users:   users,
		orders:  orders,
		matcher: services.NewVehicleMatcher(services.NewPricingEngine(), services.NewCapacityTracker()),
	}
}

func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	owner, err := h.users.GetByVehicle(ctx, query.VehicleID())
	if err != nil {
		return nil, err
	}
	vehicle, err := owner.FindVehicle(query.VehicleID())
	if err != nil {
		return nil, err
	}

	var pending []*order.Order
	if cells := vehicle.Coordinate().SearchCells(query.MaxDistanceKm()); cells != nil {
		pending, err = h.orders.GetPendingInCells(ctx, cells)
	} else {
		pending, err = h.orders.GetByStatus(ctx, order.Pending)
	}
	if err != nil {
		return nil, err
	}

	active, err := h.orders.GetActiveByVehicle(ctx, vehicle.ID())
	if err != nil {
		return nil, err
	}

	available, err := h.matcher.FindAvailableOrders(vehicle, pending, active, query.MaxDistanceKm())
	if err != nil {
		return nil, err
	}

	response := make([]GetAvailableOrdersQueryResponse, 0, len(available))
	for _, a := range available {
		response = append(response, GetAvailableOrdersQueryResponse{
			Order:          newOrderView(a.Order),
			DistanceKm:     a.DistanceKm,
			EstimatedPrice: a.EstimatedPrice,
		})
	}
	return response, nil
}
