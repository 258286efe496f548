package queries

import (
	"context"

	"freight/internal/core/ports"
)

type GetUserOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetUserOrdersQueryHandler(orders ports.OrderRepository) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{orders: orders}
}

func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.GetByUser(ctx, query.UserID(), query.Role())
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
