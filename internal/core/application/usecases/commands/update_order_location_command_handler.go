package commands

import (
	"context"
	"time"

	"freight/internal/core/ports"
)

// UpdateOrderLocationCommandHandler stores a live tracking position. The
// timestamp is assigned here, never taken from the client.
type UpdateOrderLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	geocoder   ports.Geocoder
}

func NewUpdateOrderLocationCommandHandler(
	uowFactory OrderUoWFactory,
	geocoder ports.Geocoder,
) UpdateOrderLocationCommandHandler {
	return UpdateOrderLocationCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

func (h UpdateOrderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateOrderLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := resolveLocation(ctx, h.geocoder, cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateLocation(location, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
