package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// PostOrderCommandHandler creates an open order in status pending.
type PostOrderCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
}

func NewPostOrderCommandHandler(uowFactory UoWFactory, geocoder ports.Geocoder) PostOrderCommandHandler {
	return PostOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

func (h PostOrderCommandHandler) Handle(ctx context.Context, cmd PostOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pickup, delivery, err := resolveRoute(ctx, h.geocoder, cmd.Pickup(), cmd.Delivery())
	if err != nil {
		return err
	}

	aggregate, err := order.NewPostedOrder(cmd.OrderID(), cmd.OrdererID(), pickup, delivery, cmd.Cargo(),
		cmd.Budget(), cmd.Currency(), cmd.Notes(), time.Now())
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

	if err = ensureOrderer(ctx, uow.UserRepository(), cmd.OrdererID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
