package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
)

// AcceptProposedPriceCommandHandler turns a proposal into a booking. The
// proposing vehicle must still have room for the cargo; otherwise the order
// stays in negotiation and ErrVehicleCapacityExceeded is returned.
type AcceptProposedPriceCommandHandler struct {
	uowFactory UoWFactory
}

func NewAcceptProposedPriceCommandHandler(uowFactory UoWFactory) AcceptProposedPriceCommandHandler {
	return AcceptProposedPriceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AcceptProposedPriceCommandHandler) Handle(ctx context.Context, cmd AcceptProposedPriceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	vehicleID := aggregate.VehicleID()
	if aggregate.ProposedPrice() == nil || vehicleID == nil {
		return order.ErrNoProposedPrice
	}

	_, vehicle, err := findVehicle(ctx, uow.UserRepository(), *vehicleID)
	if err != nil {
		return err
	}

	if err = ensureCapacity(ctx, orderRepo, vehicle, aggregate.Cargo()); err != nil {
		return err
	}

	if err = aggregate.AcceptProposedPrice(time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
