package commands

import (
	"context"
	"time"
)

// ProposePriceCommandHandler records a transporter's offer on an order. The
// vehicle must belong to the transporter and be able to carry the cargo.
// Live capacity is checked when the offer is accepted.
type ProposePriceCommandHandler struct {
	uowFactory UoWFactory
}

func NewProposePriceCommandHandler(uowFactory UoWFactory) ProposePriceCommandHandler {
	return ProposePriceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ProposePriceCommandHandler) Handle(ctx context.Context, cmd ProposePriceCommand) error {
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

	transporter, err := uow.UserRepository().Get(ctx, cmd.TransporterID())
	if err != nil {
		return err
	}

	vehicle, err := transporter.FindVehicle(cmd.VehicleID())
	if err != nil {
		return err
	}

	if !vehicle.IsAvailable() {
		return ErrVehicleNotAvailable
	}
	if !vehicle.SatisfiesRequirements(aggregate.Cargo()) || !vehicle.FitsStaticCapacity(aggregate.Cargo()) {
		return ErrVehicleCannotCarryCargo
	}

	if err = aggregate.ProposePrice(cmd.Price(), transporter.ID(), vehicle, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
