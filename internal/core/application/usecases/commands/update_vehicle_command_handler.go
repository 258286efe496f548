package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// UpdateVehicleCommandHandler toggles availability and moves a vehicle of the given owner.
type UpdateVehicleCommandHandler struct {
	uowFactory UserUoWFactory
	geocoder   ports.Geocoder
}

func NewUpdateVehicleCommandHandler(uowFactory UserUoWFactory, geocoder ports.Geocoder) UpdateVehicleCommandHandler {
	return UpdateVehicleCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

func (h UpdateVehicleCommandHandler) Handle(ctx context.Context, cmd UpdateVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var location *kernel.Location
	if in := cmd.Location(); in != nil {
		resolved, err := resolveLocation(ctx, h.geocoder, *in)
		if err != nil {
			return err
		}
		location = &resolved
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	owner, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	vehicle, err := owner.FindVehicle(cmd.VehicleID())
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("vehicleId", cmd.VehicleID(),
			fmt.Errorf("%w for user %s", user.ErrVehicleNotFound, owner.ID()))
	}

	vehicle.SetAvailability(cmd.Available())
	if location != nil {
		if err = vehicle.MoveTo(*location); err != nil {
			return err
		}
	}

	if err = userRepo.Update(ctx, owner); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
