package commands

import (
	"context"

	"freight/internal/core/domain/model/user"
	"freight/internal/core/ports"
)

// AddVehicleCommandHandler geocodes the vehicle position and attaches the
// vehicle to its owner. Only transporters can own vehicles.
type AddVehicleCommandHandler struct {
	uowFactory UserUoWFactory
	geocoder   ports.Geocoder
}

func NewAddVehicleCommandHandler(uowFactory UserUoWFactory, geocoder ports.Geocoder) AddVehicleCommandHandler {
	return AddVehicleCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

func (h AddVehicleCommandHandler) Handle(ctx context.Context, cmd AddVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Geocoding happens outside of the transaction.
	location, err := resolveLocation(ctx, h.geocoder, cmd.Location())
	if err != nil {
		return err
	}

	spec := cmd.Spec()
	vehicle, err := user.NewVehicle(cmd.VehicleID(), spec.Type, spec.Model, spec.LicensePlate,
		spec.MaxWeight, spec.MaxVolume, spec.IsRefrigerated, location, spec.Currency, spec.Tariff)
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

	userRepo := uow.UserRepository()
	owner, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if err = owner.AddVehicle(vehicle); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, owner); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
