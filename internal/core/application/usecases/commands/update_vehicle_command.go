package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrUpdateVehicleCommandIsNotConstructed = errors.New(
	"UpdateVehicleCommand must be created via NewUpdateVehicleCommand constructor",
)

// UpdateVehicleCommand changes the availability of a vehicle and optionally moves it.
type UpdateVehicleCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	vehicleID kernel.UUID
	available bool
	location  *LocationInput

	guard guard.ConstructorGuard
}

// NewUpdateVehicleCommand builds the command. A nil location keeps the current position.
func NewUpdateVehicleCommand(
	userID kernel.UUID,
	vehicleID kernel.UUID,
	available bool,
	location *LocationInput,
) (UpdateVehicleCommand, error) {
	command := UpdateVehicleCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	var locationErr error
	if location != nil {
		locationErr = location.validate("location")
		in := *location
		command.location = &in
	}

	if err := errors.Join(
		requireID(userID, ErrUserIDIsRequired),
		requireID(vehicleID, ErrVehicleIDIsRequired),
		locationErr,
	); err != nil {
		return UpdateVehicleCommand{}, err
	}
	command.userID = userID
	command.vehicleID = vehicleID

	return command, nil
}

func (c UpdateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleCommandIsNotConstructed)
}

func (c UpdateVehicleCommand) UserID() kernel.UUID      { return c.userID }
func (c UpdateVehicleCommand) VehicleID() kernel.UUID   { return c.vehicleID }
func (c UpdateVehicleCommand) Available() bool          { return c.available }
func (c UpdateVehicleCommand) Location() *LocationInput { return c.location }

func requireID(id kernel.UUID, required error) error {
	if id.Validate() != nil {
		return required
	}
	return nil
}
