package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/guard"
)

var ErrAddVehicleCommandIsNotConstructed = errors.New(
	"AddVehicleCommand must be created via NewAddVehicleCommand constructor",
)

// VehicleSpec carries the static attributes of a vehicle being registered.
type VehicleSpec struct {
	Type           user.VehicleType
	Model          string
	LicensePlate   string
	MaxWeight      float64
	MaxVolume      float64
	IsRefrigerated bool
	Currency       kernel.Currency
	Tariff         user.Tariff
}

// AddVehicleCommand registers a vehicle in a transporter's fleet. The vehicle
// position is geocoded when no coordinate is given.
//
// Example:
//
//	cmd, err := NewAddVehicleCommand(ownerID, kernel.NewUUID(), spec, LocationInput{Address: "Berlin"})
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type AddVehicleCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	vehicleID kernel.UUID
	spec      VehicleSpec
	location  LocationInput

	guard guard.ConstructorGuard
}

func NewAddVehicleCommand(
	userID kernel.UUID,
	vehicleID kernel.UUID,
	spec VehicleSpec,
	location LocationInput,
) (AddVehicleCommand, error) {
	command := AddVehicleCommand{
		spec:     spec,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setVehicleID(vehicleID),
		spec.Currency.Validate(),
		spec.Tariff.Validate(),
		location.validate("location"),
	); err != nil {
		return AddVehicleCommand{}, err
	}

	return command, nil
}

func (c AddVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAddVehicleCommandIsNotConstructed)
}

func (c AddVehicleCommand) UserID() kernel.UUID     { return c.userID }
func (c AddVehicleCommand) VehicleID() kernel.UUID  { return c.vehicleID }
func (c AddVehicleCommand) Spec() VehicleSpec       { return c.spec }
func (c AddVehicleCommand) Location() LocationInput { return c.location }

func (c *AddVehicleCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return ErrUserIDIsRequired
	}
	c.userID = userID
	return nil
}

func (c *AddVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return ErrVehicleIDIsRequired
	}
	c.vehicleID = vehicleID
	return nil
}
