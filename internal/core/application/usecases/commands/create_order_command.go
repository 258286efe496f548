package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand books a vehicle the orderer picked from the match results.
// The price is computed again from the vehicle tariff when the command runs.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	ordererID kernel.UUID
	vehicleID kernel.UUID
	pickup    LocationInput
	delivery  LocationInput
	cargo     cargo.Cargo
	notes     string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	ordererID kernel.UUID,
	vehicleID kernel.UUID,
	pickup LocationInput,
	delivery LocationInput,
	load cargo.Cargo,
	notes string,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		requireID(orderID, ErrOrderIDIsRequired),
		requireID(ordererID, ErrUserIDIsRequired),
		requireID(vehicleID, ErrVehicleIDIsRequired),
		pickup.validate("pickupLocation"),
		delivery.validate("deliveryLocation"),
		load.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:   orderID,
		ordererID: ordererID,
		vehicleID: vehicleID,
		pickup:    pickup,
		delivery:  delivery,
		cargo:     load,
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) OrdererID() kernel.UUID  { return c.ordererID }
func (c CreateOrderCommand) VehicleID() kernel.UUID  { return c.vehicleID }
func (c CreateOrderCommand) Pickup() LocationInput   { return c.pickup }
func (c CreateOrderCommand) Delivery() LocationInput { return c.delivery }
func (c CreateOrderCommand) Cargo() cargo.Cargo      { return c.cargo }
func (c CreateOrderCommand) Notes() string           { return c.notes }
