package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrUpdateOrderLocationCommandIsNotConstructed = errors.New(
	"UpdateOrderLocationCommand must be created via NewUpdateOrderLocationCommand constructor",
)

// UpdateOrderLocationCommand reports where a shipment is right now.
type UpdateOrderLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	location LocationInput

	guard guard.ConstructorGuard
}

func NewUpdateOrderLocationCommand(orderID kernel.UUID, location LocationInput) (UpdateOrderLocationCommand, error) {
	if err := errors.Join(
		requireID(orderID, ErrOrderIDIsRequired),
		location.validate("location"),
	); err != nil {
		return UpdateOrderLocationCommand{}, err
	}

	return UpdateOrderLocationCommand{
		orderID:  orderID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderLocationCommandIsNotConstructed)
}

func (c UpdateOrderLocationCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateOrderLocationCommand) Location() LocationInput { return c.location }
