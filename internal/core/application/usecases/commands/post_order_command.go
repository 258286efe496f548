package commands

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrPostOrderCommandIsNotConstructed = errors.New(
	"PostOrderCommand must be created via NewPostOrderCommand constructor",
)

// PostOrderCommand publishes an open order that transporters can bid on.
type PostOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	ordererID kernel.UUID
	pickup    LocationInput
	delivery  LocationInput
	cargo     cargo.Cargo
	budget    float64
	currency  kernel.Currency
	notes     string

	guard guard.ConstructorGuard
}

// NewPostOrderCommand builds the command. budget is optional (zero) and is
// expressed in currency.
func NewPostOrderCommand(
	orderID kernel.UUID,
	ordererID kernel.UUID,
	pickup LocationInput,
	delivery LocationInput,
	load cargo.Cargo,
	budget float64,
	currency kernel.Currency,
	notes string,
) (PostOrderCommand, error) {
	var budgetErr error
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget < 0 {
		budgetErr = errs.NewValueIsInvalidErrorWithCause("budget", fmt.Errorf("%v is negative or not a number", budget))
	}

	if err := errors.Join(
		requireID(orderID, ErrOrderIDIsRequired),
		requireID(ordererID, ErrUserIDIsRequired),
		pickup.validate("pickupLocation"),
		delivery.validate("deliveryLocation"),
		load.Validate(),
		currency.Validate(),
		budgetErr,
	); err != nil {
		return PostOrderCommand{}, err
	}

	return PostOrderCommand{
		orderID:   orderID,
		ordererID: ordererID,
		pickup:    pickup,
		delivery:  delivery,
		cargo:     load,
		budget:    budget,
		currency:  currency,
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PostOrderCommand) Validate() error {
	return c.guard.Validate(ErrPostOrderCommandIsNotConstructed)
}

func (c PostOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c PostOrderCommand) OrdererID() kernel.UUID    { return c.ordererID }
func (c PostOrderCommand) Pickup() LocationInput     { return c.pickup }
func (c PostOrderCommand) Delivery() LocationInput   { return c.delivery }
func (c PostOrderCommand) Cargo() cargo.Cargo        { return c.cargo }
func (c PostOrderCommand) Budget() float64           { return c.budget }
func (c PostOrderCommand) Currency() kernel.Currency { return c.currency }
func (c PostOrderCommand) Notes() string             { return c.notes }
