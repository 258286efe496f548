package commands

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// MaxProposedPrice is the exclusive upper bound of a proposal, the largest
// value a numeric(14,2) column holds.
const MaxProposedPrice = 1e12

var ErrProposePriceCommandIsNotConstructed = errors.New(
	"ProposePriceCommand must be created via NewProposePriceCommand constructor",
)

// ProposePriceCommand is a transporter's offer for a pending order.
type ProposePriceCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	transporterID kernel.UUID
	vehicleID     kernel.UUID
	price         float64

	guard guard.ConstructorGuard
}

func NewProposePriceCommand(
	orderID kernel.UUID,
	transporterID kernel.UUID,
	vehicleID kernel.UUID,
	price float64,
) (ProposePriceCommand, error) {
	var priceErr error
	// Prices are kept in cents.
	price = math.Round(price*100) / 100
	switch {
	case math.IsNaN(price) || price <= 0:
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	case price >= MaxProposedPrice:
		priceErr = errs.NewValueIsOutOfRangeError("price", price, 0, MaxProposedPrice)
	}

	if err := errors.Join(
		requireID(orderID, ErrOrderIDIsRequired),
		requireID(transporterID, ErrUserIDIsRequired),
		requireID(vehicleID, ErrVehicleIDIsRequired),
		priceErr,
	); err != nil {
		return ProposePriceCommand{}, err
	}

	return ProposePriceCommand{
		orderID:       orderID,
		transporterID: transporterID,
		vehicleID:     vehicleID,
		price:         price,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ProposePriceCommand) Validate() error {
	return c.guard.Validate(ErrProposePriceCommandIsNotConstructed)
}

func (c ProposePriceCommand) OrderID() kernel.UUID       { return c.orderID }
func (c ProposePriceCommand) TransporterID() kernel.UUID { return c.transporterID }
func (c ProposePriceCommand) VehicleID() kernel.UUID     { return c.vehicleID }
func (c ProposePriceCommand) Price() float64             { return c.price }
