package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrAcceptProposedPriceCommandIsNotConstructed = errors.New(
	"AcceptProposedPriceCommand must be created via NewAcceptProposedPriceCommand constructor",
)

// AcceptProposedPriceCommand confirms the transporter's offer on behalf of the orderer.
type AcceptProposedPriceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptProposedPriceCommand(orderID kernel.UUID) (AcceptProposedPriceCommand, error) {
	if err := requireID(orderID, ErrOrderIDIsRequired); err != nil {
		return AcceptProposedPriceCommand{}, err
	}
	return AcceptProposedPriceCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptProposedPriceCommand) Validate() error {
	return c.guard.Validate(ErrAcceptProposedPriceCommandIsNotConstructed)
}

func (c AcceptProposedPriceCommand) OrderID() kernel.UUID {
	return c.orderID
}
