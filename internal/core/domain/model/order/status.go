package order

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// ErrIllegalStatusTransition is returned when the transition table does not allow moving
// from the current status to the requested one.
var ErrIllegalStatusTransition = errors.New("illegal status transition")

// Status is the lifecycle state of an order.
//
// The regular flow is pending → determine_price → accepted → pickup →
// in_transit → delivered. Cancelled is reachable from every non-terminal
// status. Pre-matched orders start directly in accepted.
type Status string

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = ""

	// Pending is an open posting waiting for a transporter's proposal.
	Pending Status = "pending"

	// DeterminePrice means a transporter has proposed a price that the orderer has not accepted yet.
	// Further proposals are allowed while in this status.
	DeterminePrice Status = "determine_price"

	// Accepted means the price is agreed and the vehicle is booked.
	Accepted Status = "accepted"

	// Pickup means the vehicle is loading the cargo.
	Pickup Status = "pickup"

	// InTransit means the cargo is on its way to the delivery location.
	InTransit Status = "in_transit"

	// Delivered is final.
	Delivered Status = "delivered"

	// Cancelled is final.
	Cancelled Status = "cancelled"
)

// transitions is the table of allowed next statuses. Statuses without an entry are terminal.
//
//nolint:exhaustive // Unknown, Delivered and Cancelled have no way out
var transitions = map[Status][]Status{
	Pending:        {DeterminePrice, Cancelled},
	DeterminePrice: {DeterminePrice, Accepted, Cancelled},
	Accepted:       {Pickup, Cancelled},
	Pickup:         {InTransit, Cancelled},
	InTransit:      {Delivered, Cancelled},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, DeterminePrice, Accepted, Pickup, InTransit, Delivered, Cancelled}
}

// ParseStatus accepts the wire form of a status, e.g. "in_transit".
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return Unknown, err
	}
	return status, nil
}

func (s Status) Validate() error {
	for _, valid := range AllStatuses() {
		if s == valid {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	return string(s)
}

// IsActive reports whether an order in this status consumes vehicle capacity.
func (s Status) IsActive() bool {
	return s == Accepted || s == Pickup || s == InTransit
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo checks the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the table allows it and ErrIllegalStatusTransition otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, fmt.Errorf("%w: %s → %s", ErrIllegalStatusTransition, s, next)
	}
	return next, nil
}

// ValidateProposal checks that a price can still be negotiated.
func (s Status) ValidateProposal() error {
	if s != Pending && s != DeterminePrice {
		return fmt.Errorf("%w: cannot propose a price for an order in status %s", ErrIllegalStatusTransition, s)
	}
	return nil
}

// ActiveStatuses are the statuses counted by capacity tracking.
func ActiveStatuses() []Status {
	return []Status{Accepted, Pickup, InTransit}
}
