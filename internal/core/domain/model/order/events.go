package order

import (
	"time"

	"freight/internal/core/domain/model/kernel"
)

// StatusChanged is raised every time a status update is appended to an order.
// From is Unknown for the creation entry.
type StatusChanged struct {
	EventID       kernel.UUID
	OrderID       kernel.UUID
	OrdererID     kernel.UUID
	TransporterID *kernel.UUID
	VehicleID     *kernel.UUID
	From          Status
	To            Status
	Price         float64
	ProposedPrice *float64
	Currency      kernel.Currency
	Note          string
	OccurredAt    time.Time
}

// EventName is used as the message key type by publishers.
func (StatusChanged) EventName() string {
	return "order.status_changed"
}
