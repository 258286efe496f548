package ports

import (
	"context"

	"freight/internal/core/domain/model/order"
)

// EventPublisher delivers order events to other systems. It is called after
// the unit of work has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChanged) error
}
