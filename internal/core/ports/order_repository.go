package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted, so there is no Remove.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write only succeeds when
	// the stored version equals aggregate.Version(); otherwise an
	// errs.VersionIsInvalidError is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll returns every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetByUser returns the orders the user takes part in, newest first.
	// role narrows the result to the orderer or the transporter side; the
	// empty role matches both.
	GetByUser(ctx context.Context, userID kernel.UUID, role user.Role) ([]*order.Order, error)

	// GetByStatus returns the orders in the given status, oldest first.
	GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetPendingInCells returns pending orders whose pickup geohash starts with
	// one of the given cells, oldest first.
	GetPendingInCells(ctx context.Context, cells []string) ([]*order.Order, error)

	// GetActive returns all orders that consume vehicle capacity
	// (accepted, pickup, in_transit).
	GetActive(ctx context.Context) ([]*order.Order, error)

	// GetActiveByVehicle returns the active orders assigned to one vehicle.
	GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*order.Order, error)
}
