package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
)

// UserRepository is the user directory and vehicle catalog. Users are loaded
// together with their fleet.
type UserRepository interface {
	// Add persists a new user with its vehicles.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists user fields and upserts its vehicles.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns errs.ObjectNotFoundError when the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetAll returns every user ordered by id.
	GetAll(ctx context.Context) ([]*user.User, error)

	// GetAllTransporters returns the fleet owners ordered by id, vehicles ordered by id.
	// This ordering is what makes matching results reproducible.
	GetAllTransporters(ctx context.Context) ([]*user.User, error)

	// GetByVehicle returns the transporter owning the vehicle, or
	// errs.ObjectNotFoundError when no user owns it.
	GetByVehicle(ctx context.Context, vehicleID kernel.UUID) (*user.User, error)

	// GetByVehicleForUpdate is GetByVehicle that also locks the vehicle row until
	// the surrounding transaction ends, so bookings of one vehicle run one at a time.
	GetByVehicleForUpdate(ctx context.Context, vehicleID kernel.UUID) (*user.User, error)
}
