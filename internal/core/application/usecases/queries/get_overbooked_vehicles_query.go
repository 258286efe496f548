package queries

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrGetOverbookedVehiclesQueryIsNotConstructed = errors.New(
	"GetOverbookedVehiclesQuery must be created via NewGetOverbookedVehiclesQuery constructor",
)

// GetOverbookedVehiclesQuery finds vehicles whose active orders exceed their limits.
// Only concurrent bookings that slipped past the capacity check can cause this.
type GetOverbookedVehiclesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOverbookedVehiclesQuery() GetOverbookedVehiclesQuery {
	return GetOverbookedVehiclesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOverbookedVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrGetOverbookedVehiclesQueryIsNotConstructed)
}
