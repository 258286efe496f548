package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetVehicleCapacityQueryIsNotConstructed = errors.New(
	"GetVehicleCapacityQuery must be created via NewGetVehicleCapacityQuery constructor",
)

// GetVehicleCapacityQuery reports what a vehicle can still take on.
type GetVehicleCapacityQuery struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVehicleCapacityQuery(vehicleID kernel.UUID) (GetVehicleCapacityQuery, error) {
	if vehicleID.Validate() != nil {
		return GetVehicleCapacityQuery{}, ErrVehicleIDIsRequired
	}
	return GetVehicleCapacityQuery{vehicleID: vehicleID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVehicleCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleCapacityQueryIsNotConstructed)
}

func (q GetVehicleCapacityQuery) VehicleID() kernel.UUID {
	return q.vehicleID
}

// VehicleCapacityResponse describes the load situation of one vehicle.
// Remaining values are negative when the vehicle is overbooked. AssignedOrders
// lists the active orders consuming the capacity.
type VehicleCapacityResponse struct {
	VehicleID       kernel.UUID
	TransporterID   kernel.UUID
	LicensePlate    string
	MaxWeight       float64
	MaxVolume       float64
	RemainingWeight float64
	RemainingVolume float64
	AssignedOrders  []OrderView
	Overbooked      bool
}
