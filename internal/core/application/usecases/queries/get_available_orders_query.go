package queries

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists the open orders a vehicle could take.
// A zero maxDistanceKm lists them regardless of distance.
type GetAvailableOrdersQuery struct { //nolint:recvcheck //using for validation
	vehicleID     kernel.UUID
	maxDistanceKm float64

	guard guard.ConstructorGuard
}

func NewGetAvailableOrdersQuery(vehicleID kernel.UUID, maxDistanceKm float64) (GetAvailableOrdersQuery, error) {
	var idErr, distanceErr error
	if vehicleID.Validate() != nil {
		idErr = ErrVehicleIDIsRequired
	}
	if math.IsNaN(maxDistanceKm) || math.IsInf(maxDistanceKm, 0) || maxDistanceKm < 0 {
		distanceErr = errs.NewValueIsInvalidErrorWithCause("maxDistanceKm",
			fmt.Errorf("%v is negative or not a number", maxDistanceKm))
	}

	if err := errors.Join(idErr, distanceErr); err != nil {
		return GetAvailableOrdersQuery{}, err
	}

	return GetAvailableOrdersQuery{
		vehicleID:     vehicleID,
		maxDistanceKm: maxDistanceKm,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

func (q GetAvailableOrdersQuery) VehicleID() kernel.UUID { return q.vehicleID }
func (q GetAvailableOrdersQuery) MaxDistanceKm() float64 { return q.maxDistanceKm }

// GetAvailableOrdersQueryResponse is an open order with the distance from the
// vehicle to its pickup and the price the vehicle tariff would quote.
type GetAvailableOrdersQueryResponse struct {
	Order          OrderView
	DistanceKm     float64
	EstimatedPrice float64
}
