package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrFindMatchingVehiclesQueryIsNotConstructed = errors.New(
	"FindMatchingVehiclesQuery must be created via NewFindMatchingVehiclesQuery constructor",
)

// LocationInput is an address with an optional coordinate. Without a
// coordinate the address is geocoded.
type LocationInput struct {
	Address    string
	Coordinate *kernel.Coordinate
}

func (l LocationInput) validate(param string) error {
	if strings.TrimSpace(l.Address) == "" && l.Coordinate == nil {
		return errs.NewValueIsRequiredError(param)
	}
	if l.Coordinate != nil {
		if err := l.Coordinate.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(param, err)
		}
	}
	return nil
}

// FindMatchingVehiclesQuery searches the fleet for vehicles able to move a cargo.
//
// Example:
//
//	query, err := NewFindMatchingVehiclesQuery(
//	    LocationInput{Address: "Chicago, IL"},
//	    LocationInput{Address: "Detroit, MI"},
//	    load, 50,
//	)
//	matches, err := handler.Handle(ctx, query)
//	// matches[0] is the cheapest eligible vehicle
type FindMatchingVehiclesQuery struct { //nolint:recvcheck //using for validation
	pickup         LocationInput
	delivery       LocationInput
	cargo          cargo.Cargo
	searchRadiusKm float64

	guard guard.ConstructorGuard
}

// NewFindMatchingVehiclesQuery builds the query. A zero radius selects the
// handler's default radius.
func NewFindMatchingVehiclesQuery(
	pickup LocationInput,
	delivery LocationInput,
	load cargo.Cargo,
	searchRadiusKm float64,
) (FindMatchingVehiclesQuery, error) {
	var radiusErr error
	if math.IsNaN(searchRadiusKm) || math.IsInf(searchRadiusKm, 0) || searchRadiusKm < 0 {
		radiusErr = errs.NewValueIsInvalidErrorWithCause("searchRadiusKm",
			fmt.Errorf("%v is negative or not a number", searchRadiusKm))
	}

	if err := errors.Join(
		pickup.validate("pickupLocation"),
		delivery.validate("deliveryLocation"),
		load.Validate(),
		radiusErr,
	); err != nil {
		return FindMatchingVehiclesQuery{}, err
	}

	return FindMatchingVehiclesQuery{
		pickup:         pickup,
		delivery:       delivery,
		cargo:          load,
		searchRadiusKm: searchRadiusKm,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q FindMatchingVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrFindMatchingVehiclesQueryIsNotConstructed)
}

func (q FindMatchingVehiclesQuery) Pickup() LocationInput   { return q.pickup }
func (q FindMatchingVehiclesQuery) Delivery() LocationInput { return q.delivery }
func (q FindMatchingVehiclesQuery) Cargo() cargo.Cargo      { return q.cargo }
func (q FindMatchingVehiclesQuery) SearchRadiusKm() float64 { return q.searchRadiusKm }

// FindMatchingVehiclesQueryResponse is one priced candidate vehicle.
// RemainingWeight and RemainingVolume are what the vehicle has left now,
// after its active orders and before the searched cargo is booked.
type FindMatchingVehiclesQueryResponse struct {
	VehicleID          kernel.UUID
	TransporterID      kernel.UUID
	TransporterName    string
	VehicleType        string
	Model              string
	LicensePlate       string
	IsRefrigerated     bool
	VehicleLocation    LocationView
	Price              float64
	Currency           kernel.Currency
	DistanceKm         float64
	ApproachDistanceKm float64
	RemainingWeight    float64
	RemainingVolume    float64
}
