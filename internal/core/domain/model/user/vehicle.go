package user

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// VehicleType is the body type of a vehicle.
type VehicleType string

const (
	Truck   VehicleType = "truck"
	Van     VehicleType = "van"
	Pickup  VehicleType = "pickup"
	Trailer VehicleType = "trailer"
	Car     VehicleType = "car"
)

var (
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	ErrLicensePlateIsRequired  = errs.NewValueIsRequiredError("licensePlate")
)

// Vehicle is an entity of the User aggregate. Its position must be geocoded
// because matching measures the approach distance from it.
type Vehicle struct {
	id             kernel.UUID
	vehicleType    VehicleType
	model          string
	licensePlate   string
	maxWeight      float64
	maxVolume      float64
	isRefrigerated bool
	available      bool
	location       kernel.Location
	currency       kernel.Currency
	tariff         Tariff
	guard          guard.ConstructorGuard
}

// NewVehicle registers an available vehicle.
//
// Parameters:
//   - maxWeight: payload limit in kilograms (> 0)
//   - maxVolume: cargo space in cubic metres (> 0)
//   - location: current position, must be resolved to a coordinate
func NewVehicle(
	id kernel.UUID,
	vehicleType VehicleType,
	model string,
	licensePlate string,
	maxWeight float64,
	maxVolume float64,
	isRefrigerated bool,
	location kernel.Location,
	currency kernel.Currency,
	tariff Tariff,
) (*Vehicle, error) {
	return RestoreVehicle(id, vehicleType, model, licensePlate, maxWeight, maxVolume,
		isRefrigerated, true, location, currency, tariff)
}

// RestoreVehicle rebuilds a vehicle from storage, including its availability.
func RestoreVehicle(
	id kernel.UUID,
	vehicleType VehicleType,
	model string,
	licensePlate string,
	maxWeight float64,
	maxVolume float64,
	isRefrigerated bool,
	available bool,
	location kernel.Location,
	currency kernel.Currency,
	tariff Tariff,
) (*Vehicle, error) {
	v := &Vehicle{
		model:          strings.TrimSpace(model),
		isRefrigerated: isRefrigerated,
		available:      available,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setType(vehicleType),
		v.setLicensePlate(licensePlate),
		v.setCapacity(maxWeight, maxVolume),
		v.setLocation(location),
		v.setCurrency(currency),
		v.setTariff(tariff),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

func (v *Vehicle) ID() kernel.UUID           { return v.id }
func (v *Vehicle) Type() VehicleType         { return v.vehicleType }
func (v *Vehicle) Model() string             { return v.model }
func (v *Vehicle) LicensePlate() string      { return v.licensePlate }
func (v *Vehicle) MaxWeight() float64        { return v.maxWeight }
func (v *Vehicle) MaxVolume() float64        { return v.maxVolume }
func (v *Vehicle) IsRefrigerated() bool      { return v.isRefrigerated }
func (v *Vehicle) IsAvailable() bool         { return v.available }
func (v *Vehicle) Location() kernel.Location { return v.location }
func (v *Vehicle) Currency() kernel.Currency { return v.currency }
func (v *Vehicle) Tariff() Tariff            { return v.tariff }

// Coordinate is the current position of the vehicle.
func (v *Vehicle) Coordinate() kernel.Coordinate {
	c, _ := v.location.Coordinate() //nolint:errcheck // resolved by setLocation
	return c
}

// SatisfiesRequirements checks the capability flags: refrigerated cargo needs a refrigerated vehicle.
func (v *Vehicle) SatisfiesRequirements(c cargo.Cargo) bool {
	return !c.RequiresRefrigeration() || v.isRefrigerated
}

// FitsStaticCapacity compares the cargo against the vehicle limits, ignoring orders already on board.
func (v *Vehicle) FitsStaticCapacity(c cargo.Cargo) bool {
	return c.Weight() <= v.maxWeight && c.Volume() <= v.maxVolume
}

// SetAvailability takes the vehicle in or out of matching.
func (v *Vehicle) SetAvailability(available bool) {
	v.available = available
}

// MoveTo updates the vehicle position. The location must be geocoded.
func (v *Vehicle) MoveTo(location kernel.Location) error {
	return v.setLocation(location)
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setType(t VehicleType) error {
	switch t {
	case Truck, Van, Pickup, Trailer, Car:
		v.vehicleType = t
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a known vehicle type", string(t)))
	}
}

func (v *Vehicle) setLicensePlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return ErrLicensePlateIsRequired
	}
	v.licensePlate = plate
	return nil
}

func (v *Vehicle) setCapacity(maxWeight, maxVolume float64) error {
	var joined error
	if !(maxWeight > 0) {
		joined = errors.Join(joined, errs.NewValueIsInvalidErrorWithCause("maxWeight",
			fmt.Errorf("%v is not greater than 0", maxWeight)))
	}
	if !(maxVolume > 0) {
		joined = errors.Join(joined, errs.NewValueIsInvalidErrorWithCause("maxVolume",
			fmt.Errorf("%v is not greater than 0", maxVolume)))
	}
	if joined != nil {
		return joined
	}

	v.maxWeight = maxWeight
	v.maxVolume = maxVolume
	return nil
}

func (v *Vehicle) setLocation(location kernel.Location) error {
	if _, err := location.Coordinate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("location", err)
	}
	v.location = location
	return nil
}

func (v *Vehicle) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	v.currency = currency
	return nil
}

func (v *Vehicle) setTariff(tariff Tariff) error {
	if err := tariff.Validate(); err != nil {
		return err
	}
	v.tariff = tariff
	return nil
}
