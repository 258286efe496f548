package commands

import (
	"errors"

	"freight/internal/pkg/errs"
)

var (
	// ErrAddressNotResolved is returned when the geocoder cannot find an address.
	// The caller should correct the address; retrying will not help.
	ErrAddressNotResolved = errors.New("address could not be resolved")

	// ErrVehicleCapacityExceeded is returned when booking the vehicle would exceed
	// what its active orders leave free.
	ErrVehicleCapacityExceeded = errors.New("vehicle capacity exceeded")

	// ErrVehicleNotAvailable is returned when a vehicle is taken out of service.
	ErrVehicleNotAvailable = errors.New("vehicle is not available")

	// ErrVehicleCannotCarryCargo is returned when the cargo exceeds the vehicle limits
	// or needs refrigeration the vehicle does not have.
	ErrVehicleCannotCarryCargo = errors.New("vehicle cannot carry the cargo")

	// ErrUserIsNotOrderer is returned when a transporter tries to place an order.
	ErrUserIsNotOrderer = errors.New("user is not an orderer")

	ErrOrderIDIsRequired   = errs.NewValueIsRequiredError("orderId")
	ErrUserIDIsRequired    = errs.NewValueIsRequiredError("userId")
	ErrVehicleIDIsRequired = errs.NewValueIsRequiredError("vehicleId")
)
