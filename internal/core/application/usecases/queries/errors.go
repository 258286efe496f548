package queries

import (
	"errors"

	"freight/internal/pkg/errs"
)

var (
	// ErrAddressNotResolved is returned when the geocoder cannot find an address.
	ErrAddressNotResolved = errors.New("address could not be resolved")

	ErrOrderIDIsRequired   = errs.NewValueIsRequiredError("orderId")
	ErrUserIDIsRequired    = errs.NewValueIsRequiredError("userId")
	ErrVehicleIDIsRequired = errs.NewValueIsRequiredError("vehicleId")
)
