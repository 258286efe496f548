package ports

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
)

// Geocoder resolves a free-form address to a coordinate.
//
// A nil coordinate with a nil error means the address could not be resolved;
// callers treat that as a user-correctable input problem. A non-nil error is a
// failure of the geocoding service itself.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*kernel.Coordinate, error)
}

// ErrGeocoderUnavailable marks errors caused by the geocoding service rather
// than by the address being looked up.
var ErrGeocoderUnavailable = errors.New("geocoder unavailable")
