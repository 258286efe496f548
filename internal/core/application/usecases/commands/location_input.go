package commands

import (
	"context"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// LocationInput is a location as submitted by a client: an address, a
// coordinate, or both. A missing coordinate is looked up with the geocoder.
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

// resolveLocation turns the input into a geocoded location. Geocoder failures
// are wrapped; an unknown address yields ErrAddressNotResolved.
func resolveLocation(ctx context.Context, geocoder ports.Geocoder, in LocationInput) (kernel.Location, error) {
	if in.Coordinate != nil {
		return kernel.NewResolvedLocation(in.Address, *in.Coordinate)
	}

	coordinate, err := geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("%w: geocode %q: %w", ports.ErrGeocoderUnavailable, in.Address, err)
	}
	if coordinate == nil {
		return kernel.Location{}, fmt.Errorf("%w: %s", ErrAddressNotResolved, in.Address)
	}

	return kernel.NewResolvedLocation(in.Address, *coordinate)
}
