package kernel

import (
	"errors"
	"strings"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrLocationIsNotConstructed is returned when a zero Location is used.
	ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

	// ErrLocationIsUnresolved is returned when a distance is requested for a location that has not been geocoded.
	ErrLocationIsUnresolved = errors.New("location has no coordinate")
)

// Location is an address with an optional geocoded coordinate. A nil
// coordinate is a valid state meaning "not resolved yet". UpdatedAt is only
// set for live tracking positions.
type Location struct {
	address    string
	coordinate *Coordinate
	updatedAt  *time.Time
	guard      guard.ConstructorGuard
}

// NewLocation requires at least an address or a coordinate.
func NewLocation(address string, coordinate *Coordinate) (Location, error) {
	address = strings.TrimSpace(address)
	if address == "" && coordinate == nil {
		return Location{}, errs.NewValueIsRequiredError("address")
	}

	if coordinate != nil {
		if err := coordinate.Validate(); err != nil {
			return Location{}, err
		}
		c := *coordinate
		coordinate = &c
	}

	return Location{
		address:    address,
		coordinate: coordinate,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewResolvedLocation builds a geocoded location.
func NewResolvedLocation(address string, coordinate Coordinate) (Location, error) {
	return NewLocation(address, &coordinate)
}

// RestoreLocation rebuilds a location from storage, including the tracking timestamp.
func RestoreLocation(address string, coordinate *Coordinate, updatedAt *time.Time) (Location, error) {
	loc, err := NewLocation(address, coordinate)
	if err != nil {
		return Location{}, err
	}
	if updatedAt != nil {
		ts := updatedAt.UTC()
		loc.updatedAt = &ts
	}
	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Address() string {
	return l.address
}

// IsResolved reports whether the location carries a coordinate.
func (l Location) IsResolved() bool {
	return l.coordinate != nil
}

// Coordinate returns the geocoded point or ErrLocationIsUnresolved.
func (l Location) Coordinate() (Coordinate, error) {
	if err := l.Validate(); err != nil {
		return Coordinate{}, err
	}
	if l.coordinate == nil {
		return Coordinate{}, ErrLocationIsUnresolved
	}
	return *l.coordinate, nil
}

// UpdatedAt is nil unless the location came from a live tracking update.
func (l Location) UpdatedAt() *time.Time {
	if l.updatedAt == nil {
		return nil
	}
	ts := *l.updatedAt
	return &ts
}

// TrackedAt returns a copy of the location stamped with a server-side tracking time.
func (l Location) TrackedAt(at time.Time) Location {
	ts := at.UTC()
	l.updatedAt = &ts
	return l
}

// DistanceTo returns the haversine distance between two resolved locations.
func (l Location) DistanceTo(other Location) (float64, error) {
	from, err := l.Coordinate()
	if err != nil {
		return 0, err
	}
	to, err := other.Coordinate()
	if err != nil {
		return 0, err
	}
	return from.DistanceTo(to), nil
}

func (l Location) String() string {
	if l.coordinate == nil {
		return "Location(" + l.address + ")"
	}
	return "Location(" + l.address + ", " + l.coordinate.String() + ")"
}
