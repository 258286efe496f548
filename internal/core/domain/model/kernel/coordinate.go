package kernel

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/mmcloughlin/geohash"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// GeohashPrecision is the precision of the geohash persisted next to every coordinate (~1.2 km cells).
	GeohashPrecision uint = 6

	kmPerDegreeLatitude = EarthRadiusKm * math.Pi / 180
)

// ErrCoordinateIsNotConstructed is returned when a zero Coordinate is used.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError("coordinate must be created via NewCoordinate")

// Coordinate is a geocoded point on the Earth's surface in decimal degrees.
// It is an immutable value object; the zero value is invalid.
//
// Example:
//
//	chicago, _ := kernel.NewCoordinate(41.8781, -87.6298)
//	oakPark, _ := kernel.NewCoordinate(41.8339, -87.8720)
//	km := chicago.DistanceTo(oakPark) // ~20.6
type Coordinate struct { //nolint:recvcheck // setters use pointer receivers
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinate validates latitude in [-90, 90] and longitude in [-180, 180]. NaN is rejected.
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	c := Coordinate{guard: guard.NewConstructorGuard()}

	if err := errors.Join(c.setLatitude(latitude), c.setLongitude(longitude)); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// MustNewCoordinate is NewCoordinate for fixtures; it panics on invalid input.
func MustNewCoordinate(latitude, longitude float64) Coordinate {
	c, err := NewCoordinate(latitude, longitude)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

func (c Coordinate) Latitude() float64 {
	return c.latitude
}

func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// DistanceTo returns the great-circle distance in kilometres using the
// haversine formula. It is symmetric and zero for identical points.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	lat1 := degreesToRadians(c.latitude)
	lat2 := degreesToRadians(other.latitude)
	dLat := degreesToRadians(other.latitude - c.latitude)
	dLon := degreesToRadians(other.longitude - c.longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Geohash encodes the coordinate with the given number of characters.
func (c Coordinate) Geohash(precision uint) string {
	return geohash.EncodeWithPrecision(c.latitude, c.longitude, precision)
}

// SearchCells returns the geohash cells that together contain every point
// within radiusKm of c: the cell holding c plus its eight neighbours, at the
// finest precision whose cells are still at least radiusKm wide and tall.
// It returns nil when the radius is not positive or no precision is coarse enough.
func (c Coordinate) SearchCells(radiusKm float64) []string {
	if !(radiusKm > 0) {
		return nil
	}

	for precision := GeohashPrecision; precision >= 1; precision-- {
		hash := c.Geohash(precision)
		box := geohash.BoundingBox(hash)
		heightKm := (box.MaxLat - box.MinLat) * kmPerDegreeLatitude
		widthKm := (box.MaxLng - box.MinLng) * kmPerDegreeLatitude * math.Cos(degreesToRadians(c.latitude))
		if math.Min(heightKm, widthKm) >= radiusKm {
			return append([]string{hash}, geohash.Neighbors(hash)...)
		}
	}
	return nil
}

func (c Coordinate) IsEqual(other Coordinate) bool {
	return c.latitude == other.latitude && c.longitude == other.longitude
}

func (c Coordinate) String() string {
	return fmt.Sprintf("Coordinate(%.6f,%.6f)", c.latitude, c.longitude)
}

func (c *Coordinate) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	c.latitude = latitude
	return nil
}

func (c *Coordinate) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	c.longitude = longitude
	return nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
