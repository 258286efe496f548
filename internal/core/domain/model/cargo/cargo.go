// Package cargo describes what a shipper wants transported: weight, physical
// dimensions, item count and the handling requirements that drive vehicle
// eligibility and tariff surcharges.
package cargo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	// DefaultItems is used when the item count is missing or not positive.
	DefaultItems = 1

	cubicCentimetresPerCubicMetre = 1e6
)

var (
	ErrCargoIsNotConstructed      = errors.New("Cargo must be created via NewCargo constructor")
	ErrDimensionsIsNotConstructed = errors.New("Dimensions must be created via NewDimensions constructor")
	ErrDescriptionIsRequired      = errs.NewValueIsRequiredError("description")
)

// Dimensions are the outer measurements of the consignment in centimetres.
type Dimensions struct {
	length float64
	width  float64
	height float64
	guard  guard.ConstructorGuard
}

// NewDimensions requires all three measurements to be positive and finite.
func NewDimensions(lengthCm, widthCm, heightCm float64) (Dimensions, error) {
	if err := errors.Join(
		positive("length", lengthCm),
		positive("width", widthCm),
		positive("height", heightCm),
	); err != nil {
		return Dimensions{}, err
	}

	return Dimensions{
		length: lengthCm,
		width:  widthCm,
		height: heightCm,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsIsNotConstructed)
}

func (d Dimensions) Length() float64 { return d.length }
func (d Dimensions) Width() float64  { return d.width }
func (d Dimensions) Height() float64 { return d.height }

// Volume is length × width × height converted from cm³ to m³.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height / cubicCentimetresPerCubicMetre
}

// Requirements are the handling flags that filter vehicles and trigger tariff coefficients.
type Requirements struct {
	Refrigeration bool
	Hazardous     bool
	Urgent        bool
}

// Cargo is an immutable value object. Volume is always derived from the
// dimensions when the cargo is created and can never be supplied separately.
type Cargo struct {
	description  string
	weight       float64
	dimensions   Dimensions
	volume       float64
	items        int
	requirements Requirements
	guard        guard.ConstructorGuard
}

// NewCargo validates the description and a positive weight in kilograms.
// An item count that is not positive falls back to DefaultItems.
//
// Example:
//
//	dims, _ := cargo.NewDimensions(200, 150, 180)
//	c, err := cargo.NewCargo("Office furniture", 750, dims, 12, cargo.Requirements{})
//	// c.Volume() == 5.4
func NewCargo(
	description string,
	weightKg float64,
	dimensions Dimensions,
	items int,
	requirements Requirements,
) (Cargo, error) {
	c := Cargo{
		requirements: requirements,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setDescription(description),
		c.setWeight(weightKg),
		c.setDimensions(dimensions),
	); err != nil {
		return Cargo{}, err
	}

	c.setItems(items)
	return c, nil
}

func (c Cargo) Validate() error {
	return c.guard.Validate(ErrCargoIsNotConstructed)
}

func (c Cargo) Description() string        { return c.description }
func (c Cargo) Weight() float64            { return c.weight }
func (c Cargo) Dimensions() Dimensions     { return c.dimensions }
func (c Cargo) Volume() float64            { return c.volume }
func (c Cargo) Items() int                 { return c.items }
func (c Cargo) Requirements() Requirements { return c.requirements }

func (c Cargo) RequiresRefrigeration() bool { return c.requirements.Refrigeration }
func (c Cargo) IsHazardous() bool           { return c.requirements.Hazardous }
func (c Cargo) IsUrgent() bool              { return c.requirements.Urgent }

func (c *Cargo) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrDescriptionIsRequired
	}
	c.description = description
	return nil
}

func (c *Cargo) setWeight(weight float64) error {
	if err := positive("weight", weight); err != nil {
		return err
	}
	c.weight = weight
	return nil
}

func (c *Cargo) setDimensions(dimensions Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	c.dimensions = dimensions
	c.volume = dimensions.Volume()
	return nil
}

func (c *Cargo) setItems(items int) {
	if items <= 0 {
		items = DefaultItems
	}
	c.items = items
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not greater than 0", v))
	}
	return nil
}
