package services

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/errs"
)

// PricingEngine computes transport prices from a vehicle tariff.
//
// Algorithm, applied in this order:
//  1. the tariff base price
//  2. + distanceKm × pricePerKm
//  3. + approachDistanceKm × pricePerApproachKm, only when both are positive
//  4. + cargo weight × pricePerKg
//  5. + cargo volume × pricePerM3
//  6. × every coefficient whose cargo flag is set and that is greater than 1
//     (refrigeration → cooling, hazardous → hazardous, urgent → urgent)
//  7. rounded to cents, half away from zero
//
// Coefficients compound: refrigerated and urgent cargo pays both.
//
// Example:
//
//	engine := NewPricingEngine()
//	price, err := engine.Calculate(50, 0, c, tariff) // base 100, 1/km, cooling 1.3, urgent 1.8 → 351.00
type PricingEngine struct{}

func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Calculate prices a single trip. Distances must be finite and non-negative.
func (PricingEngine) Calculate(distanceKm, approachDistanceKm float64, c cargo.Cargo, tariff user.Tariff) (float64, error) {
	if err := errors.Join(
		validateDistance("distanceKm", distanceKm),
		validateDistance("approachDistanceKm", approachDistanceKm),
		c.Validate(),
		tariff.Validate(),
	); err != nil {
		return 0, err
	}

	total := tariff.BasePrice()
	total += distanceKm * tariff.PricePerKm()
	if approachDistanceKm > 0 && tariff.PricePerApproachKm() > 0 {
		total += approachDistanceKm * tariff.PricePerApproachKm()
	}
	total += c.Weight() * tariff.PricePerKg()
	total += c.Volume() * tariff.PricePerM3()

	multiplier := 1.0
	if c.RequiresRefrigeration() && tariff.CoolingCoefficient() > 1 {
		multiplier *= tariff.CoolingCoefficient()
	}
	if c.IsHazardous() && tariff.HazardousCoefficient() > 1 {
		multiplier *= tariff.HazardousCoefficient()
	}
	if c.IsUrgent() && tariff.UrgentCoefficient() > 1 {
		multiplier *= tariff.UrgentCoefficient()
	}

	return roundCents(total * multiplier), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateDistance(name string, km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a number", km))
	}
	if km < 0 {
		return errs.NewValueIsOutOfRangeError(name, km, 0, math.Inf(1))
	}
	return nil
}
