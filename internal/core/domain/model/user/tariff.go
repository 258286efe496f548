package user

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrTariffIsNotConstructed = errors.New("Tariff must be created via NewTariff constructor")

// TariffRates are the raw pricing parameters of a vehicle. Coefficients are
// multiplicative surcharges; a coefficient of 1 or less has no effect.
type TariffRates struct {
	BasePrice            float64
	PricePerKm           float64
	PricePerApproachKm   float64
	PricePerKg           float64
	PricePerM3           float64
	CoolingCoefficient   float64
	HazardousCoefficient float64
	UrgentCoefficient    float64
}

// Tariff is the validated, immutable form of TariffRates.
type Tariff struct {
	rates TariffRates
	guard guard.ConstructorGuard
}

// NewTariff rejects negative, NaN and infinite rates.
func NewTariff(rates TariffRates) (Tariff, error) {
	if err := errors.Join(
		nonNegative("basePrice", rates.BasePrice),
		nonNegative("pricePerKm", rates.PricePerKm),
		nonNegative("pricePerApproachKm", rates.PricePerApproachKm),
		nonNegative("pricePerKg", rates.PricePerKg),
		nonNegative("pricePerM3", rates.PricePerM3),
		nonNegative("coolingCoefficient", rates.CoolingCoefficient),
		nonNegative("hazardousCoefficient", rates.HazardousCoefficient),
		nonNegative("urgentCoefficient", rates.UrgentCoefficient),
	); err != nil {
		return Tariff{}, err
	}

	return Tariff{rates: rates, guard: guard.NewConstructorGuard()}, nil
}

func (t Tariff) Validate() error {
	return t.guard.Validate(ErrTariffIsNotConstructed)
}

// Rates returns a copy of the underlying parameters.
func (t Tariff) Rates() TariffRates {
	return t.rates
}

func (t Tariff) BasePrice() float64            { return t.rates.BasePrice }
func (t Tariff) PricePerKm() float64           { return t.rates.PricePerKm }
func (t Tariff) PricePerApproachKm() float64   { return t.rates.PricePerApproachKm }
func (t Tariff) PricePerKg() float64           { return t.rates.PricePerKg }
func (t Tariff) PricePerM3() float64           { return t.rates.PricePerM3 }
func (t Tariff) CoolingCoefficient() float64   { return t.rates.CoolingCoefficient }
func (t Tariff) HazardousCoefficient() float64 { return t.rates.HazardousCoefficient }
func (t Tariff) UrgentCoefficient() float64    { return t.rates.UrgentCoefficient }

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is negative or not a number", v))
	}
	return nil
}
