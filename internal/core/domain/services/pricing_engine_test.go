package services_test

import (
	"math"
	"testing"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingEngine_Calculate(t *testing.T) {
	engine := services.NewPricingEngine()

	t.Run("coefficients compound multiplicatively", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{BasePrice: 100, PricePerKm: 1, CoolingCoefficient: 1.3, UrgentCoefficient: 1.8})
		c := load(t, 0.001, 0.01, cargo.Requirements{Refrigeration: true, Urgent: true})

		price, err := engine.Calculate(50, 0, c, tr)

		require.NoError(t, err)
		assert.InDelta(t, 351.00, price, 1e-9)

		plain, err := engine.Calculate(50, 0, load(t, 0.001, 0.01, cargo.Requirements{}), tr)
		require.NoError(t, err)
		assert.InDelta(t, 150.00, plain, 1e-9)
	})

	t.Run("adds every line item", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{
			BasePrice:          10,
			PricePerKm:         2,
			PricePerApproachKm: 0.5,
			PricePerKg:         0.1,
			PricePerM3:         3,
		})

		price, err := engine.Calculate(100, 20, load(t, 500, 2, cargo.Requirements{}), tr)

		require.NoError(t, err)
		// 10 + 200 + 10 + 50 + 6
		assert.InDelta(t, 276.00, price, 1e-9)
	})

	t.Run("coefficients at or below one are ignored", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{BasePrice: 100, HazardousCoefficient: 0.5, UrgentCoefficient: 1})

		price, err := engine.Calculate(0, 0, load(t, 1, 0.01, cargo.Requirements{Hazardous: true, Urgent: true}), tr)

		require.NoError(t, err)
		assert.InDelta(t, 100.00, price, 1e-9)
	})

	t.Run("flag without surcharge has no effect", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{BasePrice: 100, HazardousCoefficient: 2})

		price, err := engine.Calculate(0, 0, load(t, 1, 0.01, cargo.Requirements{}), tr)

		require.NoError(t, err)
		assert.InDelta(t, 100.00, price, 1e-9)
	})

	t.Run("rounds to cents", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{PricePerKm: 1.0 / 3})

		price, err := engine.Calculate(10, 0, load(t, 1, 0.01, cargo.Requirements{}), tr)

		require.NoError(t, err)
		assert.InDelta(t, 3.33, price, 1e-9)
	})

	t.Run("is monotonic in every input", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{
			BasePrice: 50, PricePerKm: 1.2, PricePerApproachKm: 0.7, PricePerKg: 0.05, PricePerM3: 4,
			CoolingCoefficient: 1.25,
		})
		reqs := cargo.Requirements{Refrigeration: true}
		base := func(t *testing.T, distance, approach, weight, volume float64) float64 {
			t.Helper()
			p, err := engine.Calculate(distance, approach, load(t, weight, volume, reqs), tr)
			require.NoError(t, err)
			return p
		}

		steps := []float64{0.5, 1, 10, 250, 1000}
		prev := [4]float64{}
		for i, s := range steps {
			current := [4]float64{
				base(t, s, 10, 100, 1),
				base(t, 10, s, 100, 1),
				base(t, 10, 10, s, 1),
				base(t, 10, 10, 100, s),
			}
			if i > 0 {
				for k := range current {
					assert.GreaterOrEqual(t, current[k], prev[k], "input %d step %v", k, s)
				}
			}
			prev = current
		}
	})

	t.Run("rejects invalid distances", func(t *testing.T) {
		tr := tariff(t, user.TariffRates{BasePrice: 1})
		c := load(t, 1, 0.01, cargo.Requirements{})

		_, err := engine.Calculate(-1, 0, c, tr)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = engine.Calculate(1, math.NaN(), c, tr)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects zero cargo and tariff", func(t *testing.T) {
		_, err := engine.Calculate(1, 1, cargo.Cargo{}, user.Tariff{})

		require.ErrorIs(t, err, cargo.ErrCargoIsNotConstructed)
		require.ErrorIs(t, err, user.ErrTariffIsNotConstructed)
	})
}
