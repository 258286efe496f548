package cargo_test

import (
	"math"
	"testing"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	d, err := cargo.NewDimensions(200, 150, 180)
	require.NoError(t, err)
	assert.InDelta(t, 5.4, d.Volume(), 1e-9)

	_, err = cargo.NewDimensions(0, 150, 180)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = cargo.NewDimensions(10, math.Inf(1), 10)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = cargo.NewDimensions(-1, -1, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
	assert.Contains(t, err.Error(), "height")
}

func TestNewCargo(t *testing.T) {
	dims, err := cargo.NewDimensions(100, 100, 100)
	require.NoError(t, err)

	t.Run("volume_is_derived_from_dimensions", func(t *testing.T) {
		c, err := cargo.NewCargo("Pallets", 400, dims, 3, cargo.Requirements{Urgent: true})

		require.NoError(t, err)
		assert.InDelta(t, 1.0, c.Volume(), 1e-12)
		assert.InDelta(t, dims.Volume(), c.Volume(), 0)
		assert.Equal(t, 3, c.Items())
		assert.True(t, c.IsUrgent())
		assert.False(t, c.RequiresRefrigeration())
		assert.False(t, c.IsHazardous())
	})

	t.Run("items_default_to_one", func(t *testing.T) {
		for _, items := range []int{0, -4} {
			c, err := cargo.NewCargo("Box", 1, dims, items, cargo.Requirements{})
			require.NoError(t, err)
			assert.Equal(t, cargo.DefaultItems, c.Items())
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name        string
			description string
			weight      float64
			dims        cargo.Dimensions
			target      error
		}{
			{"missing_description", "  ", 10, dims, errs.ErrValueIsRequired},
			{"zero_weight", "Box", 0, dims, errs.ErrValueIsInvalid},
			{"nan_weight", "Box", math.NaN(), dims, errs.ErrValueIsInvalid},
			{"zero_dimensions", "Box", 10, cargo.Dimensions{}, cargo.ErrDimensionsIsNotConstructed},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := cargo.NewCargo(tt.description, tt.weight, tt.dims, 1, cargo.Requirements{})
				require.ErrorIs(t, err, tt.target)
			})
		}
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var c cargo.Cargo
		require.ErrorIs(t, c.Validate(), cargo.ErrCargoIsNotConstructed)
	})
}
