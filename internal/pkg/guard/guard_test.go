package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("tariff not constructed")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type plate struct {
		number string
		guard  guard.ConstructorGuard
	}
	errPlateNotConstructed := errors.New("plate must be created via newPlate")

	newPlate := func(number string) (plate, error) {
		if number == "" {
			return plate{}, errors.New("number is required")
		}
		return plate{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	p, err := newPlate("TR-1234")
	require.NoError(t, err)
	require.NoError(t, p.guard.Validate(errPlateNotConstructed))

	var zero plate
	require.ErrorIs(t, zero.guard.Validate(errPlateNotConstructed), errPlateNotConstructed)

	_, err = newPlate("")
	require.Error(t, err)
}
