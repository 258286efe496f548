package services_test

import (
	"testing"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher() services.VehicleMatcher {
	return services.NewVehicleMatcher(services.NewPricingEngine(), services.NewCapacityTracker())
}

func TestVehicleMatcher_FindMatches(t *testing.T) {
	matcher := newMatcher()
	request := func(c cargo.Cargo, radius float64) services.MatchRequest {
		return services.MatchRequest{Cargo: c, Pickup: newYork, Delivery: phillyCo, SearchRadiusKm: radius}
	}
	cheap := user.TariffRates{BasePrice: 10, PricePerKm: 0.5}
	expensive := user.TariffRates{BasePrice: 200, PricePerKm: 2}

	t.Run("ranks eligible vehicles by price", func(t *testing.T) {
		pricey := vehicle(t, vehicleOpts{at: newYork, rates: expensive})
		bargain := vehicle(t, vehicleOpts{at: newark, rates: cheap})
		fleet := []*user.User{transporter(t, pricey), transporter(t, bargain)}

		matches, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{}), 50), fleet, nil)

		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.True(t, matches[0].Vehicle.IsEqual(bargain))
		assert.True(t, matches[1].Vehicle.IsEqual(pricey))
		assert.LessOrEqual(t, matches[0].Price, matches[1].Price)
		assert.InDelta(t, 129.6, matches[0].DistanceKm, 1.0)
		assert.InDelta(t, 14.0, matches[0].ApproachDistanceKm, 1.0)
		assert.True(t, matches[0].Transporter.IsEqual(fleet[1]))
	})

	t.Run("excludes vehicles outside the radius even when cheaper", func(t *testing.T) {
		near := vehicle(t, vehicleOpts{at: newYork, rates: expensive})
		far := vehicle(t, vehicleOpts{at: boston, rates: cheap})

		matches, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{}), 100),
			[]*user.User{transporter(t, far, near)}, nil)

		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.True(t, matches[0].Vehicle.IsEqual(near))
	})

	t.Run("excludes non refrigerated vehicles for cooled cargo", func(t *testing.T) {
		plain := vehicle(t, vehicleOpts{at: newYork, rates: cheap, maxWeight: 50000})
		cooled := vehicle(t, vehicleOpts{at: newYork, rates: expensive, refrigerated: true})

		matches, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{Refrigeration: true}), 50),
			[]*user.User{transporter(t, plain, cooled)}, nil)

		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.True(t, matches[0].Vehicle.IsEqual(cooled))
	})

	t.Run("excludes unavailable and too small vehicles", func(t *testing.T) {
		off := vehicle(t, vehicleOpts{at: newYork, unavailable: true})
		small := vehicle(t, vehicleOpts{at: newYork, maxWeight: 50})
		tight := vehicle(t, vehicleOpts{at: newYork, maxVolume: 0.5})

		matches, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{}), 50),
			[]*user.User{transporter(t, off, small, tight)}, nil)

		require.NoError(t, err)
		assert.Empty(t, matches)
		assert.NotNil(t, matches)
	})

	t.Run("excludes vehicles whose live capacity is used up", func(t *testing.T) {
		busy := vehicle(t, vehicleOpts{at: newYork, maxWeight: 1000, rates: cheap})
		idle := vehicle(t, vehicleOpts{at: newYork, maxWeight: 1000, rates: expensive})
		active := []*order.Order{
			assigned(t, busy, 400, order.InTransit),
			assigned(t, busy, 500, order.Delivered),
		}

		fits, err := matcher.FindMatches(request(load(t, 600, 1, cargo.Requirements{}), 50),
			[]*user.User{transporter(t, busy, idle)}, active)
		require.NoError(t, err)
		require.Len(t, fits, 2)
		assert.True(t, fits[0].Vehicle.IsEqual(busy))
		assert.InDelta(t, 600.0, fits[0].Capacity.RemainingWeight, 1e-9)

		overflow, err := matcher.FindMatches(request(load(t, 601, 1, cargo.Requirements{}), 50),
			[]*user.User{transporter(t, busy, idle)}, active)
		require.NoError(t, err)
		require.Len(t, overflow, 1)
		assert.True(t, overflow[0].Vehicle.IsEqual(idle))
	})

	t.Run("ties keep fleet order", func(t *testing.T) {
		first := vehicle(t, vehicleOpts{at: newYork, rates: cheap})
		second := vehicle(t, vehicleOpts{at: newYork, rates: cheap})
		third := vehicle(t, vehicleOpts{at: newYork, rates: cheap})

		matches, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{}), 50),
			[]*user.User{transporter(t, first, second), transporter(t, third)}, nil)

		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.True(t, matches[0].Vehicle.IsEqual(first))
		assert.True(t, matches[1].Vehicle.IsEqual(second))
		assert.True(t, matches[2].Vehicle.IsEqual(third))
	})

	t.Run("skips orderers", func(t *testing.T) {
		orderer, err := user.NewUser(kernel.NewUUID(), "Shipper", "", "", user.Orderer)
		require.NoError(t, err)

		matches, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{}), 50),
			[]*user.User{orderer, nil}, nil)

		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("rejects negative radius", func(t *testing.T) {
		_, err := matcher.FindMatches(request(load(t, 100, 1, cargo.Requirements{}), -1), nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestVehicleMatcher_FindAvailableOrders(t *testing.T) {
	matcher := newMatcher()

	t.Run("returns fitting pending orders closest first", func(t *testing.T) {
		v := vehicle(t, vehicleOpts{at: newYork, maxWeight: 1000, rates: user.TariffRates{BasePrice: 10, PricePerKm: 1}})
		far := posted(t, boston, load(t, 100, 1, cargo.Requirements{}))
		near := posted(t, newark, load(t, 100, 1, cargo.Requirements{}))
		cooled := posted(t, newark, load(t, 100, 1, cargo.Requirements{Refrigeration: true}))
		heavy := posted(t, newark, load(t, 700, 1, cargo.Requirements{}))
		active := []*order.Order{assigned(t, v, 400, order.Pickup)}

		available, err := matcher.FindAvailableOrders(v, []*order.Order{far, heavy, cooled, near}, active, 0)

		require.NoError(t, err)
		require.Len(t, available, 2)
		assert.True(t, available[0].Order.IsEqual(near))
		assert.True(t, available[1].Order.IsEqual(far))
		assert.Positive(t, available[0].EstimatedPrice)
	})

	t.Run("applies distance limit", func(t *testing.T) {
		v := vehicle(t, vehicleOpts{at: newYork})
		far := posted(t, chicago, load(t, 100, 1, cargo.Requirements{}))
		near := posted(t, newark, load(t, 100, 1, cargo.Requirements{}))

		available, err := matcher.FindAvailableOrders(v, []*order.Order{far, near}, nil, 100)

		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.True(t, available[0].Order.IsEqual(near))
	})

	t.Run("ignores orders that are not pending", func(t *testing.T) {
		v := vehicle(t, vehicleOpts{at: newYork})

		available, err := matcher.FindAvailableOrders(v, []*order.Order{assigned(t, v, 10, order.Accepted)}, nil, 0)

		require.NoError(t, err)
		assert.Empty(t, available)
	})

	t.Run("requires a vehicle", func(t *testing.T) {
		_, err := matcher.FindAvailableOrders(nil, nil, nil, 0)

		require.ErrorIs(t, err, user.ErrVehicleIsNotConstructed)
	})
}
