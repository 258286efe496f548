package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var (
	newYork  = kernel.MustNewCoordinate(40.7128, -74.0060)
	boston   = kernel.MustNewCoordinate(42.3601, -71.0589)
	newark   = kernel.MustNewCoordinate(40.7357, -74.1724)
	chicago  = kernel.MustNewCoordinate(41.8781, -87.6298)
	phillyCo = kernel.MustNewCoordinate(39.9526, -75.1652)
	now      = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
)

func location(t *testing.T, c kernel.Coordinate) kernel.Location {
	t.Helper()
	loc, err := kernel.NewResolvedLocation(c.String(), c)
	require.NoError(t, err)
	return loc
}

func tariff(t *testing.T, rates user.TariffRates) user.Tariff {
	t.Helper()
	tr, err := user.NewTariff(rates)
	require.NoError(t, err)
	return tr
}

func load(t *testing.T, weight float64, volumeM3 float64, reqs cargo.Requirements) cargo.Cargo {
	t.Helper()
	// a 100 cm × 100 cm base makes the height in cm equal to the volume in hundredths of m³
	dims, err := cargo.NewDimensions(100, 100, volumeM3*100)
	require.NoError(t, err)
	c, err := cargo.NewCargo("load", weight, dims, 1, reqs)
	require.NoError(t, err)
	return c
}

type vehicleOpts struct {
	at           kernel.Coordinate
	maxWeight    float64
	maxVolume    float64
	refrigerated bool
	unavailable  bool
	rates        user.TariffRates
}

func vehicle(t *testing.T, opts vehicleOpts) *user.Vehicle {
	t.Helper()
	if opts.maxWeight == 0 {
		opts.maxWeight = 1000
	}
	if opts.maxVolume == 0 {
		opts.maxVolume = 20
	}
	v, err := user.RestoreVehicle(kernel.NewUUID(), user.Truck, "", "PL-1", opts.maxWeight, opts.maxVolume,
		opts.refrigerated, !opts.unavailable, location(t, opts.at), kernel.USD, tariff(t, opts.rates))
	require.NoError(t, err)
	return v
}

func transporter(t *testing.T, vehicles ...*user.Vehicle) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), "Carrier", "", "", user.Transporter, vehicles)
	require.NoError(t, err)
	return u
}

// assigned builds an order on the vehicle and walks it to the requested status.
func assigned(t *testing.T, v *user.Vehicle, weight float64, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewMatchedOrder(kernel.NewUUID(), kernel.NewUUID(), location(t, newYork), location(t, phillyCo),
		load(t, weight, 1, cargo.Requirements{}), kernel.NewUUID(), v, 100, "", now)
	require.NoError(t, err)

	path := map[order.Status][]order.Status{
		order.Accepted:  {},
		order.Pickup:    {order.Pickup},
		order.InTransit: {order.Pickup, order.InTransit},
		order.Delivered: {order.Pickup, order.InTransit, order.Delivered},
		order.Cancelled: {order.Cancelled},
	}
	steps, ok := path[status]
	require.True(t, ok, "unsupported status %s", status)
	for _, s := range steps {
		require.NoError(t, o.UpdateStatus(s, "", now))
	}
	return o
}

func posted(t *testing.T, pickup kernel.Coordinate, c cargo.Cargo) *order.Order {
	t.Helper()
	o, err := order.NewPostedOrder(kernel.NewUUID(), kernel.NewUUID(), location(t, pickup), location(t, phillyCo),
		c, 0, kernel.USD, "", now)
	require.NoError(t, err)
	return o
}
