package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetByUser(ctx context.Context, userID kernel.UUID, role user.Role) ([]*order.Order, error) {
	args := m.Called(ctx, userID, role)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetPendingInCells(ctx context.Context, cells []string) ([]*order.Order, error) {
	args := m.Called(ctx, cells)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, vehicleID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) GetAllTransporters(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) GetByVehicle(ctx context.Context, vehicleID kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, vehicleID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByVehicleForUpdate(ctx context.Context, vehicleID kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, vehicleID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*kernel.Coordinate, error) {
	args := m.Called(ctx, address)
	c, _ := args.Get(0).(*kernel.Coordinate)
	return c, args.Error(1)
}

var (
	chicago   = kernel.MustNewCoordinate(41.8781, -87.6298)
	oakPark   = kernel.MustNewCoordinate(41.8850, -87.7845)
	milwaukee = kernel.MustNewCoordinate(43.0389, -87.9065)
	created   = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
)

func resolved(t *testing.T, c kernel.Coordinate) kernel.Location {
	t.Helper()
	l, err := kernel.NewResolvedLocation(c.String(), c)
	require.NoError(t, err)
	return l
}

func newCargo(t *testing.T, weight float64, reqs cargo.Requirements) cargo.Cargo {
	t.Helper()
	dims, err := cargo.NewDimensions(100, 100, 100)
	require.NoError(t, err)
	c, err := cargo.NewCargo("crates", weight, dims, 2, reqs)
	require.NoError(t, err)
	return c
}

func newVehicle(t *testing.T, at kernel.Coordinate, maxWeight float64, refrigerated bool, basePrice float64) *user.Vehicle {
	t.Helper()
	tariff, err := user.NewTariff(user.TariffRates{BasePrice: basePrice, PricePerKm: 1.5})
	require.NoError(t, err)
	v, err := user.RestoreVehicle(kernel.NewUUID(), user.Truck, "FH16", "IL-100", maxWeight, 30,
		refrigerated, true, resolved(t, at), kernel.USD, tariff)
	require.NoError(t, err)
	return v
}

func newTransporter(t *testing.T, name string, vehicles ...*user.Vehicle) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), name, "", "", user.Transporter, vehicles)
	require.NoError(t, err)
	return u
}

func newPostedOrder(t *testing.T, pickup kernel.Coordinate, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewPostedOrder(kernel.NewUUID(), kernel.NewUUID(), resolved(t, pickup), resolved(t, milwaukee),
		newCargo(t, weight, cargo.Requirements{}), 0, kernel.USD, "", created)
	require.NoError(t, err)
	return o
}

func newAcceptedOrder(t *testing.T, v *user.Vehicle, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewMatchedOrder(kernel.NewUUID(), kernel.NewUUID(), resolved(t, chicago), resolved(t, milwaukee),
		newCargo(t, weight, cargo.Requirements{}), kernel.NewUUID(), v, 200, "", created)
	require.NoError(t, err)
	return o
}
