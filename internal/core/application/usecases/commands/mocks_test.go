package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/ports"

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

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ MockTx }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*kernel.Coordinate, error) {
	args := m.Called(ctx, address)
	c, _ := args.Get(0).(*kernel.Coordinate)
	return c, args.Error(1)
}

var (
	newYork      = kernel.MustNewCoordinate(40.7128, -74.0060)
	philadelphia = kernel.MustNewCoordinate(39.9526, -75.1652)
	created      = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
)

func at(c kernel.Coordinate) commands.LocationInput {
	coordinate := c
	return commands.LocationInput{Address: c.String(), Coordinate: &coordinate}
}

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
	c, err := cargo.NewCargo("pallets", weight, dims, 1, reqs)
	require.NoError(t, err)
	return c
}

func newTariff(t *testing.T) user.Tariff {
	t.Helper()
	tr, err := user.NewTariff(user.TariffRates{BasePrice: 50, PricePerKm: 2, PricePerKg: 0.1})
	require.NoError(t, err)
	return tr
}

func newVehicle(t *testing.T, maxWeight float64, available bool) *user.Vehicle {
	t.Helper()
	v, err := user.RestoreVehicle(kernel.NewUUID(), user.Truck, "Actros", "B-FR-1", maxWeight, 20,
		false, available, resolved(t, newYork), kernel.EUR, newTariff(t))
	require.NoError(t, err)
	return v
}

func newTransporter(t *testing.T, vehicles ...*user.Vehicle) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), "Carrier", "", "", user.Transporter, vehicles)
	require.NoError(t, err)
	return u
}

func newOrderer(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Shipper", "", "", user.Orderer)
	require.NoError(t, err)
	return u
}

func newPostedOrder(t *testing.T, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewPostedOrder(kernel.NewUUID(), kernel.NewUUID(), resolved(t, newYork), resolved(t, philadelphia),
		newCargo(t, weight, cargo.Requirements{}), 0, kernel.EUR, "", created)
	require.NoError(t, err)
	return o
}

func newAcceptedOrder(t *testing.T, v *user.Vehicle, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewMatchedOrder(kernel.NewUUID(), kernel.NewUUID(), resolved(t, newYork), resolved(t, philadelphia),
		newCargo(t, weight, cargo.Requirements{}), kernel.NewUUID(), v, 100, "", created)
	require.NoError(t, err)
	return o
}

// expectTx wires a unit of work that begins, optionally commits and always rolls back.
func expectTx(ctx context.Context, uow *MockUoW, commit bool) {
	uow.On("Begin", ctx).Return(nil).Once()
	if commit {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
}
