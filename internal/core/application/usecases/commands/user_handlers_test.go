package commands_test

import (
	"errors"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Acme", "", "", user.Transporter)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(u *user.User) bool {
			return u.ID() == cmd.UserID() && u.IsTransporter() && len(u.Vehicles()) == 0
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewRegisterUserCommandHandler(factory).Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterUserCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRegisterUserCommand(kernel.NewUUID(), "Acme", "", "", user.Orderer)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, false)
	uow.On("UserRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.Anything).Return(errors.New("duplicate")).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewRegisterUserCommandHandler(factory).Handle(ctx, cmd)
	require.EqualError(t, err, "duplicate")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRegisterUserCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUserUoWFactory)
	err := commands.NewRegisterUserCommandHandler(factory).Handle(t.Context(), commands.RegisterUserCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func addVehicleCommand(t *testing.T, ownerID kernel.UUID, location commands.LocationInput) commands.AddVehicleCommand {
	t.Helper()
	cmd, err := commands.NewAddVehicleCommand(ownerID, kernel.NewUUID(), commands.VehicleSpec{
		Type:         user.Van,
		Model:        "Sprinter",
		LicensePlate: "B-AB-12",
		MaxWeight:    1200,
		MaxVolume:    10,
		Currency:     kernel.EUR,
		Tariff:       newTariff(t),
	}, location)
	require.NoError(t, err)
	return cmd
}

func TestAddVehicleCommandHandler_Handle_GeocodesAddress(t *testing.T) {
	ctx := t.Context()
	owner := newTransporter(t)
	cmd := addVehicleCommand(t, owner.ID(), commands.LocationInput{Address: "New York"})

	geocoder := new(MockGeocoder)
	coordinate := newYork
	geocoder.On("Geocode", ctx, "New York").Return(&coordinate, nil).Once()

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, true)
	uow.On("UserRepository").Return(repo).Once()
	repo.On("Get", ctx, owner.ID()).Return(owner, nil).Once()
	repo.On("Update", ctx, owner).Return(nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAddVehicleCommandHandler(factory, geocoder).Handle(ctx, cmd)
	require.NoError(t, err)

	vehicle, err := owner.FindVehicle(cmd.VehicleID())
	require.NoError(t, err)
	require.True(t, vehicle.IsAvailable())
	require.True(t, vehicle.Coordinate().IsEqual(newYork))
	geocoder.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddVehicleCommandHandler_Handle_UnresolvedAddress(t *testing.T) {
	ctx := t.Context()
	cmd := addVehicleCommand(t, kernel.NewUUID(), commands.LocationInput{Address: "Atlantis"})

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "Atlantis").Return(nil, nil).Once()
	factory := new(MockUserUoWFactory)

	err := commands.NewAddVehicleCommandHandler(factory, geocoder).Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrAddressNotResolved)
	factory.AssertNotCalled(t, "Create")
}

func TestAddVehicleCommandHandler_Handle_GeocoderFailure(t *testing.T) {
	ctx := t.Context()
	cmd := addVehicleCommand(t, kernel.NewUUID(), commands.LocationInput{Address: "Boston"})
	unavailable := errors.New("service unavailable")

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "Boston").Return(nil, unavailable).Once()

	err := commands.NewAddVehicleCommandHandler(new(MockUserUoWFactory), geocoder).Handle(ctx, cmd)
	require.ErrorIs(t, err, unavailable)
	require.NotErrorIs(t, err, commands.ErrAddressNotResolved)
}

func TestAddVehicleCommandHandler_Handle_OrdererCannotOwnVehicles(t *testing.T) {
	ctx := t.Context()
	owner := newOrderer(t)
	cmd := addVehicleCommand(t, owner.ID(), at(newYork))

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, false)
	uow.On("UserRepository").Return(repo).Once()
	repo.On("Get", ctx, owner.ID()).Return(owner, nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewAddVehicleCommandHandler(factory, new(MockGeocoder)).Handle(ctx, cmd)
	require.ErrorIs(t, err, user.ErrOnlyTransporterOwnsVehicles)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateVehicleCommandHandler_Handle_TogglesAndMoves(t *testing.T) {
	ctx := t.Context()
	vehicle := newVehicle(t, 1000, true)
	owner := newTransporter(t, vehicle)
	target := at(philadelphia)

	cmd, err := commands.NewUpdateVehicleCommand(owner.ID(), vehicle.ID(), false, &target)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, true)
	uow.On("UserRepository").Return(repo).Once()
	repo.On("Get", ctx, owner.ID()).Return(owner, nil).Once()
	repo.On("Update", ctx, owner).Return(nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewUpdateVehicleCommandHandler(factory, new(MockGeocoder)).Handle(ctx, cmd)
	require.NoError(t, err)

	stored, err := owner.FindVehicle(vehicle.ID())
	require.NoError(t, err)
	require.False(t, stored.IsAvailable())
	require.True(t, stored.Coordinate().IsEqual(philadelphia))
}

func TestUpdateVehicleCommandHandler_Handle_UnknownVehicle(t *testing.T) {
	ctx := t.Context()
	owner := newTransporter(t)
	cmd, err := commands.NewUpdateVehicleCommand(owner.ID(), kernel.NewUUID(), true, nil)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	expectTx(ctx, uow, false)
	uow.On("UserRepository").Return(repo).Once()
	repo.On("Get", ctx, owner.ID()).Return(owner, nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewUpdateVehicleCommandHandler(factory, new(MockGeocoder)).Handle(ctx, cmd)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.ErrorIs(t, err, user.ErrVehicleNotFound)
}
