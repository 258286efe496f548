package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CreateOrderCommandHandler creates a pre-matched order in status accepted.
//
// The vehicle is checked again inside the transaction: it must be available,
// able to carry the cargo, and have enough live capacity left. The price is
// the vehicle tariff applied to the route and the approach distance.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, geocoder ports.Geocoder) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pickup, delivery, err := resolveRoute(ctx, h.geocoder, cmd.Pickup(), cmd.Delivery())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	orderRepo := uow.OrderRepository()

	if err = ensureOrderer(ctx, userRepo, cmd.OrdererID()); err != nil {
		return err
	}

	owner, vehicle, err := findVehicle(ctx, userRepo, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = ensureBookable(ctx, orderRepo, vehicle, cmd.Cargo()); err != nil {
		return err
	}

	pickupCoordinate, err := pickup.Coordinate()
	if err != nil {
		return err
	}
	distanceKm, err := pickup.DistanceTo(delivery)
	if err != nil {
		return err
	}
	approachKm := vehicle.Coordinate().DistanceTo(pickupCoordinate)

	price, err := services.NewPricingEngine().Calculate(distanceKm, approachKm, cmd.Cargo(), vehicle.Tariff())
	if err != nil {
		return err
	}

	aggregate, err := order.NewMatchedOrder(cmd.OrderID(), cmd.OrdererID(), pickup, delivery, cmd.Cargo(),
		owner.ID(), vehicle, price, cmd.Notes(), time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func resolveRoute(
	ctx context.Context,
	geocoder ports.Geocoder,
	pickupIn, deliveryIn LocationInput,
) (kernel.Location, kernel.Location, error) {
	pickup, err := resolveLocation(ctx, geocoder, pickupIn)
	if err != nil {
		return kernel.Location{}, kernel.Location{}, err
	}
	delivery, err := resolveLocation(ctx, geocoder, deliveryIn)
	if err != nil {
		return kernel.Location{}, kernel.Location{}, err
	}
	return pickup, delivery, nil
}

func ensureOrderer(ctx context.Context, repo ports.UserRepository, ordererID kernel.UUID) error {
	orderer, err := repo.Get(ctx, ordererID)
	if err != nil {
		return err
	}
	if orderer.Role() != user.Orderer {
		return ErrUserIsNotOrderer
	}
	return nil
}

// findVehicle resolves a vehicle and its owner through the user directory.
// The vehicle row stays locked until the unit of work ends, so a concurrent
// booking of the same vehicle sees this one's order in its capacity check.
func findVehicle(ctx context.Context, repo ports.UserRepository, vehicleID kernel.UUID) (*user.User, *user.Vehicle, error) {
	owner, err := repo.GetByVehicleForUpdate(ctx, vehicleID)
	if err != nil {
		return nil, nil, err
	}
	vehicle, err := owner.FindVehicle(vehicleID)
	if err != nil {
		return nil, nil, err
	}
	return owner, vehicle, nil
}

// ensureBookable applies the same eligibility rules as matching, minus the search radius.
func ensureBookable(ctx context.Context, repo ports.OrderRepository, vehicle *user.Vehicle, load cargo.Cargo) error {
	if !vehicle.IsAvailable() {
		return ErrVehicleNotAvailable
	}
	if !vehicle.SatisfiesRequirements(load) || !vehicle.FitsStaticCapacity(load) {
		return ErrVehicleCannotCarryCargo
	}
	return ensureCapacity(ctx, repo, vehicle, load)
}

// ensureCapacity reads the active orders of the vehicle and checks the load still fits.
func ensureCapacity(ctx context.Context, repo ports.OrderRepository, vehicle *user.Vehicle, load cargo.Cargo) error {
	active, err := repo.GetActiveByVehicle(ctx, vehicle.ID())
	if err != nil {
		return err
	}
	if !services.NewCapacityTracker().Remaining(vehicle, active).CanCarry(load) {
		return ErrVehicleCapacityExceeded
	}
	return nil
}
