package queries

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultSearchRadiusKm is used when neither the query nor the configuration sets a radius.
const DefaultSearchRadiusKm = 50.0

// FindMatchingVehiclesQueryHandler geocodes both ends of the route, loads the
// fleet and the active orders fresh, and ranks eligible vehicles by price.
// No match is a normal outcome and yields an empty slice.
type FindMatchingVehiclesQueryHandler struct {
	geocoder        ports.Geocoder
	users           ports.UserRepository
	orders          ports.OrderRepository
	matcher         services.VehicleMatcher
	defaultRadiusKm float64
}

func NewFindMatchingVehiclesQueryHandler(
	geocoder ports.Geocoder,
	users ports.UserRepository,
	orders ports.OrderRepository,
	defaultRadiusKm float64,
) FindMatchingVehiclesQueryHandler {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultSearchRadiusKm
	}
	return FindMatchingVehiclesQueryHandler{
		geocoder:        geocoder,
		users:           users,
		orders:          orders,
		matcher:         services.NewVehicleMatcher(services.NewPricingEngine(), services.NewCapacityTracker()),
		defaultRadiusKm: defaultRadiusKm,
	}
}

func (h FindMatchingVehiclesQueryHandler) Handle(
	ctx context.Context,
	query FindMatchingVehiclesQuery,
) ([]FindMatchingVehiclesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var pickup, delivery kernel.Coordinate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pickup, err = h.resolve(gctx, query.Pickup())
		return err
	})
	g.Go(func() (err error) {
		delivery, err = h.resolve(gctx, query.Delivery())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fleet, err := h.users.GetAllTransporters(ctx)
	if err != nil {
		return nil, err
	}
	active, err := h.orders.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	radius := query.SearchRadiusKm()
	if radius == 0 {
		radius = h.defaultRadiusKm
	}

	matches, err := h.matcher.FindMatches(services.MatchRequest{
		Cargo:          query.Cargo(),
		Pickup:         pickup,
		Delivery:       delivery,
		SearchRadiusKm: radius,
	}, fleet, active)
	if err != nil {
		return nil, err
	}

	response := make([]FindMatchingVehiclesQueryResponse, 0, len(matches))
	for _, m := range matches {
		response = append(response, FindMatchingVehiclesQueryResponse{
			VehicleID:          m.Vehicle.ID(),
			TransporterID:      m.Transporter.ID(),
			TransporterName:    m.Transporter.Name(),
			VehicleType:        string(m.Vehicle.Type()),
			Model:              m.Vehicle.Model(),
			LicensePlate:       m.Vehicle.LicensePlate(),
			IsRefrigerated:     m.Vehicle.IsRefrigerated(),
			VehicleLocation:    newLocationView(m.Vehicle.Location()),
			Price:              m.Price,
			Currency:           m.Vehicle.Currency(),
			DistanceKm:         m.DistanceKm,
			ApproachDistanceKm: m.ApproachDistanceKm,
			RemainingWeight:    m.Capacity.RemainingWeight,
			RemainingVolume:    m.Capacity.RemainingVolume,
		})
	}

	return response, nil
}

func (h FindMatchingVehiclesQueryHandler) resolve(ctx context.Context, in LocationInput) (kernel.Coordinate, error) {
	if in.Coordinate != nil {
		return *in.Coordinate, nil
	}

	coordinate, err := h.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return kernel.Coordinate{}, fmt.Errorf("%w: geocode %q: %w", ports.ErrGeocoderUnavailable, in.Address, err)
	}
	if coordinate == nil {
		return kernel.Coordinate{}, fmt.Errorf("%w: %s", ErrAddressNotResolved, in.Address)
	}
	return *coordinate, nil
}
