// Package http exposes the freight use cases over a JSON API built on echo.
package http

import (
	"context"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ ServerInterface = (*Server)(nil)

type commandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type queryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases served by the API.
type Handlers struct {
	RegisterUser        commandHandler[commands.RegisterUserCommand]
	AddVehicle          commandHandler[commands.AddVehicleCommand]
	UpdateVehicle       commandHandler[commands.UpdateVehicleCommand]
	CreateOrder         commandHandler[commands.CreateOrderCommand]
	PostOrder           commandHandler[commands.PostOrderCommand]
	ProposePrice        commandHandler[commands.ProposePriceCommand]
	AcceptProposedPrice commandHandler[commands.AcceptProposedPriceCommand]
	UpdateOrderStatus   commandHandler[commands.UpdateOrderStatusCommand]
	UpdateOrderLocation commandHandler[commands.UpdateOrderLocationCommand]

	FindMatchingVehicles queryHandler[queries.FindMatchingVehiclesQuery, []queries.FindMatchingVehiclesQueryResponse]
	GetOrder             queryHandler[queries.GetOrderQuery, queries.OrderView]
	GetUserOrders        queryHandler[queries.GetUserOrdersQuery, []queries.OrderView]
	GetAvailableOrders   queryHandler[queries.GetAvailableOrdersQuery, []queries.GetAvailableOrdersQueryResponse]
	GetVehicleCapacity   queryHandler[queries.GetVehicleCapacityQuery, queries.VehicleCapacityResponse]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{
		handlers: handlers,
		metrics:  metrics,
	}
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body NewUser
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, body.Name, body.Email, body.Phone, user.Role(body.Role))
	if err != nil {
		return err
	}

	if err = s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: userID.Bytes()})
}

// AddVehicle handles POST /api/v1/users/:userId/vehicles.
func (s *Server) AddVehicle(ctx echo.Context, userID openapi_types.UUID) error {
	var body NewVehicle
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	ownerID, err := toKernelUUID(userID)
	if err != nil {
		return err
	}
	currency, err := kernel.ParseCurrency(body.Currency)
	if err != nil {
		return err
	}
	tariff, err := user.NewTariff(user.TariffRates(body.Tariff))
	if err != nil {
		return err
	}
	location, err := commandLocation(body.Location)
	if err != nil {
		return err
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewAddVehicleCommand(ownerID, vehicleID, commands.VehicleSpec{
		Type:           user.VehicleType(body.Type),
		Model:          body.Model,
		LicensePlate:   body.LicensePlate,
		MaxWeight:      body.MaxWeight,
		MaxVolume:      body.MaxVolume,
		IsRefrigerated: body.IsRefrigerated,
		Currency:       currency,
		Tariff:         tariff,
	}, location)
	if err != nil {
		return err
	}

	if err = s.handlers.AddVehicle.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: vehicleID.Bytes()})
}

// UpdateVehicle handles PUT /api/v1/users/:userId/vehicles/:vehicleId.
func (s *Server) UpdateVehicle(ctx echo.Context, userID, vehicleID openapi_types.UUID) error {
	var body VehicleUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	ownerID, err := toKernelUUID(userID)
	if err != nil {
		return err
	}
	id, err := toKernelUUID(vehicleID)
	if err != nil {
		return err
	}

	var location *commands.LocationInput
	if body.Location != nil {
		in, locErr := commandLocation(*body.Location)
		if locErr != nil {
			return locErr
		}
		location = &in
	}

	cmd, err := commands.NewUpdateVehicleCommand(ownerID, id, body.Available, location)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateVehicle.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUserOrders handles GET /api/v1/users/:userId/orders.
func (s *Server) GetUserOrders(ctx echo.Context, userID openapi_types.UUID, params GetUserOrdersParams) error {
	id, err := toKernelUUID(userID)
	if err != nil {
		return err
	}

	var role user.Role
	if params.Role != nil {
		role = user.Role(*params.Role)
	}

	query, err := queries.NewGetUserOrdersQuery(id, role)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrders(views))
}

// FindMatches handles POST /api/v1/matches.
func (s *Server) FindMatches(ctx echo.Context) error {
	var body MatchRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	pickup, err := queryLocation(body.Pickup)
	if err != nil {
		return err
	}
	delivery, err := queryLocation(body.Delivery)
	if err != nil {
		return err
	}
	load, err := toCargo(body.Cargo)
	if err != nil {
		return err
	}

	query, err := queries.NewFindMatchingVehiclesQuery(pickup, delivery, load, body.SearchRadiusKm)
	if err != nil {
		return err
	}

	matches, err := s.handlers.FindMatchingVehicles.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	s.metrics.ObserveMatches(len(matches))

	response := make([]Match, 0, len(matches))
	for _, m := range matches {
		response = append(response, Match{
			VehicleID:          m.VehicleID.Bytes(),
			TransporterID:      m.TransporterID.Bytes(),
			TransporterName:    m.TransporterName,
			VehicleType:        m.VehicleType,
			Model:              m.Model,
			LicensePlate:       m.LicensePlate,
			IsRefrigerated:     m.IsRefrigerated,
			VehicleLocation:    toLocation(m.VehicleLocation),
			Price:              m.Price,
			Currency:           m.Currency.String(),
			DistanceKm:         m.DistanceKm,
			ApproachDistanceKm: m.ApproachDistanceKm,
			RemainingWeight:    m.RemainingWeight,
			RemainingVolume:    m.RemainingVolume,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	ordererID, err := toKernelUUID(body.OrdererID)
	if err != nil {
		return err
	}
	vehicleID, err := toKernelUUID(body.VehicleID)
	if err != nil {
		return err
	}
	pickup, err := commandLocation(body.Pickup)
	if err != nil {
		return err
	}
	delivery, err := commandLocation(body.Delivery)
	if err != nil {
		return err
	}
	load, err := toCargo(body.Cargo)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, ordererID, vehicleID, pickup, delivery, load, body.Notes)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// PostOrder handles POST /api/v1/orders/postings.
func (s *Server) PostOrder(ctx echo.Context) error {
	var body NewPosting
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	ordererID, err := toKernelUUID(body.OrdererID)
	if err != nil {
		return err
	}
	currency, err := kernel.ParseCurrency(body.Currency)
	if err != nil {
		return err
	}
	pickup, err := commandLocation(body.Pickup)
	if err != nil {
		return err
	}
	delivery, err := commandLocation(body.Delivery)
	if err != nil {
		return err
	}
	load, err := toCargo(body.Cargo)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPostOrderCommand(orderID, ordererID, pickup, delivery, load, body.Budget, currency, body.Notes)
	if err != nil {
		return err
	}

	if err = s.handlers.PostOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context, params GetAvailableOrdersParams) error {
	vehicleID, err := toKernelUUID(params.VehicleID)
	if err != nil {
		return err
	}

	var maxDistanceKm float64
	if params.MaxDistanceKm != nil {
		maxDistanceKm = *params.MaxDistanceKm
	}

	query, err := queries.NewGetAvailableOrdersQuery(vehicleID, maxDistanceKm)
	if err != nil {
		return err
	}

	available, err := s.handlers.GetAvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]AvailableOrder, 0, len(available))
	for _, a := range available {
		response = append(response, AvailableOrder{
			Order:          toOrder(a.Order),
			DistanceKm:     a.DistanceKm,
			EstimatedPrice: a.EstimatedPrice,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// ProposePrice handles POST /api/v1/orders/:orderId/proposals.
func (s *Server) ProposePrice(ctx echo.Context, orderID openapi_types.UUID) error {
	var body Proposal
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	id, err := toKernelUUID(orderID)
	if err != nil {
		return err
	}
	transporterID, err := toKernelUUID(body.TransporterID)
	if err != nil {
		return err
	}
	vehicleID, err := toKernelUUID(body.VehicleID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewProposePriceCommand(id, transporterID, vehicleID, body.Price)
	if err != nil {
		return err
	}

	if err = s.handlers.ProposePrice.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptProposedPrice handles POST /api/v1/orders/:orderId/proposals/accept.
func (s *Server) AcceptProposedPrice(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernelUUID(orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptProposedPriceCommand(id)
	if err != nil {
		return err
	}

	if err = s.handlers.AcceptProposedPrice.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PUT /api/v1/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error {
	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	id, err := toKernelUUID(orderID)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, status, body.Note)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderLocation handles PUT /api/v1/orders/:orderId/location.
func (s *Server) UpdateOrderLocation(ctx echo.Context, orderID openapi_types.UUID) error {
	var body Location
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	id, err := toKernelUUID(orderID)
	if err != nil {
		return err
	}
	location, err := commandLocation(body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderLocationCommand(id, location)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateOrderLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetVehicleCapacity handles GET /api/v1/vehicles/:vehicleId/capacity.
func (s *Server) GetVehicleCapacity(ctx echo.Context, vehicleID openapi_types.UUID) error {
	id, err := toKernelUUID(vehicleID)
	if err != nil {
		return err
	}

	query, err := queries.NewGetVehicleCapacityQuery(id)
	if err != nil {
		return err
	}

	c, err := s.handlers.GetVehicleCapacity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, VehicleCapacity{
		VehicleID:       c.VehicleID.Bytes(),
		TransporterID:   c.TransporterID.Bytes(),
		LicensePlate:    c.LicensePlate,
		MaxWeight:       c.MaxWeight,
		MaxVolume:       c.MaxVolume,
		RemainingWeight: c.RemainingWeight,
		RemainingVolume: c.RemainingVolume,
		AssignedOrders:  toOrders(c.AssignedOrders),
		Overbooked:      c.Overbooked,
	})
}

func badRequest(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
