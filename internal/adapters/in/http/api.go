package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type Location struct {
	Address   string     `json:"address"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Cargo struct {
	Description           string  `json:"description"`
	Weight                float64 `json:"weight"`
	Length                float64 `json:"length"`
	Width                 float64 `json:"width"`
	Height                float64 `json:"height"`
	Volume                float64 `json:"volume,omitempty"`
	Items                 int     `json:"items"`
	RequiresRefrigeration bool    `json:"requiresRefrigeration"`
	IsHazardous           bool    `json:"isHazardous"`
	IsUrgent              bool    `json:"isUrgent"`
}

type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type Tariff struct {
	BasePrice            float64 `json:"basePrice"`
	PricePerKm           float64 `json:"pricePerKm"`
	PricePerApproachKm   float64 `json:"pricePerApproachKm"`
	PricePerKg           float64 `json:"pricePerKg"`
	PricePerM3           float64 `json:"pricePerM3"`
	CoolingCoefficient   float64 `json:"coolingCoefficient"`
	HazardousCoefficient float64 `json:"hazardousCoefficient"`
	UrgentCoefficient    float64 `json:"urgentCoefficient"`
}

type NewVehicle struct {
	Type           string   `json:"type"`
	Model          string   `json:"model"`
	LicensePlate   string   `json:"licensePlate"`
	MaxWeight      float64  `json:"maxWeight"`
	MaxVolume      float64  `json:"maxVolume"`
	IsRefrigerated bool     `json:"isRefrigerated"`
	Currency       string   `json:"currency"`
	Tariff         Tariff   `json:"tariff"`
	Location       Location `json:"location"`
}

type VehicleUpdate struct {
	Available bool      `json:"available"`
	Location  *Location `json:"location,omitempty"`
}

type MatchRequest struct {
	Pickup         Location `json:"pickupLocation"`
	Delivery       Location `json:"deliveryLocation"`
	Cargo          Cargo    `json:"cargo"`
	SearchRadiusKm float64  `json:"searchRadiusKm"`
}

type Match struct {
	VehicleID          openapi_types.UUID `json:"vehicleId"`
	TransporterID      openapi_types.UUID `json:"transporterId"`
	TransporterName    string             `json:"transporterName"`
	VehicleType        string             `json:"vehicleType"`
	Model              string             `json:"model"`
	LicensePlate       string             `json:"licensePlate"`
	IsRefrigerated     bool               `json:"isRefrigerated"`
	VehicleLocation    Location           `json:"vehicleLocation"`
	Price              float64            `json:"price"`
	Currency           string             `json:"currency"`
	DistanceKm         float64            `json:"distanceKm"`
	ApproachDistanceKm float64            `json:"approachDistanceKm"`
	RemainingWeight    float64            `json:"remainingWeight"`
	RemainingVolume    float64            `json:"remainingVolume"`
}

type NewOrder struct {
	OrdererID openapi_types.UUID `json:"ordererId"`
	VehicleID openapi_types.UUID `json:"vehicleId"`
	Pickup    Location           `json:"pickupLocation"`
	Delivery  Location           `json:"deliveryLocation"`
	Cargo     Cargo              `json:"cargo"`
	Notes     string             `json:"notes"`
}

type NewPosting struct {
	OrdererID openapi_types.UUID `json:"ordererId"`
	Pickup    Location           `json:"pickupLocation"`
	Delivery  Location           `json:"deliveryLocation"`
	Cargo     Cargo              `json:"cargo"`
	Budget    float64            `json:"budget"`
	Currency  string             `json:"currency"`
	Notes     string             `json:"notes"`
}

type Proposal struct {
	TransporterID openapi_types.UUID `json:"transporterId"`
	VehicleID     openapi_types.UUID `json:"vehicleId"`
	Price         float64            `json:"price"`
}

type StatusChange struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type StatusUpdate struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type Order struct {
	ID                 openapi_types.UUID  `json:"id"`
	OrdererID          openapi_types.UUID  `json:"ordererId"`
	TransporterID      *openapi_types.UUID `json:"transporterId,omitempty"`
	VehicleID          *openapi_types.UUID `json:"vehicleId,omitempty"`
	Status             string              `json:"status"`
	Pickup             Location            `json:"pickupLocation"`
	Delivery           Location            `json:"deliveryLocation"`
	Cargo              Cargo               `json:"cargo"`
	Price              float64             `json:"price"`
	ProposedPrice      *float64            `json:"proposedPrice,omitempty"`
	PriceConfirmed     bool                `json:"priceConfirmed"`
	Currency           string              `json:"currency"`
	DistanceKm         float64             `json:"distanceKm"`
	ApproachDistanceKm float64             `json:"approachDistanceKm"`
	StatusUpdates      []StatusUpdate      `json:"statusUpdates"`
	CurrentLocation    *Location           `json:"currentLocation,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	Version            int64               `json:"version"`
}

type AvailableOrder struct {
	Order          Order   `json:"order"`
	DistanceKm     float64 `json:"distanceKm"`
	EstimatedPrice float64 `json:"estimatedPrice"`
}

type VehicleCapacity struct {
	VehicleID       openapi_types.UUID `json:"vehicleId"`
	TransporterID   openapi_types.UUID `json:"transporterId"`
	LicensePlate    string             `json:"licensePlate"`
	MaxWeight       float64            `json:"maxWeight"`
	MaxVolume       float64            `json:"maxVolume"`
	RemainingWeight float64            `json:"remainingWeight"`
	RemainingVolume float64            `json:"remainingVolume"`
	AssignedOrders  []Order            `json:"assignedOrders"`
	Overbooked      bool               `json:"overbooked"`
}

// GetUserOrdersParams defines parameters for GetUserOrders.
type GetUserOrdersParams struct {
	Role *string `form:"role,omitempty" json:"role,omitempty"`
}

// GetAvailableOrdersParams defines parameters for GetAvailableOrders.
type GetAvailableOrdersParams struct {
	VehicleID     openapi_types.UUID `form:"vehicleId" json:"vehicleId"`
	MaxDistanceKm *float64           `form:"maxDistanceKm,omitempty" json:"maxDistanceKm,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/users)
	RegisterUser(ctx echo.Context) error
	// (POST /api/v1/users/{userId}/vehicles)
	AddVehicle(ctx echo.Context, userID openapi_types.UUID) error
	// (PUT /api/v1/users/{userId}/vehicles/{vehicleId})
	UpdateVehicle(ctx echo.Context, userID openapi_types.UUID, vehicleID openapi_types.UUID) error
	// (GET /api/v1/users/{userId}/orders)
	GetUserOrders(ctx echo.Context, userID openapi_types.UUID, params GetUserOrdersParams) error
	// (POST /api/v1/matches)
	FindMatches(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (POST /api/v1/orders/postings)
	PostOrder(ctx echo.Context) error
	// (GET /api/v1/orders/available)
	GetAvailableOrders(ctx echo.Context, params GetAvailableOrdersParams) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/proposals)
	ProposePrice(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/proposals/accept)
	AcceptProposedPrice(ctx echo.Context, orderID openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId}/location)
	UpdateOrderLocation(ctx echo.Context, orderID openapi_types.UUID) error
	// (GET /api/v1/vehicles/{vehicleId}/capacity)
	GetVehicleCapacity(ctx echo.Context, vehicleID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) AddVehicle(ctx echo.Context) error {
	userID, err := bindPathUUID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.AddVehicle(ctx, userID)
}

func (w *ServerInterfaceWrapper) UpdateVehicle(ctx echo.Context) error {
	userID, err := bindPathUUID(ctx, "userId")
	if err != nil {
		return err
	}
	vehicleID, err := bindPathUUID(ctx, "vehicleId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateVehicle(ctx, userID, vehicleID)
}

func (w *ServerInterfaceWrapper) GetUserOrders(ctx echo.Context) error {
	userID, err := bindPathUUID(ctx, "userId")
	if err != nil {
		return err
	}

	var params GetUserOrdersParams
	err = runtime.BindQueryParameter("form", true, false, "role", ctx.QueryParams(), &params.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter role: %s", err))
	}

	return w.Handler.GetUserOrders(ctx, userID, params)
}

func (w *ServerInterfaceWrapper) FindMatches(ctx echo.Context) error {
	return w.Handler.FindMatches(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) PostOrder(ctx echo.Context) error {
	return w.Handler.PostOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetAvailableOrders(ctx echo.Context) error {
	var params GetAvailableOrdersParams

	err := runtime.BindQueryParameter("form", true, true, "vehicleId", ctx.QueryParams(), &params.VehicleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter vehicleId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "maxDistanceKm", ctx.QueryParams(), &params.MaxDistanceKm)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter maxDistanceKm: %s", err))
	}

	return w.Handler.GetAvailableOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ProposePrice(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ProposePrice(ctx, orderID)
}

func (w *ServerInterfaceWrapper) AcceptProposedPrice(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AcceptProposedPrice(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrderLocation(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderLocation(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetVehicleCapacity(ctx echo.Context) error {
	vehicleID, err := bindPathUUID(ctx, "vehicleId")
	if err != nil {
		return err
	}
	return w.Handler.GetVehicleCapacity(ctx, vehicleID)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/users", w.RegisterUser)
	router.POST(baseURL+"/api/v1/users/:userId/vehicles", w.AddVehicle)
	router.PUT(baseURL+"/api/v1/users/:userId/vehicles/:vehicleId", w.UpdateVehicle)
	router.GET(baseURL+"/api/v1/users/:userId/orders", w.GetUserOrders)
	router.POST(baseURL+"/api/v1/matches", w.FindMatches)
	router.POST(baseURL+"/api/v1/orders", w.CreateOrder)
	router.POST(baseURL+"/api/v1/orders/postings", w.PostOrder)
	router.GET(baseURL+"/api/v1/orders/available", w.GetAvailableOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", w.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/proposals", w.ProposePrice)
	router.POST(baseURL+"/api/v1/orders/:orderId/proposals/accept", w.AcceptProposedPrice)
	router.PUT(baseURL+"/api/v1/orders/:orderId/status", w.UpdateOrderStatus)
	router.PUT(baseURL+"/api/v1/orders/:orderId/location", w.UpdateOrderLocation)
	router.GET(baseURL+"/api/v1/vehicles/:vehicleId/capacity", w.GetVehicleCapacity)
}
