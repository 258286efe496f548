package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockQueryHandler[Q, R any] struct {
	mock.Mock
}

func (m *MockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.(R), args.Error(1)
	}
	var zero R
	return zero, args.Error(1)
}

type fixture struct {
	registerUser  *MockCommandHandler[commands.RegisterUserCommand]
	addVehicle    *MockCommandHandler[commands.AddVehicleCommand]
	createOrder   *MockCommandHandler[commands.CreateOrderCommand]
	updateStatus  *MockCommandHandler[commands.UpdateOrderStatusCommand]
	updateLoc     *MockCommandHandler[commands.UpdateOrderLocationCommand]
	proposePrice  *MockCommandHandler[commands.ProposePriceCommand]
	findMatches   *MockQueryHandler[queries.FindMatchingVehiclesQuery, []queries.FindMatchingVehiclesQueryResponse]
	getOrder      *MockQueryHandler[queries.GetOrderQuery, queries.OrderView]
	getUserOrders *MockQueryHandler[queries.GetUserOrdersQuery, []queries.OrderView]
	available     *MockQueryHandler[queries.GetAvailableOrdersQuery, []queries.GetAvailableOrdersQueryResponse]
	capacity      *MockQueryHandler[queries.GetVehicleCapacityQuery, queries.VehicleCapacityResponse]
	registry      *prometheus.Registry
	echo          *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		registerUser:  new(MockCommandHandler[commands.RegisterUserCommand]),
		addVehicle:    new(MockCommandHandler[commands.AddVehicleCommand]),
		createOrder:   new(MockCommandHandler[commands.CreateOrderCommand]),
		updateStatus:  new(MockCommandHandler[commands.UpdateOrderStatusCommand]),
		updateLoc:     new(MockCommandHandler[commands.UpdateOrderLocationCommand]),
		proposePrice:  new(MockCommandHandler[commands.ProposePriceCommand]),
		findMatches:   new(MockQueryHandler[queries.FindMatchingVehiclesQuery, []queries.FindMatchingVehiclesQueryResponse]),
		getOrder:      new(MockQueryHandler[queries.GetOrderQuery, queries.OrderView]),
		getUserOrders: new(MockQueryHandler[queries.GetUserOrdersQuery, []queries.OrderView]),
		available:     new(MockQueryHandler[queries.GetAvailableOrdersQuery, []queries.GetAvailableOrdersQueryResponse]),
		capacity:      new(MockQueryHandler[queries.GetVehicleCapacityQuery, queries.VehicleCapacityResponse]),
		registry:      prometheus.NewRegistry(),
	}

	metrics := httpadapter.NewMetrics(f.registry)
	server := httpadapter.NewServer(httpadapter.Handlers{
		RegisterUser:         f.registerUser,
		AddVehicle:           f.addVehicle,
		CreateOrder:          f.createOrder,
		UpdateOrderStatus:    f.updateStatus,
		UpdateOrderLocation:  f.updateLoc,
		ProposePrice:         f.proposePrice,
		FindMatchingVehicles: f.findMatches,
		GetOrder:             f.getOrder,
		GetUserOrders:        f.getUserOrders,
		GetAvailableOrders:   f.available,
		GetVehicleCapacity:   f.capacity,
	}, metrics)
	f.echo = httpadapter.NewRouter(server, metrics, f.registry, zap.NewNop())
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const cargoJSON = `{"description":"pallets","weight":400,"length":120,"width":80,"height":100,"items":2}`

func TestServer_Health(t *testing.T) {
	rec := newFixture(t).do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_RegisterUser(t *testing.T) {
	t.Run("should create a transporter", func(t *testing.T) {
		f := newFixture(t)
		f.registerUser.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterUserCommand) bool {
			return cmd.Role() == user.Transporter && cmd.Name() == "Nordfracht"
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/users",
			`{"name":"Nordfracht","email":"ops@nordfracht.example","role":"transporter"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var created httpadapter.Created
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEqual(t, [16]byte{}, [16]byte(created.ID))
		f.registerUser.AssertExpectations(t)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/users", `{"name":"X","email":"x@example.com","role":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.registerUser.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodPost, "/api/v1/users", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_AddVehicle(t *testing.T) {
	t.Run("should forbid vehicles for orderers", func(t *testing.T) {
		f := newFixture(t)
		f.addVehicle.On("Handle", mock.Anything, mock.Anything).Return(user.ErrOnlyTransporterOwnsVehicles)

		rec := f.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%s/vehicles", kernel.NewUUID()),
			`{"type":"truck","licensePlate":"B-1","maxWeight":1000,"maxVolume":20,"currency":"EUR",
			  "tariff":{"basePrice":100,"pricePerKm":1},"location":{"address":"Berlin","latitude":52.52,"longitude":13.405}}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should reject a half coordinate", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%s/vehicles", kernel.NewUUID()),
			`{"type":"truck","licensePlate":"B-1","maxWeight":1000,"maxVolume":20,"currency":"EUR",
			  "tariff":{"basePrice":100},"location":{"address":"Berlin","latitude":52.52}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.addVehicle.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an invalid user id", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodPost, "/api/v1/users/not-a-uuid/vehicles", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_FindMatches(t *testing.T) {
	t.Run("should return priced vehicles", func(t *testing.T) {
		f := newFixture(t)
		lat, lon := 52.52, 13.405
		vehicleID := kernel.NewUUID()
		f.findMatches.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.FindMatchingVehiclesQuery) bool {
			return q.SearchRadiusKm() == 25 && q.Pickup().Coordinate == nil && q.Delivery().Coordinate != nil
		})).Return([]queries.FindMatchingVehiclesQueryResponse{{
			VehicleID:       vehicleID,
			TransporterID:   kernel.NewUUID(),
			TransporterName: "Nordfracht",
			VehicleType:     "truck",
			VehicleLocation: queries.LocationView{Address: "Berlin", Latitude: &lat, Longitude: &lon},
			Price:           351,
			Currency:        kernel.EUR,
			DistanceKm:      120.5,
		}}, nil)

		rec := f.do(http.MethodPost, "/api/v1/matches", `{
			"pickupLocation":{"address":"Berlin"},
			"deliveryLocation":{"address":"Leipzig","latitude":51.34,"longitude":12.37},
			"cargo":`+cargoJSON+`,"searchRadiusKm":25}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var matches []httpadapter.Match
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, vehicleID.String(), matches[0].VehicleID.String())
		assert.Equal(t, "EUR", matches[0].Currency)
		assert.InDelta(t, 351, matches[0].Price, 1e-9)

		count, err := testutil.GatherAndCount(f.registry, "freight_match_searches_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("should return an empty list", func(t *testing.T) {
		f := newFixture(t)
		f.findMatches.On("Handle", mock.Anything, mock.Anything).Return([]queries.FindMatchingVehiclesQueryResponse{}, nil)

		rec := f.do(http.MethodPost, "/api/v1/matches", `{
			"pickupLocation":{"address":"Berlin"},"deliveryLocation":{"address":"Leipzig"},"cargo":`+cargoJSON+`}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should map unresolved addresses to 422", func(t *testing.T) {
		f := newFixture(t)
		f.findMatches.On("Handle", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: Atlantis", queries.ErrAddressNotResolved))

		rec := f.do(http.MethodPost, "/api/v1/matches", `{
			"pickupLocation":{"address":"Atlantis"},"deliveryLocation":{"address":"Leipzig"},"cargo":`+cargoJSON+`}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "Atlantis")
	})

	t.Run("should map geocoder outages to 502", func(t *testing.T) {
		f := newFixture(t)
		f.findMatches.On("Handle", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: geocode %q: %w", ports.ErrGeocoderUnavailable, "Berlin", errors.New("timeout")))

		rec := f.do(http.MethodPost, "/api/v1/matches", `{
			"pickupLocation":{"address":"Berlin"},"deliveryLocation":{"address":"Leipzig"},"cargo":`+cargoJSON+`}`)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should reject invalid cargo", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/matches", `{
			"pickupLocation":{"address":"Berlin"},"deliveryLocation":{"address":"Leipzig"},
			"cargo":{"description":"x","weight":-1,"length":1,"width":1,"height":1,"items":1}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CreateOrder(t *testing.T) {
	body := fmt.Sprintf(`{"ordererId":%q,"vehicleId":%q,
		"pickupLocation":{"address":"Berlin"},"deliveryLocation":{"address":"Leipzig"},"cargo":%s}`,
		kernel.NewUUID(), kernel.NewUUID(), cargoJSON)

	t.Run("should return the new order id", func(t *testing.T) {
		f := newFixture(t)
		f.createOrder.On("Handle", mock.Anything, mock.Anything).Return(nil)

		rec := f.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("should map overbooking to 409", func(t *testing.T) {
		f := newFixture(t)
		f.createOrder.On("Handle", mock.Anything, mock.Anything).Return(commands.ErrVehicleCapacityExceeded)

		rec := f.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should hide internal errors", func(t *testing.T) {
		f := newFixture(t)
		f.createOrder.On("Handle", mock.Anything, mock.Anything).Return(errors.New("pq: connection reset"))

		rec := f.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, decodeError(t, rec).Message, "pq")
	})
}

func TestServer_GetOrder(t *testing.T) {
	t.Run("should render the order", func(t *testing.T) {
		f := newFixture(t)
		orderID := kernel.NewUUID()
		vehicleID := kernel.NewUUID()
		f.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.OrderID().IsEqual(orderID)
		})).Return(queries.OrderView{
			ID:            orderID,
			OrdererID:     kernel.NewUUID(),
			VehicleID:     &vehicleID,
			Status:        order.InTransit,
			Pickup:        queries.LocationView{Address: "Berlin"},
			Currency:      kernel.EUR,
			Price:         351,
			StatusUpdates: []queries.StatusUpdateView{{Status: order.Accepted}},
			Version:       3,
		}, nil)

		rec := f.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got httpadapter.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "in_transit", got.Status)
		require.NotNil(t, got.VehicleID)
		assert.Equal(t, vehicleID.String(), got.VehicleID.String())
		assert.Nil(t, got.TransporterID)
		assert.Len(t, got.StatusUpdates, 1)
		assert.Equal(t, int64(3), got.Version)
	})

	t.Run("should map missing orders to 404", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(nil, errs.NewObjectNotFoundError("order", id.String()))

		rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodGet, "/api/v1/orders/42", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		expected int
	}{
		{name: "accepted", body: `{"status":"pickup","note":"dock 3"}`, expected: http.StatusNoContent},
		{name: "unknown status", body: `{"status":"lost"}`, expected: http.StatusBadRequest},
		{name: "illegal transition", body: `{"status":"delivered"}`, err: order.ErrIllegalStatusTransition, expected: http.StatusConflict},
		{name: "stale version", body: `{"status":"pickup"}`, err: errs.NewVersionIsInvalidError("order"), expected: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.updateStatus.On("Handle", mock.Anything, mock.Anything).Return(tt.err).Maybe()

			rec := f.do(http.MethodPut, fmt.Sprintf("/api/v1/orders/%s/status", kernel.NewUUID()), tt.body)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestServer_UpdateOrderLocation(t *testing.T) {
	f := newFixture(t)
	f.updateLoc.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderLocationCommand) bool {
		return cmd.Location().Address == "A9 km 120" && cmd.Location().Coordinate != nil
	})).Return(nil)

	rec := f.do(http.MethodPut, fmt.Sprintf("/api/v1/orders/%s/location", kernel.NewUUID()),
		`{"address":"A9 km 120","latitude":51.9,"longitude":12.2}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.updateLoc.AssertExpectations(t)
}

func TestServer_GetUserOrders(t *testing.T) {
	t.Run("should pass the role filter", func(t *testing.T) {
		f := newFixture(t)
		f.getUserOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUserOrdersQuery) bool {
			return q.Role() == user.Orderer
		})).Return([]queries.OrderView{}, nil)

		rec := f.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%s/orders?role=orderer", kernel.NewUUID()), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodGet, fmt.Sprintf("/api/v1/users/%s/orders?role=admin", kernel.NewUUID()), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetAvailableOrders(t *testing.T) {
	t.Run("should require a vehicle id", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodGet, "/api/v1/orders/available", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should pass the distance limit", func(t *testing.T) {
		f := newFixture(t)
		vehicleID := kernel.NewUUID()
		f.available.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAvailableOrdersQuery) bool {
			return q.VehicleID().IsEqual(vehicleID) && q.MaxDistanceKm() == 80
		})).Return([]queries.GetAvailableOrdersQueryResponse{{
			Order:          queries.OrderView{ID: kernel.NewUUID(), Status: order.Pending, Currency: kernel.USD},
			DistanceKm:     12.5,
			EstimatedPrice: 220,
		}}, nil)

		rec := f.do(http.MethodGet, fmt.Sprintf("/api/v1/orders/available?vehicleId=%s&maxDistanceKm=80", vehicleID), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got []httpadapter.AvailableOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "pending", got[0].Order.Status)
		assert.InDelta(t, 12.5, got[0].DistanceKm, 1e-9)
	})
}

func TestServer_GetVehicleCapacity(t *testing.T) {
	f := newFixture(t)
	vehicleID := kernel.NewUUID()
	first, second := kernel.NewUUID(), kernel.NewUUID()
	f.capacity.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetVehicleCapacityQuery) bool {
		return q.VehicleID().IsEqual(vehicleID)
	})).Return(queries.VehicleCapacityResponse{
		VehicleID:       vehicleID,
		TransporterID:   kernel.NewUUID(),
		MaxWeight:       1000,
		RemainingWeight: 200,
		AssignedOrders: []queries.OrderView{
			{ID: first, Status: order.Accepted, Currency: kernel.EUR},
			{ID: second, Status: order.InTransit, Currency: kernel.EUR},
		},
	}, nil)

	rec := f.do(http.MethodGet, "/api/v1/vehicles/"+vehicleID.String()+"/capacity", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got httpadapter.VehicleCapacity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.AssignedOrders, 2)
	assert.Equal(t, first.String(), got.AssignedOrders[0].ID.String())
	assert.Equal(t, "in_transit", got.AssignedOrders[1].Status)
	assert.InDelta(t, 200, got.RemainingWeight, 1e-9)
	assert.False(t, got.Overbooked)
}

func TestServer_ProposePrice(t *testing.T) {
	orderID := kernel.NewUUID()
	target := "/api/v1/orders/" + orderID.String() + "/proposals"
	body := func(price string) string {
		return fmt.Sprintf(`{"transporterId":%q,"vehicleId":%q,"price":%s}`,
			kernel.NewUUID().String(), kernel.NewUUID().String(), price)
	}

	t.Run("should store the price in cents", func(t *testing.T) {
		f := newFixture(t)
		f.proposePrice.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProposePriceCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && cmd.Price() == 512.35
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, target, body("512.349"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.proposePrice.AssertExpectations(t)
	})

	t.Run("should reject a price the ledger cannot hold", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, target, body("1e12"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
		f.proposePrice.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_Metrics(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, "/health", "")

	rec := f.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `freight_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
