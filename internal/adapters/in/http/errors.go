package http

import (
	"errors"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps use case errors to HTTP statuses. Unknown errors are 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, user.ErrVehicleNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrUserIsNotOrderer),
		errors.Is(err, user.ErrOnlyTransporterOwnsVehicles):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrNoProposedPrice),
		errors.Is(err, order.ErrIllegalStatusTransition),
		errors.Is(err, commands.ErrVehicleCapacityExceeded),
		errors.Is(err, commands.ErrVehicleNotAvailable),
		errors.Is(err, commands.ErrVehicleCannotCarryCargo),
		errors.Is(err, user.ErrVehicleAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, commands.ErrAddressNotResolved),
		errors.Is(err, queries.ErrAddressNotResolved):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrGeocoderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every error returned by a handler as an Error body.
// Only server side failures are logged.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := statusOf(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", ctx.Request().Method),
				zap.String("path", ctx.Path()),
				zap.Int("status", code),
				zap.Error(err))
			if code == http.StatusInternalServerError {
				message = http.StatusText(code)
			}
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, Error{Code: code, Message: message})
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}
