package http

import (
	"errors"
	"net/http"

	"storefront/internal/adapters/out/identity"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Message string `json:"message"`
}

func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, rider.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden), errors.Is(err, errs.ErrNotAssigned):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrTransactionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// displayable errors keep their own text on a 5xx; the driver detail they
// wrap is still withheld.
var displayable = []error{
	identity.ErrInvalidCredential,
	errs.ErrReconciliation,
	errs.ErrSequenceAllocation,
}

func serverMessage(err error, fallback string) string {
	for _, sentinel := range displayable {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return fallback
}

// fail writes err as a JSON error. Server errors are logged and answered with
// the failure's displayable text, or fallback when it has none.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	status := statusFor(err)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = serverMessage(err, fallback)
	}

	return ctx.JSON(status, Error{Message: message})
}
