package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

// kindToStatus is the total mapping from the closed failure taxonomy to
// HTTP status codes. Kinds missing from the table fall through to 500.
var kindToStatus = map[domain.ErrorKind]int{
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindConflict:     http.StatusConflict,
	domain.KindConfig:       http.StatusInternalServerError,
	domain.KindInternal:     http.StatusInternalServerError,
}

// NewHTTPErrorHandler returns the single boundary where internal
// failures become an external contract:
//   - Tagged domain errors map to their status through kindToStatus.
//   - Echo's own errors (bind failures, 404 from router) pass through.
//   - Anything else renders a generic 500 without leaking internals.
//
// Every intercepted fault is logged before the response is written.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		log.Warn().
			Int("status", resp.StatusCode).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg(resp.Message)

		_ = c.JSON(resp.StatusCode, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorResponse {
	var de *domain.Error
	if errors.As(err, &de) {
		status, ok := kindToStatus[de.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		return errorResponse{
			StatusCode: status,
			Message:    de.Message,
			Errors:     de.Details,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{
			StatusCode: he.Code,
			Message:    fmt.Sprintf("%v", he.Message),
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return errorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
	}
}
