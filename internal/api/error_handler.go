package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    domain.ErrorCode    `json:"code"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders AppErrors with their own status, code and field details.
//   - Maps Echo's own errors (router 404, bind failures) into the envelope.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	if appErr, ok := domain.AsAppError(err); ok {
		return appErr.Status, errorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
			Errors:  appErr.Fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := domain.CodeValidationError
		switch he.Code {
		case http.StatusNotFound:
			code = domain.CodeNotFound
		case http.StatusUnauthorized:
			code = domain.CodeUnauthorized
		case http.StatusForbidden:
			code = domain.CodeForbidden
		case http.StatusInternalServerError:
			code = domain.CodeInternalServerError
		}
		return he.Code, errorResponse{
			Message: fmt.Sprintf("%v", he.Message),
			Code:    code,
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{
		Message: "Internal server error",
		Code:    domain.CodeInternalServerError,
	}
}
