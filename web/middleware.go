package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware assigns each request an id, echoed in the response and
// attached to the request-scoped logger.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.Must(uuid.NewV4()).String()
			}

			c.Response().Header().Set(requestIDHeader, id)
			c.Set("requestId", id)

			return next(c)
		}
	}
}

// ErrorLogAndMaskMiddleware logs handler errors and masks anything that is
// not already a deliberate HTTP error, so internal details never reach the
// response body.
func ErrorLogAndMaskMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			requestID, _ := c.Get("requestId").(string)
			logger.ErrorContext(
				c.Request().Context(),
				"request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("requestId", requestID),
				slog.String("error", err.Error()),
			)

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr
			}

			return echo.NewHTTPError(http.StatusInternalServerError)
		}
	}
}
