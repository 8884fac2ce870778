package handlers

import (
	"errors"
	"net/http"

	"dar_almal_go/console"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

// serviceError maps the service error taxonomy onto HTTP responses. Store
// failures stay generic; the caller is expected to retry or re-fetch.
func serviceError(c echo.Context, err error) error {
	if ve, ok := services.IsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Branch not found"})
	case errors.Is(err, services.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	case errors.Is(err, services.ErrNoMatch):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No match for address"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Lookup failed, try again"})
	case errors.Is(err, console.ErrNoEdit), errors.Is(err, console.ErrNotArmed):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
