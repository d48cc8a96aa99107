package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/offerhub/user-service/internal/model"
)

// handleError maps domain errors to HTTP responses. Anything without a known
// kind surfaces as a generic 500; nothing is swallowed or retried.
func handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	case errors.Is(err, model.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	case errors.Is(err, model.ErrEmailTaken):
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already in use"})
	case errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
