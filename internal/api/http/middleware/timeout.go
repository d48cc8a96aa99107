package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// Timeout bounds every request with a deadline so a slow store call cannot
// hold a request open indefinitely.
type Timeout struct {
	duration time.Duration
}

// NewTimeout creates a new Timeout middleware.
func NewTimeout(duration time.Duration) *Timeout {
	return &Timeout{duration: duration}
}

// Handle attaches the deadline to the request context.
func (t *Timeout) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if t.duration <= 0 {
			return next(c)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), t.duration)
		defer cancel()

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
