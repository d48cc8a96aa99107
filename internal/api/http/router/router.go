package router

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/offerhub/user-service/internal/api/http/handler"
	"github.com/offerhub/user-service/internal/api/http/middleware"
	"github.com/offerhub/user-service/internal/logger"
)

const healthCheckTimeout = 2 * time.Second

// Router wires REST endpoints to the user service.
type Router struct {
	userService    handler.UserService
	logger         *logger.Logger
	requestTimeout time.Duration
	dbHealth       func(context.Context) error
}

// New creates a new Router instance.
func New(
	userService handler.UserService,
	logger *logger.Logger,
	requestTimeout time.Duration,
	dbHealth func(context.Context) error,
) *Router {
	return &Router{
		userService:    userService,
		logger:         logger,
		requestTimeout: requestTimeout,
		dbHealth:       dbHealth,
	}
}

// Register assembles the echo instance with middleware and routes.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	logging := middleware.NewLogging(r.logger)
	timeout := middleware.NewTimeout(r.requestTimeout)

	e.Use(echomw.Recover())
	e.Use(logging.Handle)
	e.Use(timeout.Handle)

	userHandler := handler.NewUser(r.userService, r.logger)

	users := e.Group("/api/users")
	users.GET("", userHandler.GetAll)
	users.POST("", userHandler.Create)
	users.POST("/login", userHandler.Login)
	users.GET("/validate", userHandler.Validate)
	users.GET("/:id", userHandler.GetByID)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	e.GET("/healthz", r.health)

	return e
}

func (r *Router) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := r.dbHealth(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
