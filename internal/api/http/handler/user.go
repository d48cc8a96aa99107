package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/offerhub/user-service/internal/logger"
	"github.com/offerhub/user-service/internal/model"
	"github.com/offerhub/user-service/internal/service"
)

// UserService defines the user management operations consumed by the handlers.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	Create(ctx context.Context, params service.CreateParams) (model.User, error)
	Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Login(ctx context.Context, email, password string) (string, error)
	Validate(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// User handles REST endpoints for the user resource.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type createRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetAll returns every user. --> GET /api/users
func (h *User) GetAll(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("User handler: list failed", "error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

// GetByID returns a single user. --> GET /api/users/:id
func (h *User) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed id cannot address any user.
		return handleError(c, model.ErrNotFound)
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Create persists a new user. --> POST /api/users
func (h *User) Create(c echo.Context) error {
	req := createRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.userService.Create(c.Request().Context(), service.CreateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.Error("User handler: create failed",
			"email", req.Email,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Update merges the supplied fields into an existing user. --> PUT /api/users/:id
func (h *User) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handleError(c, model.ErrNotFound)
	}

	patch := model.UserPatch{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.userService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Delete permanently removes a user. --> DELETE /api/users/:id
func (h *User) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handleError(c, model.ErrNotFound)
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Login verifies credentials and returns a bearer token. --> POST /api/users/login
func (h *User) Login(c echo.Context) error {
	req := loginRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Validate checks a bearer token and returns the bound user ID. --> GET /api/users/validate
func (h *User) Validate(c echo.Context) error {
	token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	token = strings.TrimSpace(token)
	if token == "" {
		return handleError(c, model.ErrTokenInvalid)
	}

	userID, err := h.userService.Validate(c.Request().Context(), token)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"userId": userID.String()})
}
