package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/offerhub/user-service/internal/mocks"
	"github.com/offerhub/user-service/internal/model"
	"github.com/offerhub/user-service/internal/service"
	"github.com/offerhub/user-service/internal/testutil"
)

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUser_GetAll(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)
	svc.On("List", mock.Anything).Return([]model.User{
		{ID: uuid.New(), FirstName: "John", LastName: "Doe", Email: "john@example.com"},
		{ID: uuid.New(), FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
	}, nil)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodGet, "/api/users", "")

	require.NoError(t, h.GetAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestUser_GetByID_Found(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	hash := "$2a$10$storedhash"
	svc := mocks.NewUserService(t)
	svc.On("Get", mock.Anything, id).Return(model.User{
		ID:           id,
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john@example.com",
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id.String())
	assert.NotContains(t, rec.Body.String(), hash)
}

func TestUser_GetByID_MalformedID(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("doesnotexist")

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestUser_GetByID_Absent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewUserService(t)
	svc.On("Get", mock.Anything, id).Return(model.User{}, model.ErrNotFound)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestUser_Create(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	now := time.Now()
	svc := mocks.NewUserService(t)
	svc.On("Create", mock.Anything, service.CreateParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "secret",
	}).Return(model.User{
		ID:        id,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/api/users",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com","password":"secret"}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body["id"])
	assert.NotEmpty(t, body["createdAt"])
	assert.NotEmpty(t, body["updatedAt"])
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestUser_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)
	svc.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/api/users",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com"}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUser_Create_MalformedBody(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/api/users", `{"firstName":`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUser_Update(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewUserService(t)
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(p model.UserPatch) bool {
		return p.FirstName != nil && *p.FirstName == "X" && p.LastName == nil && p.Email == nil
	})).Return(model.User{ID: id, FirstName: "X", LastName: "Doe", Email: "john@example.com"}, nil)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodPut, "/", `{"firstName":"X"}`)
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"X"`)
}

func TestUser_Update_Absent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewUserService(t)
	svc.On("Update", mock.Anything, id, mock.Anything).Return(model.User{}, model.ErrNotFound)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodPut, "/", `{"firstName":"X"}`)
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestUser_Delete_ThenAbsent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &mocks.UserService{}
	svc.On("Delete", mock.Anything, id).Return(nil).Once()
	svc.On("Delete", mock.Anything, id).Return(model.ErrNotFound)

	h := NewUser(svc, testutil.MakeNoopLogger())

	c, rec := newJSONContext(t, http.MethodDelete, "/", "")
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	c, rec = newJSONContext(t, http.MethodDelete, "/", "")
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUser_Login(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)
	svc.On("Login", mock.Anything, "john@example.com", "secret").Return("signed-token", nil)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"email":"john@example.com","password":"secret"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"signed-token"}`, rec.Body.String())
}

func TestUser_Login_InvalidCredentials_SameBody(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)
	svc.On("Login", mock.Anything, "missing@example.com", "secret").Return("", model.ErrInvalidCredentials)
	svc.On("Login", mock.Anything, "john@example.com", "wrong").Return("", model.ErrInvalidCredentials)

	h := NewUser(svc, testutil.MakeNoopLogger())

	c, recMissing := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"email":"missing@example.com","password":"secret"}`)
	require.NoError(t, h.Login(c))

	c, recWrong := newJSONContext(t, http.MethodPost, "/api/users/login",
		`{"email":"john@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, recMissing.Code)
	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, recMissing.Body.String(), recWrong.Body.String())
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, recMissing.Body.String())
}

func TestUser_Validate(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewUserService(t)
	svc.On("Validate", mock.Anything, "signed-token").Return(id, nil)

	h := NewUser(svc, testutil.MakeNoopLogger())
	c, rec := newJSONContext(t, http.MethodGet, "/api/users/validate", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer signed-token")

	require.NoError(t, h.Validate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id.String())
}

func TestUser_Validate_MissingOrExpiredToken(t *testing.T) {
	t.Parallel()

	svc := mocks.NewUserService(t)
	svc.On("Validate", mock.Anything, "stale").Return(uuid.Nil, model.ErrTokenExpired)

	h := NewUser(svc, testutil.MakeNoopLogger())

	c, rec := newJSONContext(t, http.MethodGet, "/api/users/validate", "")
	require.NoError(t, h.Validate(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newJSONContext(t, http.MethodGet, "/api/users/validate", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer stale")
	require.NoError(t, h.Validate(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
