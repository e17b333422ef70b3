package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/handler"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/middleware"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func setupServer(t *testing.T) (*echo.Echo, *postgres.Storage) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	t.Setenv("JWT_SECRET", "handler-test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	storage, err := postgres.NewConnection(dbURL)
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	require.NoError(t, storage.EnsureRoles(t.Context()))
	_, err = storage.ApplyMeetingConstraints(t.Context())
	require.NoError(t, err)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	authMiddleware := middleware.JWTAuth()
	handler.SetupAuthRoutes(e, storage, authMiddleware)
	handler.SetupUserRoutes(e, storage, authMiddleware)
	handler.SetupCourseRoutes(e, storage, authMiddleware)
	handler.SetupMeetingRoutes(e, storage, authMiddleware)
	handler.SetupStudentRoutes(e, storage, authMiddleware)
	handler.SetupSearchRoutes(e, storage)

	return e, storage
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, e *echo.Echo, role string) (domain.AuthResponse, string) {
	t.Helper()

	password := gofakeit.Password(true, true, true, false, false, 12)
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", domain.RegisterRequest{
		Email:     fmt.Sprintf("test_%s", gofakeit.Email()),
		Password:  password,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp domain.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp, password
}

func TestRegisterLoginMe(t *testing.T) {
	e, _ := setupServer(t)

	registered, password := registerUser(t, e, domain.RoleStudent)
	assert.NotEmpty(t, registered.Token)
	assert.Contains(t, registered.User.Roles, domain.RoleStudent)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Email:    registered.User.Email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loggedIn domain.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))

	rec = doJSON(t, e, http.MethodGet, "/api/users/me", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, registered.User.ID, me.ID)
	assert.Empty(t, me.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, _ := setupServer(t)

	registered, password := registerUser(t, e, domain.RoleStudent)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", domain.RegisterRequest{
		Email:     registered.User.Email,
		Password:  password,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      domain.RoleStudent,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	e, _ := setupServer(t)

	registered, _ := registerUser(t, e, domain.RoleStudent)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Email:    registered.User.Email,
		Password: "definitely-wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoute_NoToken(t *testing.T) {
	e, _ := setupServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
