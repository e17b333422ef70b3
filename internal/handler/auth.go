package handler

import (
	"net/http"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func SetupAuthRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/auth/register", Register(storage))
	e.POST("/api/auth/login", Login(storage))

	e.GET("/api/users/me", GetCurrentUser(storage), authMiddleware)
}

// Register godoc
// @Summary Register a new user
// @Description Create a student or tutor account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body domain.RegisterRequest true "Registration details"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func Register(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.RegisterRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to hash password"})
		}

		user, err := storage.CreateUser(c.Request().Context(), &req, string(hashedPassword))

		if err != nil {
			return errorJSON(c, err)
		}

		token, err := utils.GenerateToken(user.ID, user.Email, user.Roles)

		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		}

		return c.JSON(http.StatusCreated, domain.AuthResponse{Token: token, User: *user})
	}
}

// Login godoc
// @Summary Log a user in
// @Description Authenticate by email and password and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/login [post]
func Login(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.LoginRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		user, err := storage.GetUserByEmail(c.Request().Context(), req.Email)

		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no user found with such email"})
		}

		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))

		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "wrong password"})
		}

		token, err := utils.GenerateToken(user.ID, user.Email, user.Roles)

		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		}

		user.PasswordHash = ""

		return c.JSON(http.StatusOK, domain.AuthResponse{Token: token, User: *user})
	}
}

// GetCurrentUser godoc
// @Summary Get current user profile
// @Description Get the profile of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/me [get]
func GetCurrentUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		user, err := storage.GetUserByID(c.Request().Context(), userID)

		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, user)
	}
}
