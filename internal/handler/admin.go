package handler

import (
	"net/http"
	"strconv"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/middleware"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"

	"github.com/labstack/echo/v4"
)

func SetupAdminRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/admin", authMiddleware, middleware.RequireRole(domain.RoleAdmin))

	g.POST("/universities", CreateUniversity(storage))
	g.POST("/categories", CreateCategory(storage))
	g.DELETE("/users/:id", DeleteUser(storage))

	// tutors pick an address when booking a room
	e.GET("/api/addresses", ListAddresses(storage), authMiddleware)
}

// CreateUniversity godoc
// @Summary Create a university address
// @Description Create an address, creating the university itself if it does not exist yet
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param address body domain.CreateUniversityRequest true "University and address details"
// @Success 201 {object} domain.Address
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/universities [post]
func CreateUniversity(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateUniversityRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		address, err := storage.CreateUniversityWithAddress(c.Request().Context(), &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusCreated, address)
	}
}

// CreateCategory godoc
// @Summary Create a course category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body domain.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/categories [post]
func CreateCategory(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CreateCategoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		category, err := storage.CreateCategory(c.Request().Context(), req.Name)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusCreated, category)
	}
}

// ListAddresses godoc
// @Summary List university addresses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Address
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /addresses [get]
func ListAddresses(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		addresses, err := storage.ListAddresses(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch addresses"})
		}

		return c.JSON(http.StatusOK, addresses)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove a user; owned courses, meetings and ratings cascade
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [delete]
func DeleteUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		if err := storage.DeleteUser(c.Request().Context(), id); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
	}
}
