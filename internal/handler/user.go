package handler

import (
	"net/http"
	"strconv"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	e.GET("/api/users/:id", GetUserByID(storage))
	e.PUT("/api/users/:id", UpdateUser(storage), authMiddleware)
	e.GET("/api/tutors/:id", GetTutorByID(storage))
	e.GET("/api/stats", GetStats(storage))
}

// GetUserByID godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func GetUserByID(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		user, err := storage.GetUserByID(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, user)
	}
}

// GetTutorByID godoc
// @Summary Get a tutor profile
// @Description Get a tutor with the average rating received from students
// @Tags users
// @Produce json
// @Param id path int true "Tutor ID"
// @Success 200 {object} domain.Tutor
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tutors/{id} [get]
func GetTutorByID(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid tutor id"})
		}

		user, err := storage.GetUserByID(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		tutor := domain.Tutor{User: *user}
		if !tutorHasRole(user.Roles) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": utils.ErrNotFound.Error()})
		}

		tutor.AverageRating, err = storage.AverageTutorRating(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, tutor)
	}
}

func tutorHasRole(roles []string) bool {
	for _, r := range roles {
		if r == domain.RoleTutor {
			return true
		}
	}
	return false
}

// UpdateUser godoc
// @Summary Update a user profile
// @Description Update the authenticated user's own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body domain.UpdateUserRequest true "Updated profile"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [put]
func UpdateUser(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		}

		if id != userID {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}

		var req domain.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		user, err := storage.UpdateUser(c.Request().Context(), id, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, user)
	}
}

// GetStats godoc
// @Summary Platform statistics
// @Description Counts of registered students, tutors and courses
// @Tags stats
// @Produce json
// @Success 200 {object} domain.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func GetStats(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		students, err := storage.CountByRole(ctx, domain.RoleStudent)
		if err != nil {
			return errorJSON(c, err)
		}

		tutors, err := storage.CountByRole(ctx, domain.RoleTutor)
		if err != nil {
			return errorJSON(c, err)
		}

		courses, err := storage.CountCourses(ctx)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, domain.Stats{Students: students, Tutors: tutors, Courses: courses})
	}
}
