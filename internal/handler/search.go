package handler

import (
	"net/http"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"

	"github.com/labstack/echo/v4"
)

func SetupSearchRoutes(e *echo.Echo, storage *postgres.Storage) {
	e.GET("/api/search/tutors", SearchTutors(storage))
	e.GET("/api/search/courses", SearchCourses(storage))
	e.GET("/api/categories", GetCategories(storage))
}

// SearchTutors godoc
// @Summary Search tutors by name
// @Description Case-insensitive partial match against the tutor's full name, in either name order
// @Tags search
// @Produce json
// @Param name query string true "Tutor name (full or partial)"
// @Success 200 {array} domain.Tutor
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search/tutors [get]
func SearchTutors(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.QueryParam("name")
		if name == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name query parameter is required"})
		}

		tutors, err := storage.SearchTutors(c.Request().Context(), name)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to search tutors"})
		}

		return c.JSON(http.StatusOK, tutors)
	}
}

// SearchCourses godoc
// @Summary Search courses
// @Description Search by course name or by tutor name; at least one parameter is required
// @Tags search
// @Produce json
// @Param name query string false "Course name (full or partial)"
// @Param tutor query string false "Tutor name (full or partial)"
// @Success 200 {array} domain.CourseWithRating
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search/courses [get]
func SearchCourses(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.QueryParam("name")
		tutor := c.QueryParam("tutor")

		var (
			courses []domain.CourseWithRating
			err     error
		)
		switch {
		case name != "":
			courses, err = storage.SearchCoursesByName(c.Request().Context(), name)
		case tutor != "":
			courses, err = storage.SearchCoursesByTutorName(c.Request().Context(), tutor)
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name or tutor query parameter is required"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to search courses"})
		}

		return c.JSON(http.StatusOK, courses)
	}
}

// GetCategories godoc
// @Summary List course categories
// @Tags search
// @Produce json
// @Success 200 {array} domain.Category
// @Failure 500 {object} map[string]string
// @Router /categories [get]
func GetCategories(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		categories, err := storage.ListCategories(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch categories"})
		}

		return c.JSON(http.StatusOK, categories)
	}
}
