package handler

import (
	"net/http"
	"strconv"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/domain"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/middleware"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/repository/postgres"
	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"

	"github.com/labstack/echo/v4"
)

func SetupCourseRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	e.GET("/api/courses", GetCourses(storage))
	e.GET("/api/courses/:id", GetCourseByID(storage))
	e.GET("/api/courses/:id/meetings", GetCourseMeetings(storage))

	tutorOnly := e.Group("/api/courses", authMiddleware, middleware.RequireRole(domain.RoleTutor))
	tutorOnly.POST("", CreateCourse(storage))
	tutorOnly.PUT("/:id", UpdateCourse(storage))
	tutorOnly.DELETE("/:id", DeleteCourse(storage))
}

// GetCourses godoc
// @Summary List courses
// @Description List all courses, optionally filtered by category name
// @Tags courses
// @Produce json
// @Param category query string false "Category name to filter by"
// @Success 200 {array} domain.CourseWithRating
// @Failure 500 {object} map[string]string
// @Router /courses [get]
func GetCourses(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		category := c.QueryParam("category")

		var (
			courses []domain.CourseWithRating
			err     error
		)
		if category != "" {
			courses, err = storage.ListCoursesByCategory(c.Request().Context(), category)
		} else {
			courses, err = storage.ListCourses(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch courses"})
		}

		return c.JSON(http.StatusOK, courses)
	}
}

// GetCourseByID godoc
// @Summary Get course by ID
// @Description Get a course with its tutor, categories and average rating
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} domain.CourseWithRating
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [get]
func GetCourseByID(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid course id"})
		}

		course, err := storage.GetCourseByID(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, course)
	}
}

// GetCourseMeetings godoc
// @Summary List meetings of a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} domain.Meeting
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /courses/{id}/meetings [get]
func GetCourseMeetings(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid course id"})
		}

		meetings, err := storage.ListMeetingsForCourse(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch meetings"})
		}

		return c.JSON(http.StatusOK, meetings)
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Create a new course owned by the authenticated tutor
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body domain.CreateCourseRequest true "Course details"
// @Success 201 {object} domain.Course
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /courses [post]
func CreateCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		var req domain.CreateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		course, err := storage.CreateCourse(c.Request().Context(), tutorID, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusCreated, course)
	}
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Update a course owned by the authenticated tutor
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param course body domain.CreateCourseRequest true "Updated course details"
// @Success 200 {object} domain.Course
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [put]
func UpdateCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid course id"})
		}

		existing, err := storage.GetCourseByID(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		if existing.TutorID != tutorID {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}

		var req domain.CreateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		course, err := storage.UpdateCourse(c.Request().Context(), id, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, course)
	}
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Delete a course owned by the authenticated tutor; its meetings cascade
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [delete]
func DeleteCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid course id"})
		}

		existing, err := storage.GetCourseByID(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		if existing.TutorID != tutorID {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}

		if err := storage.DeleteCourse(c.Request().Context(), id); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "course deleted"})
	}
}
