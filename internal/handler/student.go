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

func SetupStudentRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/api/student", authMiddleware, middleware.RequireRole(domain.RoleStudent))

	g.POST("/courses/:id/enroll", EnrollInCourse(storage))
	g.POST("/courses/:id/rating", RateCourse(storage))
	g.POST("/tutors/:id/rating", RateTutor(storage))
}

// EnrollInCourse godoc
// @Summary Enroll in a course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /student/courses/{id}/enroll [post]
func EnrollInCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		courseID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid course id"})
		}

		if err := storage.EnrollStudent(c.Request().Context(), studentID, courseID); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "enrolled"})
	}
}

// RateCourse godoc
// @Summary Rate a course
// @Description Record a 1-5 rating with an optional review; rating again replaces the old one
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param rating body domain.RateRequest true "Rating"
// @Success 201 {object} domain.CourseRating
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /student/courses/{id}/rating [post]
func RateCourse(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		courseID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid course id"})
		}

		var req domain.RateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		rating, err := storage.RateCourse(c.Request().Context(), studentID, courseID, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusCreated, rating)
	}
}

// RateTutor godoc
// @Summary Rate a tutor
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tutor ID"
// @Param rating body domain.RateRequest true "Rating"
// @Success 201 {object} domain.TutorRating
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /student/tutors/{id}/rating [post]
func RateTutor(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		tutorID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid tutor id"})
		}

		var req domain.RateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		rating, err := storage.RateTutor(c.Request().Context(), studentID, tutorID, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusCreated, rating)
	}
}
