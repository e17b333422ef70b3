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

func SetupMeetingRoutes(e *echo.Echo, storage *postgres.Storage, authMiddleware echo.MiddlewareFunc) {
	e.GET("/api/meetings/:id", GetMeetingByID(storage))

	g := e.Group("/api/meetings", authMiddleware, middleware.RequireRole(domain.RoleTutor))
	g.GET("", GetMyMeetings(storage))
	g.POST("", ScheduleMeeting(storage))
	g.PUT("/:id", RescheduleMeeting(storage))
	g.DELETE("/:id", CancelMeeting(storage))
}

// GetMeetingByID godoc
// @Summary Get meeting by ID
// @Tags meetings
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} domain.Meeting
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /meetings/{id} [get]
func GetMeetingByID(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid meeting id"})
		}

		meeting, err := storage.GetMeetingByID(c.Request().Context(), id)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, meeting)
	}
}

// GetMyMeetings godoc
// @Summary List meetings of the authenticated tutor
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Meeting
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /meetings [get]
func GetMyMeetings(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		meetings, err := storage.ListMeetingsForTutor(c.Request().Context(), tutorID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch meetings"})
		}

		return c.JSON(http.StatusOK, meetings)
	}
}

// ScheduleMeeting godoc
// @Summary Schedule a meeting
// @Description Book a room and time slot. The booking is rejected with 409 if the
// @Description room or the tutor already has an overlapping meeting, and with 422
// @Description if it crosses midnight or lies more than a year ahead.
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meeting body domain.ScheduleMeetingRequest true "Meeting details"
// @Success 201 {object} domain.Meeting
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /meetings [post]
func ScheduleMeeting(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		var req domain.ScheduleMeetingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		meeting, err := storage.ScheduleMeeting(c.Request().Context(), tutorID, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusCreated, meeting)
	}
}

// RescheduleMeeting godoc
// @Summary Reschedule a meeting
// @Description Move a meeting to a new slot or room. Re-validates all scheduling
// @Description invariants exactly like a fresh booking.
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Param meeting body domain.ScheduleMeetingRequest true "New meeting details"
// @Success 200 {object} domain.Meeting
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /meetings/{id} [put]
func RescheduleMeeting(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid meeting id"})
		}

		var req domain.ScheduleMeetingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		meeting, err := storage.RescheduleMeeting(c.Request().Context(), id, tutorID, &req)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, meeting)
	}
}

// CancelMeeting godoc
// @Summary Cancel a meeting
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /meetings/{id} [delete]
func CancelMeeting(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tutorID, ok := userIDFrom(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": utils.ErrValueConversion.Error()})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid meeting id"})
		}

		if err := storage.CancelMeeting(c.Request().Context(), id, tutorID); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "meeting cancelled"})
	}
}
