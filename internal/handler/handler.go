package handler

import (
	"errors"
	"net/http"

	"github.com/ddarnold/Online-Tutoring-Platform/internal/utils"

	"github.com/labstack/echo/v4"
)

// errorJSON maps storage sentinels to HTTP responses. Scheduling
// conflicts come back 409, invariant breaches (cross-day, date limit)
// 422, so a client can distinguish "pick another slot" from "fix the
// request".
func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, utils.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, utils.ErrRoomOccupied), errors.Is(err, utils.ErrTutorBusy):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, utils.ErrMeetingCrossesMidnight), errors.Is(err, utils.ErrMeetingTooFarAhead):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func userIDFrom(c echo.Context) (int, bool) {
	id, ok := c.Get("user_id").(int)
	return id, ok
}
