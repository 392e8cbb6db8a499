// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/modules/delivery"
	"fleetsim/internal/modules/fleet"
	"fleetsim/internal/modules/simulation"
	"fleetsim/internal/modules/weather"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fleet.ErrNotFound),
		errors.Is(err, delivery.ErrNotFound),
		errors.Is(err, weather.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, fleet.ErrBadRequest),
		errors.Is(err, delivery.ErrBadRequest),
		errors.Is(err, weather.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, delivery.ErrInvalidState),
		errors.Is(err, delivery.ErrConflict),
		errors.Is(err, simulation.ErrAlreadyRunning),
		errors.Is(err, simulation.ErrNoPendingLegs):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, simulation.ErrNotRunning):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
