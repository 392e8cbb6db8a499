// README: Weather zone handlers; create and toggle fire the simulation's disruption hook.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/modules/weather"
	"fleetsim/internal/types"
)

// HazardHook is notified whenever the active hazard set changes so en-route
// drivers can be rerouted from their live positions.
type HazardHook interface {
	OnHazardChanged(ctx context.Context)
}

type WeatherHandler struct {
	weather *weather.Service
	hook    HazardHook
}

func NewWeatherHandler(svc *weather.Service, hook HazardHook) *WeatherHandler {
	return &WeatherHandler{weather: svc, hook: hook}
}

type createZoneRequest struct {
	Class    string      `json:"class" binding:"required"`
	Center   types.Point `json:"center"`
	RadiusKm float64     `json:"radiusKm" binding:"required"`
}

func (h *WeatherHandler) Create(c *gin.Context) {
	var req createZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	z, err := h.weather.Create(c.Request.Context(), weather.CreateCommand{
		Class:    weather.Class(req.Class),
		Center:   req.Center,
		RadiusKm: req.RadiusKm,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.hook.OnHazardChanged(c.Request.Context())
	writeJSON(c, http.StatusCreated, z)
}

func (h *WeatherHandler) List(c *gin.Context) {
	zones, err := h.weather.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, zones)
}

func (h *WeatherHandler) Toggle(c *gin.Context) {
	z, err := h.weather.Toggle(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.hook.OnHazardChanged(c.Request.Context())
	writeJSON(c, http.StatusOK, z)
}

func (h *WeatherHandler) Delete(c *gin.Context) {
	if err := h.weather.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	h.hook.OnHazardChanged(c.Request.Context())
	writeJSON(c, http.StatusOK, gin.H{"status": "deleted"})
}
