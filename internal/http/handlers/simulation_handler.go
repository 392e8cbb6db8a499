// README: Simulation lifecycle and live state handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/modules/fleet"
	"fleetsim/internal/modules/simulation"
	"fleetsim/internal/types"
)

type SimulationHandler struct {
	engine    *simulation.Engine
	fleet     *fleet.Service
	telemetry *simulation.TelemetryStore
}

func NewSimulationHandler(engine *simulation.Engine, fleetSvc *fleet.Service, telemetry *simulation.TelemetryStore) *SimulationHandler {
	return &SimulationHandler{engine: engine, fleet: fleetSvc, telemetry: telemetry}
}

func (h *SimulationHandler) Start(c *gin.Context) {
	id := types.ID(c.Param("id"))
	d, err := h.fleet.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.engine.Start(c.Request.Context(), id, d.Location, d.SpeedKmh); err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.fleet.SetStatus(c.Request.Context(), id, fleet.StatusBusy); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "started"})
}

func (h *SimulationHandler) Stop(c *gin.Context) {
	id := types.ID(c.Param("id"))
	st, running := h.engine.State(id)
	if err := h.engine.Stop(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	if running {
		// Persist the last simulated position so a restart resumes there.
		if err := h.fleet.SetLocation(c.Request.Context(), id, st.Position); err != nil {
			writeServiceError(c, err)
			return
		}
	}
	if err := h.fleet.SetStatus(c.Request.Context(), id, fleet.StatusAvailable); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "stopped"})
}

func (h *SimulationHandler) State(c *gin.Context) {
	st, ok := h.engine.State(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "driver is not simulating")
		return
	}
	writeJSON(c, http.StatusOK, st)
}

// Nearby lists simulated drivers around a point using the telemetry GEO set.
func (h *SimulationHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radiusKm := 5.0
	if v := c.Query("radiusKm"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			radiusKm = r
		}
	}
	ids, err := h.telemetry.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radiusKm)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"driverIds": ids})
}
