// README: Driver CRUD handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/modules/fleet"
	"fleetsim/internal/types"
)

type DriverHandler struct {
	fleet *fleet.Service
}

func NewDriverHandler(svc *fleet.Service) *DriverHandler {
	return &DriverHandler{fleet: svc}
}

type createDriverRequest struct {
	Name     string      `json:"name" binding:"required"`
	Location types.Point `json:"location"`
	SpeedKmh float64     `json:"speedKmh"`
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req createDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.fleet.Create(c.Request.Context(), fleet.CreateCommand{
		Name:     req.Name,
		Location: req.Location,
		SpeedKmh: req.SpeedKmh,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.fleet.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, drivers)
}

func (h *DriverHandler) Get(c *gin.Context) {
	d, err := h.fleet.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.fleet.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "deleted"})
}
