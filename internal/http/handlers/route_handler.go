// README: Route preview handler — exposes weather-aware selection directly.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/routing"
	"fleetsim/internal/types"
)

type RouteHandler struct {
	routes *routing.Service
}

func NewRouteHandler(svc *routing.Service) *RouteHandler {
	return &RouteHandler{routes: svc}
}

type selectRouteRequest struct {
	Waypoints []types.Point `json:"waypoints" binding:"required"`
}

func (h *RouteHandler) Select(c *gin.Context) {
	var req selectRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sel, err := h.routes.SelectRoute(c.Request.Context(), req.Waypoints)
	if err != nil {
		if errors.Is(err, routing.ErrTooFewWaypoints) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, sel)
}
