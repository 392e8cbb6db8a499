// README: Delivery order handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsim/internal/modules/delivery"
	"fleetsim/internal/types"
)

type DeliveryHandler struct {
	delivery *delivery.Service
}

func NewDeliveryHandler(svc *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{delivery: svc}
}

type createDeliveryRequest struct {
	DriverID     string      `json:"driverId" binding:"required"`
	PickupLabel  string      `json:"pickupLabel"`
	DropoffLabel string      `json:"dropoffLabel"`
	Pickup       types.Point `json:"pickup"`
	Dropoff      types.Point `json:"dropoff"`
}

func (h *DeliveryHandler) Create(c *gin.Context) {
	var req createDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.delivery.Create(c.Request.Context(), delivery.CreateCommand{
		DriverID:     types.ID(req.DriverID),
		PickupLabel:  req.PickupLabel,
		DropoffLabel: req.DropoffLabel,
		Pickup:       req.Pickup,
		Dropoff:      req.Dropoff,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, o)
}

func (h *DeliveryHandler) List(c *gin.Context) {
	orders, err := h.delivery.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, orders)
}

func (h *DeliveryHandler) Get(c *gin.Context) {
	o, err := h.delivery.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}
