package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sportsrental/service-booking/internal/application"
	"github.com/sportsrental/service-booking/internal/platform/response"
)

// ReservationHandler handles HTTP requests for quoting, booking and status changes.
type ReservationHandler struct {
	service *application.BookingService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.BookingService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers all reservation routes on the given router group.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup) {
	reservations := r.Group("/reservations")
	{
		reservations.POST("/quote", h.Quote)
		reservations.POST("", h.CreateReservation)
		reservations.GET("/:id", h.GetReservation)
		reservations.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Quote handles POST /api/v1/reservations/quote
func (h *ReservationHandler) Quote(c *gin.Context) {
	var req application.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// CreateReservation handles POST /api/v1/reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req application.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// GetReservation handles GET /api/v1/reservations/:id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid reservation ID")
	if !ok {
		return
	}

	dto, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// UpdateStatus handles PATCH /api/v1/reservations/:id/status
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid reservation ID")
	if !ok {
		return
	}

	var req application.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
