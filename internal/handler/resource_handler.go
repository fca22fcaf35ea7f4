package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/application"
	"github.com/sportsrental/service-booking/internal/platform/response"
)

// ResourceHandler handles HTTP requests for the resource catalog and its
// per-day availability.
type ResourceHandler struct {
	resources *application.ResourceService
	bookings  *application.BookingService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resources *application.ResourceService, bookings *application.BookingService) *ResourceHandler {
	return &ResourceHandler{resources: resources, bookings: bookings}
}

// RegisterRoutes registers all resource routes on the given router group.
func (h *ResourceHandler) RegisterRoutes(r *gin.RouterGroup) {
	resources := r.Group("/resources")
	{
		resources.POST("", h.CreateResource)
		resources.GET("/:id", h.GetResource)
		resources.GET("/:id/free-slots", h.GetFreeSlots)
		resources.GET("/:id/reservations", h.ListReservations)
	}
}

// CreateResource handles POST /api/v1/resources
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req application.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.resources.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// GetResource handles GET /api/v1/resources/:id
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid resource ID")
	if !ok {
		return
	}

	dto, err := h.resources.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// GetFreeSlots handles GET /api/v1/resources/:id/free-slots?date=DD-MM-YYYY
func (h *ResourceHandler) GetFreeSlots(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid resource ID")
	if !ok {
		return
	}
	date, ok := requireQuery(c, "date")
	if !ok {
		return
	}

	dto, err := h.bookings.FreeSlots(c.Request.Context(), id, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// ListReservations handles GET /api/v1/resources/:id/reservations?date=DD-MM-YYYY
func (h *ResourceHandler) ListReservations(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid resource ID")
	if !ok {
		return
	}
	date, ok := requireQuery(c, "date")
	if !ok {
		return
	}

	dtos, err := h.bookings.ListForDay(c.Request.Context(), id, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dtos)
}

func parseID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

func requireQuery(c *gin.Context, key string) (string, bool) {
	v := c.Query(key)
	if v == "" {
		response.BadRequest(c, key+" query parameter is required")
		return "", false
	}
	return v, true
}
