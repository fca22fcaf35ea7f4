package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sportsrental/service-booking/internal/application"
	"github.com/sportsrental/service-booking/internal/platform/response"
)

// PromoHandler handles HTTP requests for promotion operations.
type PromoHandler struct {
	service *application.PromoService
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(service *application.PromoService) *PromoHandler {
	return &PromoHandler{service: service}
}

// RegisterRoutes registers all promo routes.
func (h *PromoHandler) RegisterRoutes(r *gin.RouterGroup) {
	promos := r.Group("/promotions")
	{
		promos.POST("", h.CreatePromotion)
		promos.GET("", h.ListPromotions)
		promos.PATCH("/:id/status", h.UpdateStatus)
	}
}

// CreatePromotion handles POST /api/v1/promotions.
func (h *PromoHandler) CreatePromotion(c *gin.Context) {
	var req application.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListPromotions handles GET /api/v1/promotions.
func (h *PromoHandler) ListPromotions(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus handles PATCH /api/v1/promotions/:id/status.
func (h *PromoHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid promotion ID")
	if !ok {
		return
	}

	var req application.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
