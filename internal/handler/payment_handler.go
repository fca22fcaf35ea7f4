package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sportsrental/service-booking/internal/application"
	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/platform/response"
)

// PaymentHandler handles HTTP requests that tie reservations to payment intents.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers all payment routes on the given router group.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reservations/:id/payment-intent", h.InitiatePayment)
	r.PUT("/reservations/:id/payment-intent", h.BindPaymentIntent)
	r.POST("/payments/webhook", h.Webhook)
}

// InitiatePayment handles POST /api/v1/reservations/:id/payment-intent
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid reservation ID")
	if !ok {
		return
	}

	dto, err := h.service.InitiatePayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// BindPaymentIntent handles PUT /api/v1/reservations/:id/payment-intent
func (h *PaymentHandler) BindPaymentIntent(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid reservation ID")
	if !ok {
		return
	}

	var req application.BindPaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.NotifyIntentCreated(c.Request.Context(), id, req.PaymentIntentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// Webhook handles POST /api/v1/payments/webhook. Only success callbacks act
// on a reservation; other event types are acknowledged and dropped.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req application.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !strings.EqualFold(req.Type, contracts.PaymentIntentSucceeded) {
		response.Success(c, application.PaymentOutcomeDTO{PaymentIntentID: req.PaymentIntentID, Outcome: "ignored"})
		return
	}

	outcome, err := h.service.OnIntentSucceeded(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application.PaymentOutcomeDTO{PaymentIntentID: req.PaymentIntentID, Outcome: string(outcome)})
}
