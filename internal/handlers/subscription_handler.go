package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{BaseHandler: base, subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.ListPlans)

	subs := rg.Group("/subscriptions")
	subs.Use(middleware.Auth(), middleware.RequireRoles(models.UserRoleAgent))
	{
		subs.POST("", h.Subscribe)
		subs.GET("/me", h.Current)
		subs.DELETE("/me", h.Cancel)
		subs.GET("/payments", h.Payments)
	}
}

func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}

func (h *SubscriptionHandler) Current(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Current(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.Cancel(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscription cancelled"})
}

func (h *SubscriptionHandler) Payments(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var filter dto.PaymentFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.subscriptionService.Payments(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "payments", res)
}
