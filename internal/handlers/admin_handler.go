package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
	"estatehub_backend/pkg/contextkeys"
)

// adminLimit widens the default page size for moderation listings. An
// explicit limit from the query string still wins.
func adminLimit(raw string) string {
	if raw == "" {
		return "50"
	}
	return raw
}

// AdminHandler is the moderation surface: property approval, agent
// verification, review moderation and account suspension.
type AdminHandler struct {
	*BaseHandler
	adminService        services.AdminService
	propertyService     services.PropertyService
	agentService        services.AgentService
	reviewService       services.ReviewService
	subscriptionService services.SubscriptionService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	propertyService services.PropertyService,
	agentService services.AgentService,
	reviewService services.ReviewService,
	subscriptionService services.SubscriptionService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		adminService:        adminService,
		propertyService:     propertyService,
		agentService:        agentService,
		reviewService:       reviewService,
		subscriptionService: subscriptionService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.Stats)

		admin.GET("/properties", h.ListProperties)
		admin.PUT("/properties/:id/approve", h.ApproveProperty)
		admin.PUT("/properties/:id/reject", h.RejectProperty)

		admin.GET("/agents", h.ListAgents)
		admin.PUT("/agents/:id/approve", h.ApproveAgent)
		admin.PUT("/agents/:id/reject", h.RejectAgent)
		admin.PUT("/agents/:id/suspend", h.SuspendAgent)

		admin.GET("/reviews", h.ListReviews)
		admin.PUT("/reviews/:id/approve", h.ApproveReview)
		admin.PUT("/reviews/:id/reject", h.RejectReview)

		admin.GET("/payments", h.ListPayments)
		admin.PUT("/users/:id/status", h.SetUserStatus)
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) ListProperties(c *gin.Context) {
	var filter dto.PropertyFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	filter.Limit = adminLimit(filter.Limit)

	res, err := h.propertyService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "properties", res)
}

func (h *AdminHandler) ApproveProperty(c *gin.Context) {
	h.setPropertyStatus(c, models.PropertyStatusActive)
}

func (h *AdminHandler) RejectProperty(c *gin.Context) {
	h.setPropertyStatus(c, models.PropertyStatusRejected)
}

func (h *AdminHandler) setPropertyStatus(c *gin.Context, status models.PropertyStatus) {
	property, err := h.propertyService.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property})
}

func (h *AdminHandler) ListAgents(c *gin.Context) {
	var filter dto.AgentFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	filter.Limit = adminLimit(filter.Limit)

	res, err := h.agentService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "agents", res)
}

func (h *AdminHandler) ApproveAgent(c *gin.Context) {
	h.setAgentVerification(c, models.VerificationApproved)
}

func (h *AdminHandler) RejectAgent(c *gin.Context) {
	h.setAgentVerification(c, models.VerificationRejected)
}

func (h *AdminHandler) SuspendAgent(c *gin.Context) {
	h.setAgentVerification(c, models.VerificationSuspended)
}

func (h *AdminHandler) setAgentVerification(c *gin.Context, status models.VerificationStatus) {
	agent, err := h.agentService.SetVerification(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}

func (h *AdminHandler) ListReviews(c *gin.Context) {
	var filter dto.ReviewFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	filter.Limit = adminLimit(filter.Limit)

	res, err := h.reviewService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "reviews", res)
}

func (h *AdminHandler) ApproveReview(c *gin.Context) {
	h.setReviewStatus(c, models.ReviewStatusApproved)
}

func (h *AdminHandler) RejectReview(c *gin.Context) {
	h.setReviewStatus(c, models.ReviewStatusRejected)
}

func (h *AdminHandler) setReviewStatus(c *gin.Context, status models.ReviewStatus) {
	review, err := h.reviewService.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (h *AdminHandler) ListPayments(c *gin.Context) {
	var filter dto.PaymentFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.subscriptionService.ListAllPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "payments", res)
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=active suspended"`
	}
	if !h.BindJSON(c, &req) {
		return
	}

	userID := c.Param("id")
	if userID == c.GetString(contextkeys.UserID) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("cannot change your own status"))
		return
	}

	user, err := h.adminService.SetUserStatus(c.Request.Context(), userID, models.UserStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
