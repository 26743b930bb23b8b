package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/contextkeys"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{BaseHandler: base, contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/contacts")
	public.Use(middleware.OptionalAuth())
	{
		public.POST("", h.Create)
	}

	backoffice := rg.Group("/contacts")
	backoffice.Use(middleware.Auth(), middleware.RequireRoles(models.UserRoleAgent, models.UserRoleAdmin))
	{
		backoffice.GET("", h.List)
		backoffice.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), c.GetString(contextkeys.UserID), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

func (h *ContactHandler) List(c *gin.Context) {
	var filter dto.ContactFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.contactService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "contacts", res)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateContactStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateStatus(c.Request.Context(), c.Param("id"), models.ContactStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}
