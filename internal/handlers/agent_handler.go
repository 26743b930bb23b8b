package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
)

type AgentHandler struct {
	*BaseHandler
	agentService services.AgentService
}

func NewAgentHandler(base *BaseHandler, agentService services.AgentService) *AgentHandler {
	return &AgentHandler{BaseHandler: base, agentService: agentService}
}

func (h *AgentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/agents")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("", h.List)
		public.GET("/search", h.List)
		public.GET("/:id", h.Get)
	}

	agents := rg.Group("/agents")
	agents.Use(middleware.Auth(), middleware.RequireRoles(models.UserRoleAgent))
	{
		agents.POST("", h.CreateProfile)
		agents.PUT("/me", h.UpdateProfile)
	}
}

func (h *AgentHandler) List(c *gin.Context) {
	var filter dto.AgentFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.agentService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "agents", res)
}

func (h *AgentHandler) Get(c *gin.Context) {
	agent, err := h.agentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}

func (h *AgentHandler) CreateProfile(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreateAgentProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	agent, err := h.agentService.CreateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agent": agent})
}

func (h *AgentHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAgentProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	agent, err := h.agentService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}
