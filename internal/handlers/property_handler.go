package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

type PropertyHandler struct {
	*BaseHandler
	propertyService services.PropertyService
	uploadService   services.UploadService
}

func NewPropertyHandler(
	base *BaseHandler,
	propertyService services.PropertyService,
	uploadService services.UploadService,
) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		propertyService: propertyService,
		uploadService:   uploadService,
	}
}

func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/properties")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("", h.List)
		public.GET("/search", h.List)
		public.GET("/:id", h.Get)
	}

	agents := rg.Group("/properties")
	agents.Use(middleware.Auth(), middleware.RequireRoles(models.UserRoleAgent, models.UserRoleAdmin))
	{
		agents.POST("", h.Create)
		agents.PUT("/:id", h.Update)
		agents.DELETE("/:id", h.Delete)
		agents.POST("/:id/sold", h.MarkSold)
		agents.POST("/:id/images", h.UploadImage)
	}

	portfolio := rg.Group("/agents")
	portfolio.Use(middleware.OptionalAuth())
	{
		portfolio.GET("/:id/properties", h.ListByAgent)
	}

	mine := rg.Group("/agents/me")
	mine.Use(middleware.Auth(), middleware.RequireRoles(models.UserRoleAgent))
	{
		mine.GET("/properties", h.ListMine)
	}
}

func (h *PropertyHandler) List(c *gin.Context) {
	var filter dto.PropertyFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.propertyService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "properties", res)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	// Only anonymous and plain-user traffic moves the view counter.
	viewer := h.Viewer(c)
	countView := !viewer.IsAdmin() && viewer.Role != models.UserRoleAgent

	property, err := h.propertyService.Get(c.Request.Context(), c.Param("id"), countView)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property})
}

func (h *PropertyHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"property": property})
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var req dto.UpdatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), h.Viewer(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property})
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.propertyService.Delete(c.Request.Context(), h.Viewer(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}

func (h *PropertyHandler) MarkSold(c *gin.Context) {
	property, err := h.propertyService.MarkSold(c.Request.Context(), h.Viewer(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property})
}

func (h *PropertyHandler) ListByAgent(c *gin.Context) {
	var filter dto.PropertyFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.propertyService.ListByAgent(c.Request.Context(), h.Viewer(c), c.Param("id"), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "properties", res)
}

func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var filter dto.PropertyFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.propertyService.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "properties", res)
}

func (h *PropertyHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("image file is required"))
		return
	}

	url, err := h.uploadService.UploadPropertyImage(c.Request.Context(), h.Viewer(c), c.Param("id"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
