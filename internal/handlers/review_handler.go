package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/reviews")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("", h.List)
		public.POST("/:id/like", h.Like)
		public.POST("/:id/dislike", h.Dislike)
	}

	nested := rg.Group("")
	nested.Use(middleware.OptionalAuth())
	{
		nested.GET("/properties/:id/reviews", h.ListForProperty)
		nested.GET("/agents/:id/reviews", h.ListForAgent)
	}

	protected := rg.Group("/reviews")
	protected.Use(middleware.Auth())
	{
		protected.POST("", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	var filter dto.ReviewFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	res, err := h.reviewService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "reviews", res)
}

// ListForProperty serves the nested listing route; the path target wins
// over any filter parameter.
func (h *ReviewHandler) ListForProperty(c *gin.Context) {
	var filter dto.ReviewFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	filter.PropertyID = c.Param("id")
	filter.AgentID = ""

	res, err := h.reviewService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "reviews", res)
}

func (h *ReviewHandler) ListForAgent(c *gin.Context) {
	var filter dto.ReviewFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	filter.AgentID = c.Param("id")
	filter.PropertyID = ""

	res, err := h.reviewService.List(c.Request.Context(), h.Viewer(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "reviews", res)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req dto.UpdateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), h.Viewer(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviewService.Delete(c.Request.Context(), h.Viewer(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *ReviewHandler) Like(c *gin.Context) {
	h.react(c, true)
}

func (h *ReviewHandler) Dislike(c *gin.Context) {
	h.react(c, false)
}

func (h *ReviewHandler) react(c *gin.Context, like bool) {
	if err := h.reviewService.React(c.Request.Context(), c.Param("id"), like); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recorded"})
}
