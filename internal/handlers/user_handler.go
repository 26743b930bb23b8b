package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService     services.UserService
	favoriteService services.FavoriteService
	uploadService   services.UploadService
}

func NewUserHandler(
	base *BaseHandler,
	userService services.UserService,
	favoriteService services.FavoriteService,
	uploadService services.UploadService,
) *UserHandler {
	return &UserHandler{
		BaseHandler:     base,
		userService:     userService,
		favoriteService: favoriteService,
		uploadService:   uploadService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth())
	{
		users.GET("/me", h.Me)
		users.PUT("/me", h.UpdateMe)
		users.PUT("/me/password", h.ChangePassword)
		users.POST("/me/avatar", h.UploadAvatar)

		users.GET("/me/favorites", h.ListFavorites)
	}

	favorites := rg.Group("/properties")
	favorites.Use(middleware.Auth())
	{
		favorites.POST("/:id/favorite", h.AddFavorite)
		favorites.DELETE("/:id/favorite", h.RemoveFavorite)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("avatar file is required"))
		return
	}

	url, err := h.uploadService.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	res, err := h.favoriteService.List(c.Request.Context(), userID, c.Query("page"), c.Query("limit"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	listEnvelope(c, "favorites", res)
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "favorited"})
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}
