package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/internal/validator"
	"estatehub_backend/pkg/apperrors"
	"estatehub_backend/pkg/contextkeys"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindJSON binds and validates the request body. On failure the response is
// already written and the caller must return.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWarn(ctx, "malformed request body", "path", c.Request.URL.Path, "error", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid request body"))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "validator failure", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// BindQuery binds query parameters into a filter struct. Filters are
// string-typed and validated downstream by the query builder, so only the
// binding itself can fail here.
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid query parameters"))
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.CtxWarn(ctx, "service error",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// UserID returns the authenticated caller's id or writes a 401.
func (h *BaseHandler) UserID(c *gin.Context) (string, bool) {
	userID := c.GetString(contextkeys.UserID)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("not authenticated"))
		return "", false
	}
	return userID, true
}

// Viewer builds the identity passed to role-gated services. Anonymous
// callers yield the zero Viewer.
func (h *BaseHandler) Viewer(c *gin.Context) services.Viewer {
	return services.Viewer{
		UserID: c.GetString(contextkeys.UserID),
		Role:   models.UserRole(c.GetString(contextkeys.Role)),
	}
}

// listEnvelope renders the {<collection>, total, page, pages} envelope every
// listing endpoint promises.
func listEnvelope[T any](c *gin.Context, collection string, res *dto.ListResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		collection: res.Items,
		"total":    res.Total,
		"page":     res.Page,
		"pages":    res.Pages,
	})
}
