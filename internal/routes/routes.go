package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/handlers"
)

// AppHandlers bundles every route-owning handler.
type AppHandlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Property     *handlers.PropertyHandler
	Agent        *handlers.AgentHandler
	Review       *handlers.ReviewHandler
	Contact      *handlers.ContactHandler
	Subscription *handlers.SubscriptionHandler
	Admin        *handlers.AdminHandler
}

func Register(router *gin.Engine, h *AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.User.RegisterRoutes(api)
		h.Property.RegisterRoutes(api)
		h.Agent.RegisterRoutes(api)
		h.Review.RegisterRoutes(api)
		h.Contact.RegisterRoutes(api)
		h.Subscription.RegisterRoutes(api)
		h.Admin.RegisterRoutes(api)
	}
}
