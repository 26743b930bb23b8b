package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"estatehub_backend/database"
	"estatehub_backend/internal/auth"
	"estatehub_backend/internal/cache"
	"estatehub_backend/internal/config"
	"estatehub_backend/internal/email"
	"estatehub_backend/internal/handlers"
	"estatehub_backend/internal/imageprocessor"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/middleware"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/routes"
	"estatehub_backend/internal/services"
	"estatehub_backend/internal/storage"
	"estatehub_backend/internal/validator"
	"estatehub_backend/internal/workers"
	"estatehub_backend/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	logger.Info("logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	logger.Info("database connected")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	if err := seedAdmin(db, cfg); err != nil {
		logger.Fatal("admin seeding failed", "error", err)
	}
	if err := seedPlans(db); err != nil {
		logger.Fatal("plan seeding failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, cleanup := SetupRouter(ctx, cfg, db)
	defer cleanup()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup failed", "error", err)
	}
}

// SetupRouter wires the full dependency graph and returns the engine plus a
// cleanup for the background resources.
func SetupRouter(ctx context.Context, cfg *config.Config, db *gorm.DB) (*gin.Engine, func()) {
	store, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("storage initialization failed", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	templates, err := email.NewTemplates()
	if err != nil {
		logger.Fatal("email templates failed to parse", "error", err)
	}
	var sender email.Sender
	if cfg.Email.SMTPHost != "" {
		sender = email.NewSMTPSender(cfg, templates)
	} else {
		logger.Warn("smtp not configured, outbound mail disabled")
		sender = email.NoopSender{}
	}
	dispatcher := email.NewDispatcher(sender)

	propertyCache := cache.New(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)

	// Services
	processor := imageprocessor.NewProcessor(85)
	authService := services.NewAuthService(userRepo, dispatcher, cfg)
	userService := services.NewUserService(userRepo)
	propertyService := services.NewPropertyService(propertyRepo, agentRepo, propertyCache)
	agentService := services.NewAgentService(agentRepo, userRepo, dispatcher)
	reviewService := services.NewReviewService(reviewRepo, propertyRepo, agentRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, propertyRepo)
	contactService := services.NewContactService(contactRepo, agentRepo, propertyRepo, dispatcher)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, agentRepo)
	uploadService := services.NewUploadService(store, processor, propertyRepo, agentRepo, userRepo, cfg)
	adminService := services.NewAdminService(userRepo, propertyRepo, agentRepo, reviewRepo)

	// Handlers
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &routes.AppHandlers{
		Auth:         handlers.NewAuthHandler(base, authService),
		User:         handlers.NewUserHandler(base, userService, favoriteService, uploadService),
		Property:     handlers.NewPropertyHandler(base, propertyService, uploadService),
		Agent:        handlers.NewAgentHandler(base, agentService),
		Review:       handlers.NewReviewHandler(base, reviewService),
		Contact:      handlers.NewContactHandler(base, contactService),
		Subscription: handlers.NewSubscriptionHandler(base, subscriptionService),
		Admin:        handlers.NewAdminHandler(base, adminService, propertyService, agentService, reviewService, subscriptionService),
	}

	workers.NewSubscriptionWorker(subscriptionRepo).Start(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Timeout(time.Duration(cfg.Server.RequestTimeout)*time.Second),
		middleware.CORS(),
	)

	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		router.Static("/files", cfg.Storage.BasePath)
	}

	routes.Register(router, appHandlers)

	cleanup := func() {
		dispatcher.Close()
		_ = propertyCache.Close()
	}
	return router, cleanup
}

// seedAdmin creates the first admin account from the environment. Skipped
// when unset or when the account already exists.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("admin credentials not configured, skipping admin seeding")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.Admin.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		FirstName:    "Admin",
		IsVerified:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("admin account seeded", "email", cfg.Admin.Email)
	return nil
}

// seedPlans installs the default subscription tiers on first boot.
func seedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.SubscriptionPlan{
		{Name: "basic", Price: 29.99, DurationDays: 30, ListingLimit: 25, Description: "Entry tier for new agents", IsActive: true},
		{Name: "pro", Price: 79.99, DurationDays: 30, ListingLimit: 100, Description: "For busy agencies", IsActive: true},
		{Name: "enterprise", Price: 199.99, DurationDays: 30, ListingLimit: 500, Description: "Unrestricted volume for large brokerages", IsActive: true},
	}
	return db.Create(&plans).Error
}
