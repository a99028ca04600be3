package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillCompare/app/echo-server/router"
	"skillCompare/business/category"
	"skillCompare/business/comparison"
	"skillCompare/business/course"
	"skillCompare/business/dashboard"
	"skillCompare/business/platform"
	"skillCompare/business/review"
	userService "skillCompare/business/user"
	"skillCompare/business/wishlist"
	"skillCompare/internal/middleware"
	"skillCompare/internal/repository/notification"
	psqlRepo "skillCompare/internal/repository/postgres"
	redisRepo "skillCompare/internal/repository/redis"
	"skillCompare/internal/rest"
	"skillCompare/pkg/config"
	"skillCompare/pkg/database"
	redisDB "skillCompare/pkg/database/redis"
	"skillCompare/pkg/logger"
	"skillCompare/pkg/metrics"
	"skillCompare/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SkillCompare", "version", cfg.App.Version)

	metrics.Init()
	utils.SetJWTConfig(cfg.JWT.SecretKey, cfg.JWT.TTL)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.ClosePostgres(db)

	logger.Info("Database connected successfully")

	var (
		selectionStore comparison.Store = comparison.NewMemoryStore()
		tokenRepo      userService.TokenRepository
		tokenValidator middleware.TokenValidator
		notifRepo      userService.NotificationRepository
	)

	if cfg.Redis.Enabled {
		redisClient, err := redisDB.Open(context.Background(), cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisDB.Close(redisClient)

		selectionStore = redisRepo.NewSelectionStore(redisClient)
		tokenRepo = redisRepo.NewTokenRepository(redisClient)
		logger.Info("Redis connected successfully")
	} else {
		logger.Warn("Redis disabled, comparison selections are kept in memory")
	}

	// Init notification from mailjet
	if cfg.Mailjet.MailjetBaseUrl != "" {
		notifRepo = notification.NewMailjetRepository(
			notification.MailjetConfig{
				MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
				MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
				MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
				MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
				MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
			},
		)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	courseRepo := psqlRepo.NewCourseRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	platformRepo := psqlRepo.NewPlatformRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	wishlistRepo := psqlRepo.NewWishlistRepository(db)
	historyRepo := psqlRepo.NewComparisonHistoryRepository(db)
	statsRepo := psqlRepo.NewStatsRepository(db)

	// Init service
	registry := comparison.NewRegistry(selectionStore, cfg.Comparison.SelectionIdleTTL)
	userSvc := userService.NewUserService(userRepo, validate, notifRepo, tokenRepo)
	comparisonService := comparison.NewComparisonService(registry, courseRepo, historyRepo)
	courseService := course.NewCourseService(courseRepo, reviewRepo, wishlistRepo, platformRepo, categoryRepo, validate)
	categoryService := category.NewCategoryService(categoryRepo)
	platformService := platform.NewPlatformService(platformRepo, validate)
	reviewService := review.NewReviewService(reviewRepo, courseRepo, validate)
	wishlistService := wishlist.NewWishlistService(wishlistRepo, courseRepo)
	dashboardService := dashboard.NewDashboardService(statsRepo, historyRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	compareHandler := rest.NewCompareHandler(comparisonService)
	courseHandler := rest.NewCourseHandler(courseService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	platformHandler := rest.NewPlatformHandler(platformService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	wishlistHandler := rest.NewWishlistHandler(wishlistService)
	dashboardHandler := rest.NewDashboardHandler(dashboardService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	if tokenRepo != nil {
		tokenValidator = userSvc
		authRequired = middleware.AuthMiddlewareWithRedis(tokenValidator)
	}
	optionalAuth := middleware.OptionalAuth(tokenValidator)
	adminOnly := middleware.AdminOnly()
	visitor := middleware.Visitor(cfg.App.VisitorCookieKey)
	searchLimiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.SearchRateLimit)))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupCourseRoutes(api, courseHandler, optionalAuth, searchLimiter)
	router.SetupCompareRoutes(api, compareHandler, visitor, optionalAuth)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupPlatformRoutes(api, platformHandler)
	router.SetupReviewRoutes(api, reviewHandler, authRequired)
	router.SetupWishlistRoutes(api, wishlistHandler, authRequired)
	router.SetupDashboardRoutes(api, dashboardHandler, authRequired)
	router.SetupAdminRoutes(api, router.AdminHandlers{
		Course:    courseHandler,
		Category:  categoryHandler,
		Platform:  platformHandler,
		Review:    reviewHandler,
		Dashboard: dashboardHandler,
	}, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
