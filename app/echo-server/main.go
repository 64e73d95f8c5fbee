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

	"brewAdvisor/app/echo-server/router"
	beverageService "brewAdvisor/business/beverage"
	purchaseService "brewAdvisor/business/purchase"
	"brewAdvisor/business/recommend"
	userService "brewAdvisor/business/user"
	"brewAdvisor/internal/middleware"
	psqlRepo "brewAdvisor/internal/repository/postgres"
	redisRepo "brewAdvisor/internal/repository/redis"
	"brewAdvisor/internal/rest"
	"brewAdvisor/pkg/config"
	"brewAdvisor/pkg/database"
	"brewAdvisor/pkg/logger"
	"brewAdvisor/pkg/metrics"
	"brewAdvisor/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting BrewAdvisor", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer database.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	beverageRepo := psqlRepo.NewBeverageRepository(db)
	purchaseRepo := psqlRepo.NewPurchaseRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, tokenRepo, validate)
	beverageSvc := beverageService.NewBeverageService(beverageRepo)
	purchaseSvc := purchaseService.NewPurchaseService(purchaseRepo, beverageRepo)
	recommendSvc := recommend.NewRecommendationService(beverageRepo, purchaseRepo, recommend.DefaultConfig())

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	beverageHandler := rest.NewBeverageHandler(beverageSvc)
	purchaseHandler := rest.NewPurchaseHandler(purchaseSvc)
	recommendHandler := rest.NewRecommendHandler(recommendSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)
	adminOnly := middleware.AdminOnly()

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupBeverageRoutes(api, beverageHandler, authRequired, adminOnly)
	router.SetupPurchaseRoutes(api, purchaseHandler, authRequired)
	router.SetupRecommendRoutes(api, recommendHandler, authRequired)

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

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
