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

	"github.com/gin-gonic/gin"
	"github.com/valenn0101/koywe-challenge/internal/di"
	"github.com/valenn0101/koywe-challenge/internal/gateway"
	"github.com/valenn0101/koywe-challenge/internal/metrics"
	"github.com/valenn0101/koywe-challenge/internal/middleware"
	"github.com/valenn0101/koywe-challenge/internal/service"
	"github.com/valenn0101/koywe-challenge/pkg/config"
	"github.com/valenn0101/koywe-challenge/pkg/database"
	"github.com/valenn0101/koywe-challenge/pkg/logger"
	"github.com/valenn0101/koywe-challenge/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting currency quote service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	if err := metrics.Init(); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize metrics: %v", err))
	}

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize exchange rate gateway
	rateGateway, err := gateway.NewRateGateway(cfg.Rate.Provider, &gateway.RateGatewayConfig{
		BaseURL: cfg.Rate.APIURL,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Rate gateway initialization failed: %v", err))
	}
	appLog.Info(fmt.Sprintf("Rate gateway initialized (provider: %s)", rateGateway.Name()))

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:          db,
		RateGateway: rateGateway,
		AuthConfig: &service.AuthServiceConfig{
			JWTSecret:          cfg.JWT.Secret,
			AccessTokenExpiry:  cfg.JWT.AccessTokenTTL,
			RefreshTokenExpiry: cfg.JWT.RefreshTokenTTL,
		},
		QuoteConfig: &service.QuoteServiceConfig{
			QuoteTTL: cfg.Quote.TTL,
		},
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORS())

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// Auth routes (public)
	auth := router.Group("/auth")
	{
		auth.POST("/register", container.AuthHandler.Register)
		auth.POST("/login", container.AuthHandler.Login)
		auth.POST("/refresh", container.AuthHandler.RefreshToken)
	}

	// Quote routes
	quote := router.Group("/quote")
	{
		// Public: the supported currency catalog needs no session
		quote.GET("/currencies/all", container.QuoteHandler.GetCurrencies)

		protected := quote.Group("")
		protected.Use(middleware.Auth(container.AuthService))
		{
			protected.POST("", container.QuoteHandler.CreateQuote)
			protected.GET("/user/all", container.QuoteHandler.GetUserQuotes)
			protected.GET("/:id", container.QuoteHandler.GetQuote)
			protected.DELETE("/:id", container.QuoteHandler.DeleteQuote)
		}
	}

	// User routes
	users := router.Group("/users")
	users.Use(middleware.Auth(container.AuthService))
	{
		users.GET("", container.UserHandler.ListUsers)
		users.GET("/:id", container.UserHandler.GetUser)
		users.GET("/email/:email", container.UserHandler.GetUserByEmail)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
