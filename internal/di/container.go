package di

import (
	"github.com/valenn0101/koywe-challenge/internal/gateway"
	"github.com/valenn0101/koywe-challenge/internal/handler"
	"github.com/valenn0101/koywe-challenge/internal/repository"
	"github.com/valenn0101/koywe-challenge/internal/service"
	"github.com/valenn0101/koywe-challenge/pkg/database"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB          *database.PostgresDB
	RateGateway gateway.RateGateway

	// Repositories
	UserRepo  repository.UserRepository
	QuoteRepo repository.QuoteRepository

	// Services
	AuthService  service.AuthService
	QuoteService service.QuoteService
	UserService  service.UserService

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	QuoteHandler  *handler.QuoteHandler
	UserHandler   *handler.UserHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB          *database.PostgresDB
	RateGateway gateway.RateGateway
	AuthConfig  *service.AuthServiceConfig
	QuoteConfig *service.QuoteServiceConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:          cfg.DB,
		RateGateway: cfg.RateGateway,
	}

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(cfg.DB.Pool())
	c.QuoteRepo = repository.NewPostgresQuoteRepository(cfg.DB.Pool())

	// Initialize services
	c.AuthService = service.NewAuthService(c.UserRepo, cfg.AuthConfig)
	c.QuoteService = service.NewQuoteService(c.QuoteRepo, c.RateGateway, cfg.QuoteConfig)
	c.UserService = service.NewUserService(c.UserRepo)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.QuoteHandler = handler.NewQuoteHandler(c.QuoteService)
	c.UserHandler = handler.NewUserHandler(c.UserService)

	return c
}
