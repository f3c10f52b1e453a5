package repository

import (
	"context"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID, nil if not found
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email, nil if not found
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdateRefreshToken overwrites the stored refresh token for a user
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
	// List retrieves all users
	List(ctx context.Context) ([]*domain.User, error)
}
