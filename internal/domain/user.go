package domain

import "time"

// User represents a registered account
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	// RefreshToken is the last refresh token issued to this user. Only one
	// refresh token is live per user: issuing a new pair overwrites it and
	// invalidates the previous one.
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims represents the payload carried by both access and refresh tokens
type Claims struct {
	UserID string
	Email  string
}

// TokenPair represents an access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
