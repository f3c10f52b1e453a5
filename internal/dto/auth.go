package dto

import (
	"regexp"
	"strings"

	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// specialChars is the set of characters that satisfy the password policy's
// special-character requirement.
const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ValidateRequiredFields checks that no field is empty or whitespace-only.
// It returns the list of missing field names.
func (r *RegisterRequest) ValidateRequiredFields() []string {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(r.Password) == "" {
		missing = append(missing, "password")
	}
	return missing
}

// ValidatePassword validates password strength requirements:
// - At least 8 characters
// - At least one special character
func (r *RegisterRequest) ValidatePassword() (bool, string) {
	if len(r.Password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if !strings.ContainsAny(r.Password, specialChars) {
		return false, "Password must contain at least one special character"
	}
	return true, ""
}

// ValidateEmail validates the email format
func (r *RegisterRequest) ValidateEmail() (bool, string) {
	if !emailRegex.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the public view of a user. The password hash is never
// part of any response.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// ToUserResponse converts a User to its public view
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}
