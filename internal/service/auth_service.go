package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/valenn0101/koywe-challenge/internal/domain"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/metrics"
	"github.com/valenn0101/koywe-challenge/internal/repository"
	"github.com/valenn0101/koywe-challenge/pkg/logger"
	"github.com/valenn0101/koywe-challenge/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrIncompleteInput      = errors.New("incomplete input")
	ErrWeakPassword         = errors.New("password does not meet the security policy")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrUnauthorized         = errors.New("unauthorized")
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BcryptCost         int
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new user and issues a token pair
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// Login authenticates a user and issues a token pair
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// RefreshTokens rotates a refresh token into a new token pair
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	// ValidateToken validates an access token and returns its claims
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	config   *AuthServiceConfig
	log      *logger.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, config *AuthServiceConfig) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.AccessTokenExpiry == 0 {
		config.AccessTokenExpiry = 20 * time.Minute
	}
	if config.RefreshTokenExpiry == 0 {
		config.RefreshTokenExpiry = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo: userRepo,
		config:   config,
		log:      logger.Get(),
	}
}

// Register creates a new user account and issues its first token pair
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	if missing := req.ValidateRequiredFields(); len(missing) > 0 {
		span.SetStatus(codes.Error, "incomplete input")
		s.log.Warn("registration rejected: missing fields", zap.Strings("fields", missing))
		return nil, ErrIncompleteInput
	}

	if ok, _ := req.ValidatePassword(); !ok {
		span.SetStatus(codes.Error, "weak password")
		return nil, ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("registration lookup failed", zap.Error(err))
		return nil, ErrAuthenticationFailed
	}
	if exists {
		span.SetStatus(codes.Error, "user already exists")
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("password hashing failed", zap.Error(err))
		return nil, ErrAuthenticationFailed
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("user creation failed", zap.Error(err))
		return nil, ErrAuthenticationFailed
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecordRegistration(ctx)
	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         dto.ToUserResponse(user),
	}, nil
}

// Login authenticates a user by email and password. Unknown email and
// wrong password are indistinguishable to the caller; the real reason is
// logged but never surfaced.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("login lookup failed", zap.Error(err))
		return nil, ErrAuthenticationFailed
	}
	if user == nil {
		span.SetStatus(codes.Error, "invalid credentials")
		s.log.Info("login failed: unknown email", zap.String("email", req.Email))
		metrics.RecordLoginFailure(ctx, "unknown_email")
		return nil, ErrAuthenticationFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "invalid credentials")
		s.log.Info("login failed: wrong password", zap.String("user_id", user.ID))
		metrics.RecordLoginFailure(ctx, "wrong_password")
		return nil, ErrAuthenticationFailed
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecordLogin(ctx)
	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         dto.ToUserResponse(user),
	}, nil
}

// RefreshTokens verifies a refresh token and rotates it into a new pair.
// The presented token must match the one currently stored for the user: a
// superseded refresh token is rejected even before its expiry.
//
// Two concurrent refreshes for the same user can both pass the comparison
// and both overwrite the stored token (last writer wins). There is no
// compare-and-swap on the stored token.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.refresh_tokens")
	defer span.End()

	claims, err := s.parseToken(refreshToken)
	if err != nil {
		span.SetStatus(codes.Error, "invalid token")
		return nil, ErrInvalidToken
	}

	span.SetAttributes(attribute.String("user_id", claims.UserID))

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("refresh lookup failed", zap.Error(err))
		return nil, ErrUnauthorized
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, ErrInvalidToken
	}

	// The token was issued for an email the user no longer has
	if user.Email != claims.Email {
		span.SetStatus(codes.Error, "email mismatch")
		return nil, ErrInvalidToken
	}

	// Rotation check: only the most recently issued refresh token is live
	if user.RefreshToken != refreshToken {
		span.SetStatus(codes.Error, "superseded refresh token")
		s.log.Info("refresh rejected: token superseded", zap.String("user_id", user.ID))
		return nil, ErrInvalidToken
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecordRefresh(ctx)
	span.SetStatus(codes.Ok, "")

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         dto.ToUserResponse(user),
	}, nil
}

// ValidateToken validates an access token and returns its claims
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	_, span := telemetry.StartSpan(ctx, "service.auth.validate_token")
	defer span.End()

	claims, err := s.parseToken(tokenString)
	if err != nil {
		span.SetStatus(codes.Error, "invalid token")
		return nil, ErrInvalidToken
	}

	span.SetAttributes(attribute.String("user_id", claims.UserID))
	span.SetStatus(codes.Ok, "")
	return claims, nil
}

// issueTokens signs a new access/refresh pair and stores the refresh token
// against the user. Signing and persisting are one unit: if the store
// write fails no tokens are returned, otherwise rotation would break on
// the next refresh call.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.signToken(user, s.config.AccessTokenExpiry)
	if err != nil {
		s.log.Error("access token signing failed", zap.Error(err))
		return nil, ErrTokenGeneration
	}

	refreshToken, err := s.signToken(user, s.config.RefreshTokenExpiry)
	if err != nil {
		s.log.Error("refresh token signing failed", zap.Error(err))
		return nil, ErrTokenGeneration
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		s.log.Error("storing refresh token failed", zap.Error(err))
		return nil, ErrTokenGeneration
	}
	user.RefreshToken = refreshToken

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

// signToken signs a token carrying the user's identity. The jti claim
// makes every issued token unique even when two are signed within the
// same second with otherwise identical claims.
func (s *authService) signToken(user *domain.User, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"jti":   uuid.New().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
	})
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseToken verifies a token's signature and expiry and extracts its
// claims. Access and refresh tokens share the same secret and shape.
func (s *authService) parseToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{UserID: sub, Email: email}, nil
}
