package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/valenn0101/koywe-challenge/internal/domain"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/service"
)

type stubAuthService struct {
	claims *domain.Claims
	err    error
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	return s.claims, s.err
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(svc service.AuthService) *gin.Engine {
		router := gin.New()
		router.Use(Auth(svc))
		router.GET("/protected", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
		})
		return router
	}

	t.Run("valid bearer token passes identity through", func(t *testing.T) {
		router := newRouter(&stubAuthService{claims: &domain.Claims{UserID: "u1", Email: "a@example.com"}})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if body := w.Body.String(); body != `{"user_id":"u1"}` {
			t.Errorf("body = %s, want user_id u1", body)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		router := newRouter(&stubAuthService{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		router := newRouter(&stubAuthService{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		router := newRouter(&stubAuthService{err: service.ErrInvalidToken})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an ID when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Header().Get(RequestIDHeader) == "" {
			t.Error("response is missing the request ID header")
		}
		if w.Body.String() == "" {
			t.Error("request ID was not stored in context")
		}
	})

	t.Run("honors a caller-supplied ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "caller-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "caller-id" {
			t.Errorf("request ID = %v, want caller-id", got)
		}
	})
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("sets CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %v, want *", got)
		}
		if got := w.Header().Get("Access-Control-Max-Age"); got != "86400" {
			t.Errorf("Max-Age = %v, want 86400", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}
