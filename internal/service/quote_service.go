package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valenn0101/koywe-challenge/internal/domain"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/gateway"
	"github.com/valenn0101/koywe-challenge/internal/metrics"
	"github.com/valenn0101/koywe-challenge/internal/repository"
	"github.com/valenn0101/koywe-challenge/pkg/logger"
	"github.com/valenn0101/koywe-challenge/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var (
	ErrInvalidCurrency         = errors.New("currency is not supported")
	ErrSameCurrency            = errors.New("source and target currencies must differ")
	ErrExchangeRateUnavailable = errors.New("exchange rate source unavailable")
	ErrQuoteNotFound           = errors.New("quote not found")
	ErrQuoteCreationFailed     = errors.New("quote creation failed")
)

// QuoteServiceConfig holds configuration for QuoteService
type QuoteServiceConfig struct {
	// QuoteTTL is how long a quote stays valid after creation
	QuoteTTL time.Duration
}

// QuoteService defines the interface for quote operations
type QuoteService interface {
	// CreateQuote converts an amount using a freshly fetched rate and
	// persists the result with an expiry window
	CreateQuote(ctx context.Context, req *dto.CreateQuoteRequest, userID string) (*dto.QuoteResponse, error)
	// GetQuoteByID retrieves a quote by ID; expired quotes behave as
	// not found
	GetQuoteByID(ctx context.Context, id string) (*dto.QuoteResponse, error)
	// GetAllCurrencies returns the supported currency codes in
	// declaration order
	GetAllCurrencies() []domain.Currency
	// GetUserQuotes returns all quotes owned by a user, including
	// expired ones
	GetUserQuotes(ctx context.Context, userID string) ([]*domain.Quote, error)
	// DeleteQuote soft-deletes a quote
	DeleteQuote(ctx context.Context, id string) error
}

// quoteService implements QuoteService
type quoteService struct {
	quoteRepo   repository.QuoteRepository
	rateGateway gateway.RateGateway
	config      *QuoteServiceConfig
	log         *logger.Logger
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo repository.QuoteRepository, rateGateway gateway.RateGateway, config *QuoteServiceConfig) QuoteService {
	if config == nil {
		config = &QuoteServiceConfig{}
	}
	if config.QuoteTTL == 0 {
		config.QuoteTTL = 5 * time.Minute
	}
	return &quoteService{
		quoteRepo:   quoteRepo,
		rateGateway: rateGateway,
		config:      config,
		log:         logger.Get(),
	}
}

// CreateQuote converts an amount at the current rate. The rate source is
// consulted exactly once, after input validation and never for a
// same-currency pair.
func (s *quoteService) CreateQuote(ctx context.Context, req *dto.CreateQuoteRequest, userID string) (*dto.QuoteResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.quote.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("from", req.From.String()),
		attribute.String("to", req.To.String()),
		attribute.Float64("amount", req.Amount),
	)

	if !req.From.IsValid() || !req.To.IsValid() {
		span.SetStatus(codes.Error, "invalid currency")
		return nil, ErrInvalidCurrency
	}
	if req.From == req.To {
		span.SetStatus(codes.Error, "same currency")
		return nil, ErrSameCurrency
	}

	rate, err := s.rateGateway.GetExchangeRate(ctx, req.From, req.To)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("rate lookup failed",
			zap.String("from", req.From.String()),
			zap.String("to", req.To.String()),
			zap.Error(err),
		)
		metrics.RecordRateLookupFailure(ctx, req.From.String(), req.To.String())
		return nil, ErrExchangeRateUnavailable
	}

	now := time.Now()
	quote := &domain.Quote{
		ID:              uuid.New().String(),
		From:            req.From,
		To:              req.To,
		Amount:          req.Amount,
		Rate:            rate,
		ConvertedAmount: req.Amount * rate,
		Timestamp:       now,
		ExpiresAt:       now.Add(s.config.QuoteTTL),
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("quote persistence failed", zap.Error(err))
		return nil, ErrQuoteCreationFailed
	}

	metrics.RecordQuoteCreated(ctx, req.From.String(), req.To.String())
	span.SetAttributes(attribute.String("quote_id", quote.ID))
	span.SetStatus(codes.Ok, "")

	return dto.ToQuoteResponse(quote), nil
}

// GetQuoteByID retrieves a quote. A quote past its expiry is
// indistinguishable from a missing one.
func (s *quoteService) GetQuoteByID(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.quote.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("quote_id", id))

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("loading quote %s: %w", id, err)
	}
	if quote == nil || quote.IsExpired(time.Now()) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrQuoteNotFound
	}

	span.SetStatus(codes.Ok, "")
	return dto.ToQuoteResponse(quote), nil
}

// GetAllCurrencies returns the supported currencies. Pure, no I/O.
func (s *quoteService) GetAllCurrencies() []domain.Currency {
	return domain.Currencies()
}

// GetUserQuotes returns the full quote records owned by a user,
// unfiltered by expiry.
func (s *quoteService) GetUserQuotes(ctx context.Context, userID string) ([]*domain.Quote, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.quote.get_user_quotes")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	quotes, err := s.quoteRepo.GetByUserID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("loading quotes for user %s: %w", userID, err)
	}
	if quotes == nil {
		quotes = []*domain.Quote{}
	}

	span.SetAttributes(attribute.Int("count", len(quotes)))
	span.SetStatus(codes.Ok, "")
	return quotes, nil
}

// DeleteQuote soft-deletes a quote. Expiry does not block deletion.
func (s *quoteService) DeleteQuote(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.quote.delete")
	defer span.End()

	span.SetAttributes(attribute.String("quote_id", id))

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("loading quote %s: %w", id, err)
	}
	if quote == nil {
		span.SetStatus(codes.Error, "not found")
		return ErrQuoteNotFound
	}

	if err := s.quoteRepo.SoftDelete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("deleting quote %s: %w", id, err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
