package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/valenn0101/koywe-challenge/internal/domain"
	"github.com/valenn0101/koywe-challenge/internal/dto"
	"github.com/valenn0101/koywe-challenge/internal/gateway"
)

// mockQuoteRepository is a map-backed mock implementation of QuoteRepository
type mockQuoteRepository struct {
	quotes map[string]*domain.Quote

	createError error
	getError    error
}

func newMockQuoteRepository() *mockQuoteRepository {
	return &mockQuoteRepository{quotes: make(map[string]*domain.Quote)}
}

func (r *mockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	if r.createError != nil {
		return r.createError
	}
	r.quotes[quote.ID] = quote
	return nil
}

func (r *mockQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	if r.getError != nil {
		return nil, r.getError
	}
	quote := r.quotes[id]
	if quote == nil || quote.DeletedAt != nil {
		return nil, nil
	}
	return quote, nil
}

func (r *mockQuoteRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Quote, error) {
	var result []*domain.Quote
	for _, q := range r.quotes {
		if q.UserID == userID && q.DeletedAt == nil {
			result = append(result, q)
		}
	}
	return result, nil
}

func (r *mockQuoteRepository) SoftDelete(ctx context.Context, id string) error {
	quote := r.quotes[id]
	if quote == nil || quote.DeletedAt != nil {
		return errors.New("no rows affected")
	}
	now := time.Now()
	quote.DeletedAt = &now
	return nil
}

func TestQuoteService_CreateQuote(t *testing.T) {
	t.Run("converts amount at the fetched rate", func(t *testing.T) {
		repo := newMockQuoteRepository()
		rates := gateway.NewMockRateGateway()
		rates.SetRate(domain.CurrencyARS, domain.CurrencyETH, 0.0000023)
		svc := NewQuoteService(repo, rates, nil)

		resp, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 1000000,
			From:   domain.CurrencyARS,
			To:     domain.CurrencyETH,
		}, "user-1")
		if err != nil {
			t.Fatalf("CreateQuote() error = %v", err)
		}

		if math.Abs(resp.ConvertedAmount-2.3) > 1e-9 {
			t.Errorf("CreateQuote() ConvertedAmount = %v, want 2.3", resp.ConvertedAmount)
		}
		if resp.Rate != 0.0000023 {
			t.Errorf("CreateQuote() Rate = %v, want 0.0000023", resp.Rate)
		}
		if resp.ID == "" {
			t.Error("CreateQuote() ID is empty")
		}

		stored := repo.quotes[resp.ID]
		if stored == nil {
			t.Fatal("CreateQuote() did not persist the quote")
		}
		if got := stored.ExpiresAt.Sub(stored.Timestamp); got != 5*time.Minute {
			t.Errorf("CreateQuote() expiry window = %v, want 5m", got)
		}
		if stored.UserID != "user-1" {
			t.Errorf("CreateQuote() UserID = %v, want user-1", stored.UserID)
		}
	})

	t.Run("custom expiry window", func(t *testing.T) {
		repo := newMockQuoteRepository()
		rates := gateway.NewMockRateGateway()
		rates.SetRate(domain.CurrencyBTC, domain.CurrencyUSDT, 65000)
		svc := NewQuoteService(repo, rates, &QuoteServiceConfig{QuoteTTL: time.Minute})

		resp, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 2,
			From:   domain.CurrencyBTC,
			To:     domain.CurrencyUSDT,
		}, "user-1")
		if err != nil {
			t.Fatalf("CreateQuote() error = %v", err)
		}

		stored := repo.quotes[resp.ID]
		if got := stored.ExpiresAt.Sub(stored.Timestamp); got != time.Minute {
			t.Errorf("CreateQuote() expiry window = %v, want 1m", got)
		}
	})

	t.Run("unsupported currency skips the rate source", func(t *testing.T) {
		repo := newMockQuoteRepository()
		rates := gateway.NewMockRateGateway()
		svc := NewQuoteService(repo, rates, nil)

		_, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 100,
			From:   domain.Currency("EUR"),
			To:     domain.CurrencyBTC,
		}, "user-1")
		if !errors.Is(err, ErrInvalidCurrency) {
			t.Errorf("CreateQuote() error = %v, want %v", err, ErrInvalidCurrency)
		}
		if len(rates.Calls()) != 0 {
			t.Errorf("CreateQuote() consulted the rate source %d times, want 0", len(rates.Calls()))
		}
	})

	t.Run("same currency pair skips the rate source", func(t *testing.T) {
		repo := newMockQuoteRepository()
		rates := gateway.NewMockRateGateway()
		rates.SetRate(domain.CurrencyBTC, domain.CurrencyBTC, 1)
		svc := NewQuoteService(repo, rates, nil)

		_, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 100,
			From:   domain.CurrencyBTC,
			To:     domain.CurrencyBTC,
		}, "user-1")
		if !errors.Is(err, ErrSameCurrency) {
			t.Errorf("CreateQuote() error = %v, want %v", err, ErrSameCurrency)
		}
		if len(rates.Calls()) != 0 {
			t.Errorf("CreateQuote() consulted the rate source %d times, want 0", len(rates.Calls()))
		}
	})

	t.Run("rate source failure", func(t *testing.T) {
		repo := newMockQuoteRepository()
		rates := gateway.NewMockRateGateway()
		rates.Err = errors.New("connection refused")
		svc := NewQuoteService(repo, rates, nil)

		_, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 100,
			From:   domain.CurrencyARS,
			To:     domain.CurrencyBTC,
		}, "user-1")
		if !errors.Is(err, ErrExchangeRateUnavailable) {
			t.Errorf("CreateQuote() error = %v, want %v", err, ErrExchangeRateUnavailable)
		}
		if len(repo.quotes) != 0 {
			t.Error("CreateQuote() persisted a quote despite a rate failure")
		}
	})

	t.Run("persistence failure", func(t *testing.T) {
		repo := newMockQuoteRepository()
		repo.createError = errors.New("insert failed")
		rates := gateway.NewMockRateGateway()
		rates.SetRate(domain.CurrencyARS, domain.CurrencyBTC, 0.5)
		svc := NewQuoteService(repo, rates, nil)

		_, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 100,
			From:   domain.CurrencyARS,
			To:     domain.CurrencyBTC,
		}, "user-1")
		if !errors.Is(err, ErrQuoteCreationFailed) {
			t.Errorf("CreateQuote() error = %v, want %v", err, ErrQuoteCreationFailed)
		}
	})
}

func TestQuoteService_GetQuoteByID(t *testing.T) {
	repo := newMockQuoteRepository()
	rates := gateway.NewMockRateGateway()
	rates.SetRate(domain.CurrencyARS, domain.CurrencyETH, 0.0000023)
	svc := NewQuoteService(repo, rates, nil)

	created, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
		Amount: 1000,
		From:   domain.CurrencyARS,
		To:     domain.CurrencyETH,
	}, "user-1")
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}

	t.Run("live quote is returned", func(t *testing.T) {
		resp, err := svc.GetQuoteByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetQuoteByID() error = %v", err)
		}
		if resp.ID != created.ID {
			t.Errorf("GetQuoteByID() ID = %v, want %v", resp.ID, created.ID)
		}
	})

	t.Run("ownership is not checked on lookup", func(t *testing.T) {
		// Any authenticated caller can read any quote by ID. Lookup takes
		// no user identity at all.
		resp, err := svc.GetQuoteByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetQuoteByID() error = %v", err)
		}
		if resp.ID != created.ID {
			t.Errorf("GetQuoteByID() ID = %v, want %v", resp.ID, created.ID)
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		_, err := svc.GetQuoteByID(context.Background(), "does-not-exist")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Errorf("GetQuoteByID() error = %v, want %v", err, ErrQuoteNotFound)
		}
	})

	t.Run("expired quote behaves as missing", func(t *testing.T) {
		expired := repo.quotes[created.ID]
		expired.ExpiresAt = time.Now().Add(-time.Second)

		_, errExpired := svc.GetQuoteByID(context.Background(), created.ID)
		_, errMissing := svc.GetQuoteByID(context.Background(), "does-not-exist")

		if !errors.Is(errExpired, ErrQuoteNotFound) {
			t.Errorf("GetQuoteByID() error = %v, want %v", errExpired, ErrQuoteNotFound)
		}
		if errExpired.Error() != errMissing.Error() {
			t.Error("GetQuoteByID() expired and missing quotes are distinguishable")
		}
	})
}

func TestQuoteService_GetAllCurrencies(t *testing.T) {
	svc := NewQuoteService(newMockQuoteRepository(), gateway.NewMockRateGateway(), nil)

	want := []domain.Currency{
		domain.CurrencyARS,
		domain.CurrencyETH,
		domain.CurrencyBTC,
		domain.CurrencyUSDT,
		domain.CurrencyXEM,
		domain.CurrencyCLP,
		domain.CurrencySHIB,
		domain.CurrencyDOGE,
	}

	got := svc.GetAllCurrencies()
	if len(got) != len(want) {
		t.Fatalf("GetAllCurrencies() returned %d currencies, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetAllCurrencies()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQuoteService_GetUserQuotes(t *testing.T) {
	repo := newMockQuoteRepository()
	rates := gateway.NewMockRateGateway()
	rates.SetRate(domain.CurrencyARS, domain.CurrencyETH, 0.0000023)
	svc := NewQuoteService(repo, rates, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 100,
			From:   domain.CurrencyARS,
			To:     domain.CurrencyETH,
		}, "owner"); err != nil {
			t.Fatalf("CreateQuote() error = %v", err)
		}
	}

	t.Run("returns the owner's quotes", func(t *testing.T) {
		quotes, err := svc.GetUserQuotes(context.Background(), "owner")
		if err != nil {
			t.Fatalf("GetUserQuotes() error = %v", err)
		}
		if len(quotes) != 3 {
			t.Errorf("GetUserQuotes() returned %d quotes, want 3", len(quotes))
		}
	})

	t.Run("expired quotes are included", func(t *testing.T) {
		for _, q := range repo.quotes {
			q.ExpiresAt = time.Now().Add(-time.Minute)
		}

		quotes, err := svc.GetUserQuotes(context.Background(), "owner")
		if err != nil {
			t.Fatalf("GetUserQuotes() error = %v", err)
		}
		if len(quotes) != 3 {
			t.Errorf("GetUserQuotes() returned %d quotes, want 3", len(quotes))
		}
	})

	t.Run("no quotes yields an empty slice", func(t *testing.T) {
		quotes, err := svc.GetUserQuotes(context.Background(), "stranger")
		if err != nil {
			t.Fatalf("GetUserQuotes() error = %v", err)
		}
		if quotes == nil {
			t.Error("GetUserQuotes() returned nil, want empty slice")
		}
		if len(quotes) != 0 {
			t.Errorf("GetUserQuotes() returned %d quotes, want 0", len(quotes))
		}
	})
}

func TestQuoteService_DeleteQuote(t *testing.T) {
	repo := newMockQuoteRepository()
	rates := gateway.NewMockRateGateway()
	rates.SetRate(domain.CurrencyARS, domain.CurrencyETH, 0.0000023)
	svc := NewQuoteService(repo, rates, nil)

	created, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
		Amount: 100,
		From:   domain.CurrencyARS,
		To:     domain.CurrencyETH,
	}, "user-1")
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}

	t.Run("deleted quote disappears from lookups", func(t *testing.T) {
		if err := svc.DeleteQuote(context.Background(), created.ID); err != nil {
			t.Fatalf("DeleteQuote() error = %v", err)
		}

		if _, err := svc.GetQuoteByID(context.Background(), created.ID); !errors.Is(err, ErrQuoteNotFound) {
			t.Errorf("GetQuoteByID() after delete error = %v, want %v", err, ErrQuoteNotFound)
		}

		// The row survives as a soft-deleted record
		if repo.quotes[created.ID] == nil {
			t.Error("DeleteQuote() removed the record instead of soft-deleting it")
		}
		if repo.quotes[created.ID].DeletedAt == nil {
			t.Error("DeleteQuote() did not set the deletion marker")
		}
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		if err := svc.DeleteQuote(context.Background(), created.ID); !errors.Is(err, ErrQuoteNotFound) {
			t.Errorf("DeleteQuote() error = %v, want %v", err, ErrQuoteNotFound)
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		if err := svc.DeleteQuote(context.Background(), "does-not-exist"); !errors.Is(err, ErrQuoteNotFound) {
			t.Errorf("DeleteQuote() error = %v, want %v", err, ErrQuoteNotFound)
		}
	})

	t.Run("expired quote can still be deleted", func(t *testing.T) {
		resp, err := svc.CreateQuote(context.Background(), &dto.CreateQuoteRequest{
			Amount: 100,
			From:   domain.CurrencyARS,
			To:     domain.CurrencyETH,
		}, "user-1")
		if err != nil {
			t.Fatalf("CreateQuote() error = %v", err)
		}
		repo.quotes[resp.ID].ExpiresAt = time.Now().Add(-time.Minute)

		if err := svc.DeleteQuote(context.Background(), resp.ID); err != nil {
			t.Errorf("DeleteQuote() error = %v", err)
		}
	})
}
