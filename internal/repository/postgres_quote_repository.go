package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valenn0101/koywe-challenge/internal/domain"
)

// PostgresQuoteRepository implements QuoteRepository using PostgreSQL
type PostgresQuoteRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresQuoteRepository creates a new PostgresQuoteRepository
func NewPostgresQuoteRepository(pool *pgxpool.Pool) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{pool: pool}
}

// Create creates a new quote
func (r *PostgresQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	query := `
		INSERT INTO quotes (id, from_currency, to_currency, amount, rate, converted_amount,
			timestamp, expires_at, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		quote.ID,
		quote.From,
		quote.To,
		quote.Amount,
		quote.Rate,
		quote.ConvertedAmount,
		quote.Timestamp,
		quote.ExpiresAt,
		quote.UserID,
		quote.CreatedAt,
		quote.UpdatedAt,
	)
	return err
}

// GetByID retrieves a quote by ID, excluding soft-deleted records
func (r *PostgresQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := `
		SELECT id, from_currency, to_currency, amount, rate, converted_amount,
			timestamp, expires_at, user_id, created_at, updated_at
		FROM quotes
		WHERE id = $1 AND deleted_at IS NULL
	`
	quote := &domain.Quote{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&quote.ID,
		&quote.From,
		&quote.To,
		&quote.Amount,
		&quote.Rate,
		&quote.ConvertedAmount,
		&quote.Timestamp,
		&quote.ExpiresAt,
		&quote.UserID,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return quote, nil
}

// GetByUserID retrieves all non-deleted quotes owned by a user, including
// expired ones, in insertion order.
func (r *PostgresQuoteRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Quote, error) {
	query := `
		SELECT id, from_currency, to_currency, amount, rate, converted_amount,
			timestamp, expires_at, user_id, created_at, updated_at
		FROM quotes
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*domain.Quote
	for rows.Next() {
		quote := &domain.Quote{}
		if err := rows.Scan(
			&quote.ID,
			&quote.From,
			&quote.To,
			&quote.Amount,
			&quote.Rate,
			&quote.ConvertedAmount,
			&quote.Timestamp,
			&quote.ExpiresAt,
			&quote.UserID,
			&quote.CreatedAt,
			&quote.UpdatedAt,
		); err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

// SoftDelete marks a quote deleted without removing the record
func (r *PostgresQuoteRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE quotes
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
