package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glec/leads-api/internal/entity"
)

// ErrTokenNotFound indicates that no proposal token row matches the value.
var ErrTokenNotFound = errors.New("proposal token not found")

// TokensRepository persists single-use proposal tokens. Consumption happens
// inside the booking transaction (BookingsRepository), never here, so rows
// are only ever inserted and read.
type TokensRepository interface {
	Insert(ctx context.Context, tok *entity.ProposalToken) error
	FindByToken(ctx context.Context, value string) (*entity.ProposalToken, error)
}

// PGXTokensRepository implements TokensRepository using pgx.
type PGXTokensRepository struct {
	pool pgxPool
}

// NewPGXTokensRepository wires a pgx backed repository.
func NewPGXTokensRepository(pool *pgxpool.Pool) *PGXTokensRepository {
	return &PGXTokensRepository{pool: pool}
}

// Insert persists a freshly minted token.
func (r *PGXTokensRepository) Insert(ctx context.Context, tok *entity.ProposalToken) error {
	if tok == nil {
		return fmt.Errorf("token payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO meeting_proposal_tokens (token, lead_type, lead_id, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, used, created_at`,
		tok.Token, tok.LeadType, tok.LeadID, tok.ExpiresAt)
	if err := row.Scan(&tok.ID, &tok.Used, &tok.CreatedAt); err != nil {
		return fmt.Errorf("insert proposal token: %w", err)
	}
	return nil
}

// FindByToken fetches a token row by its secret value.
func (r *PGXTokensRepository) FindByToken(ctx context.Context, value string) (*entity.ProposalToken, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, token, lead_type, lead_id, expires_at, used, used_at, created_at
        FROM meeting_proposal_tokens
        WHERE token = $1`, value)

	var (
		tok    entity.ProposalToken
		usedAt sql.NullTime
	)
	err := row.Scan(&tok.ID, &tok.Token, &tok.LeadType, &tok.LeadID, &tok.ExpiresAt, &tok.Used, &usedAt, &tok.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("query proposal token: %w", err)
	}
	if usedAt.Valid {
		ts := usedAt.Time
		tok.UsedAt = &ts
	}
	return &tok, nil
}
