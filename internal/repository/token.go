package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
)

// TokenRepository defines storage operations for access tokens. Tokens are
// only ever created and checked for existence.
type TokenRepository interface {
	Exists(ctx context.Context, value string) (bool, error)
	Save(ctx context.Context, token *models.Token) error
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tokens WHERE value = $1)`, value).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "token exists")
	}
	return exists, nil
}

func (r *tokenRepository) Save(ctx context.Context, token *models.Token) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO tokens (value) VALUES ($1) ON CONFLICT (value) DO NOTHING`, token.Value)
	if err != nil {
		return db.WrapError(err, "save token")
	}
	return nil
}
