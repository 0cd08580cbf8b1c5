package service

import (
	"context"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/repository"
)

// TokenService registers access tokens. Registration is the only ungated
// catalogue operation.
type TokenService struct {
	tokens repository.TokenRepository
}

// NewTokenService creates a new TokenService.
func NewTokenService(tokens repository.TokenRepository) *TokenService {
	return &TokenService{tokens: tokens}
}

// Create stores the token value. Storing an already known value is a no-op.
func (s *TokenService) Create(ctx context.Context, req *models.CreateTokenRequest) (*models.Token, error) {
	if req.Value == "" {
		return nil, ErrTokenValueRequired
	}

	token := &models.Token{Value: req.Value}
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}
