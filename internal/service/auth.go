package service

import (
	"context"
	"fmt"

	"github.com/videominer/videominer-go/internal/repository"
)

// Authorizer is the token gate in front of every catalogue operation. It is
// stateless per call: presence is checked before validity, and validity is a
// single existence lookup against the token store. The presented value is the
// raw Authorization header, compared verbatim against stored tokens.
type Authorizer struct {
	tokens repository.TokenRepository
}

// NewAuthorizer creates a new Authorizer.
func NewAuthorizer(tokens repository.TokenRepository) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authorize returns ErrTokenRequired for an absent token, ErrTokenInvalid for
// an unregistered one and nil for a registered one.
func (a *Authorizer) Authorize(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}

	ok, err := a.tokens.Exists(ctx, token)
	if err != nil {
		return fmt.Errorf("check token: %w", err)
	}
	if !ok {
		return ErrTokenInvalid
	}

	return nil
}
