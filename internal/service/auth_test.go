package service

import (
	"context"
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	auth := NewAuthorizer(newMockTokenRepo("good-token"))

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "known token", token: "good-token"},
		{name: "missing token", token: "", wantErr: ErrTokenRequired},
		{name: "unknown token", token: "bad-token", wantErr: ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authorize(context.Background(), tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// A missing token must be reported as missing even when nothing is registered,
// and presence is checked before validity.
func TestAuthorizeEmptyStoreStillDistinguishes(t *testing.T) {
	auth := NewAuthorizer(newMockTokenRepo())

	if err := auth.Authorize(context.Background(), ""); !errors.Is(err, ErrTokenRequired) {
		t.Errorf("Authorize(\"\") error = %v, want ErrTokenRequired", err)
	}
	if err := auth.Authorize(context.Background(), "anything"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Authorize(\"anything\") error = %v, want ErrTokenInvalid", err)
	}
}
