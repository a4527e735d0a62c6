package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/internal/repository"
	"github.com/diagnosis/menupage/pkg/auth"
)

// Authenticator resolves an Authorization header to the account it belongs to.
type Authenticator struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenService
}

func NewAuthenticator(accounts repository.AccountRepository, tokens *auth.TokenService) *Authenticator {
	return &Authenticator{accounts: accounts, tokens: tokens}
}

// Authenticate re-reads the account on every call so a deleted account's token stops
// working before it expires.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*domain.Identity, error) {
	raw := auth.ExtractBearerToken(header)
	if raw == "" {
		return nil, domain.Unauthenticated("Unauthorized")
	}

	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return nil, domain.Unauthenticated("Unauthorized")
	}

	account, err := a.accounts.FindByID(ctx, claims.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Unauthenticated("Unauthorized")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	return account.ToIdentity(), nil
}
