package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/internal/repository"
	"github.com/diagnosis/menupage/pkg/auth"
	"github.com/diagnosis/menupage/pkg/events"
	"github.com/diagnosis/menupage/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	Me(ctx context.Context, accountID string) (*domain.AccountInfo, error)
}

type authService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenService
	eventBus events.Publisher
}

func NewAuthService(accounts repository.AccountRepository, tokens *auth.TokenService, eventBus events.Publisher) AuthService {
	return &authService{
		accounts: accounts,
		tokens:   tokens,
		eventBus: eventBus,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, err := s.accounts.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, domain.Conflict("User already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, domain.Account{
		Email:    req.Email,
		Password: passwordHash,
		Name:     req.Name,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		// Lost a race with a concurrent registration.
		return nil, domain.Conflict("User already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID:    account.ID,
		Email:        account.Email,
		RegisteredAt: account.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish account registered event", "error", err, "account_id", account.ID)
	}

	logger.InfoContext(ctx, "Account registered", "account_id", account.ID)
	return &domain.AuthResponse{User: account.ToInfo(), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	ok, err := auth.VerifyPassword(req.Password, account.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.Unauthenticated("Invalid credentials")
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AuthResponse{User: account.ToInfo(), Token: token}, nil
}

func (s *authService) Me(ctx context.Context, accountID string) (*domain.AccountInfo, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account.ToInfo(), nil
}
