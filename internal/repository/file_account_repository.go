package repository

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/menupage/internal/domain"
)

const accountsFile = "users.json"

type fileAccountRepository struct {
	accounts *collection[domain.Account]
	now      func() time.Time
}

func NewFileAccountRepository(dataDir string) AccountRepository {
	return &fileAccountRepository{
		accounts: newCollection[domain.Account](filepath.Join(dataDir, accountsFile)),
		now:      time.Now,
	}
}

func (r *fileAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	err := r.accounts.view(func(items []domain.Account) error {
		out = items
		return nil
	})
	return out, err
}

func (r *fileAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.find(func(a domain.Account) bool { return a.ID == id })
}

func (r *fileAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.find(func(a domain.Account) bool { return a.Email == email })
}

func (r *fileAccountRepository) find(match func(domain.Account) bool) (*domain.Account, error) {
	var found *domain.Account
	err := r.accounts.view(func(items []domain.Account) error {
		i := slices.IndexFunc(items, match)
		if i < 0 {
			return ErrNotFound
		}
		found = &items[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *fileAccountRepository) Create(ctx context.Context, account domain.Account) (*domain.Account, error) {
	account.ID = uuid.NewString()
	account.CreatedAt = r.now().UTC()

	err := r.accounts.mutate(func(items []domain.Account) ([]domain.Account, error) {
		if slices.ContainsFunc(items, func(a domain.Account) bool { return a.Email == account.Email }) {
			return nil, ErrEmailTaken
		}
		return append(items, account), nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *fileAccountRepository) Delete(ctx context.Context, id string) error {
	return r.accounts.mutate(func(items []domain.Account) ([]domain.Account, error) {
		i := slices.IndexFunc(items, func(a domain.Account) bool { return a.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}
