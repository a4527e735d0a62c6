package repository

import (
	"context"
	"errors"

	"github.com/diagnosis/menupage/internal/domain"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrSlugTaken  = errors.New("slug already in use")
)

// AccountRepository stores accounts. Create assigns id and createdAt.
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// RestaurantRepository stores restaurants. Create assigns id, createdAt and updatedAt;
// Update merges the patch and refreshes updatedAt. Slugs are unique across all restaurants.
type RestaurantRepository interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	Create(ctx context.Context, restaurant domain.Restaurant) (*domain.Restaurant, error)
	Update(ctx context.Context, id string, patch *domain.UpdateRestaurantRequest) (*domain.Restaurant, []string, error)
	Delete(ctx context.Context, id string) error
}
