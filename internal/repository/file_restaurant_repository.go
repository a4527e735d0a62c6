package repository

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/menupage/internal/domain"
)

const restaurantsFile = "restaurants.json"

type fileRestaurantRepository struct {
	restaurants *collection[domain.Restaurant]
	now         func() time.Time
}

func NewFileRestaurantRepository(dataDir string) RestaurantRepository {
	return &fileRestaurantRepository{
		restaurants: newCollection[domain.Restaurant](filepath.Join(dataDir, restaurantsFile)),
		now:         time.Now,
	}
}

func (r *fileRestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	return r.filter(func(domain.Restaurant) bool { return true })
}

func (r *fileRestaurantRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Restaurant, error) {
	return r.filter(func(rest domain.Restaurant) bool { return rest.UserID == userID })
}

func (r *fileRestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return r.find(func(rest domain.Restaurant) bool { return rest.ID == id })
}

func (r *fileRestaurantRepository) FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return r.find(func(rest domain.Restaurant) bool { return rest.Slug == slug })
}

func (r *fileRestaurantRepository) filter(keep func(domain.Restaurant) bool) ([]domain.Restaurant, error) {
	out := []domain.Restaurant{}
	err := r.restaurants.view(func(items []domain.Restaurant) error {
		for _, rest := range items {
			if keep(rest) {
				rest.EnsureDefaults()
				out = append(out, rest)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRestaurantRepository) find(match func(domain.Restaurant) bool) (*domain.Restaurant, error) {
	var found domain.Restaurant
	err := r.restaurants.view(func(items []domain.Restaurant) error {
		i := slices.IndexFunc(items, match)
		if i < 0 {
			return ErrNotFound
		}
		found = items[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	found.EnsureDefaults()
	return &found, nil
}

func (r *fileRestaurantRepository) Create(ctx context.Context, restaurant domain.Restaurant) (*domain.Restaurant, error) {
	now := r.now().UTC()
	restaurant.ID = uuid.NewString()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	restaurant.EnsureDefaults()

	err := r.restaurants.mutate(func(items []domain.Restaurant) ([]domain.Restaurant, error) {
		if slugInUse(items, restaurant.Slug, "") {
			return nil, ErrSlugTaken
		}
		return append(items, restaurant), nil
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *fileRestaurantRepository) Update(ctx context.Context, id string, patch *domain.UpdateRestaurantRequest) (*domain.Restaurant, []string, error) {
	var (
		updated domain.Restaurant
		changed []string
	)
	err := r.restaurants.mutate(func(items []domain.Restaurant) ([]domain.Restaurant, error) {
		i := slices.IndexFunc(items, func(rest domain.Restaurant) bool { return rest.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		if patch.Slug != nil && slugInUse(items, *patch.Slug, id) {
			return nil, ErrSlugTaken
		}
		changed = patch.ApplyTo(&items[i])
		items[i].UpdatedAt = r.now().UTC()
		updated = items[i]
		return items, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, changed, nil
}

func (r *fileRestaurantRepository) Delete(ctx context.Context, id string) error {
	return r.restaurants.mutate(func(items []domain.Restaurant) ([]domain.Restaurant, error) {
		i := slices.IndexFunc(items, func(rest domain.Restaurant) bool { return rest.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}

func slugInUse(items []domain.Restaurant, slug, exceptID string) bool {
	return slices.ContainsFunc(items, func(rest domain.Restaurant) bool {
		return rest.Slug == slug && rest.ID != exceptID
	})
}
