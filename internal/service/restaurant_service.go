package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/internal/mailer"
	"github.com/diagnosis/menupage/internal/repository"
	"github.com/diagnosis/menupage/pkg/events"
	"github.com/diagnosis/menupage/pkg/logger"
)

type RestaurantService interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	Create(ctx context.Context, owner *domain.Identity, req *domain.CreateRestaurantRequest) (*domain.Restaurant, error)
	Update(ctx context.Context, caller *domain.Identity, id string, req *domain.UpdateRestaurantRequest) (*domain.Restaurant, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}

type restaurantService struct {
	restaurants   repository.RestaurantRepository
	mailer        mailer.Service
	eventBus      events.Publisher
	publicBaseURL string
	now           func() time.Time
}

func NewRestaurantService(
	restaurants repository.RestaurantRepository,
	mailer mailer.Service,
	eventBus events.Publisher,
	publicBaseURL string,
) RestaurantService {
	return &restaurantService{
		restaurants:   restaurants,
		mailer:        mailer,
		eventBus:      eventBus,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

func (s *restaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	list, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return list, nil
}

func (s *restaurantService) ListByOwner(ctx context.Context, userID string) ([]domain.Restaurant, error) {
	list, err := s.restaurants.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list restaurants for %s: %w", userID, err)
	}
	return list, nil
}

func (s *restaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := s.restaurants.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound("Restaurant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return rest, nil
}

func (s *restaurantService) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	rest, err := s.restaurants.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound("Restaurant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant by slug: %w", err)
	}
	return rest, nil
}

func (s *restaurantService) Create(ctx context.Context, owner *domain.Identity, req *domain.CreateRestaurantRequest) (*domain.Restaurant, error) {
	if owner == nil {
		return nil, domain.Unauthenticated("Unauthorized")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rest, err := s.restaurants.Create(ctx, req.ToRestaurant(owner.AccountID))
	if errors.Is(err, repository.ErrSlugTaken) {
		return nil, domain.Conflict("Slug is already in use")
	}
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	logger.InfoContext(ctx, "Restaurant created", "restaurant_id", rest.ID, "slug", rest.Slug)

	s.publish(ctx, events.RestaurantCreated, events.RestaurantCreatedEvent{
		RestaurantID: rest.ID,
		UserID:       rest.UserID,
		Slug:         rest.Slug,
		Name:         rest.Name,
		CreatedAt:    rest.CreatedAt,
	})

	if err := s.mailer.SendSitePublished(ctx, owner.Email, owner.Name, rest.Name, s.siteURL(rest.Slug)); err != nil {
		logger.ErrorContext(ctx, "Failed to send site published email", "error", err, "restaurant_id", rest.ID)
	}

	return rest, nil
}

func (s *restaurantService) Update(ctx context.Context, caller *domain.Identity, id string, req *domain.UpdateRestaurantRequest) (*domain.Restaurant, error) {
	current, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	req.ResolveSlug(current.Slug)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rest, changed, err := s.restaurants.Update(ctx, id, req)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, domain.NotFound("Restaurant not found")
	case errors.Is(err, repository.ErrSlugTaken):
		return nil, domain.Conflict("Slug is already in use")
	case err != nil:
		return nil, fmt.Errorf("update restaurant: %w", err)
	}

	s.publish(ctx, events.RestaurantUpdated, events.RestaurantUpdatedEvent{
		RestaurantID: rest.ID,
		UserID:       rest.UserID,
		Slug:         rest.Slug,
		Changes:      changed,
		UpdatedAt:    rest.UpdatedAt,
	})
	return rest, nil
}

func (s *restaurantService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	rest, err := s.authorize(ctx, caller, id)
	if err != nil {
		return err
	}

	err = s.restaurants.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound("Restaurant not found")
	}
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}

	logger.InfoContext(ctx, "Restaurant deleted", "restaurant_id", id)

	s.publish(ctx, events.RestaurantDeleted, events.RestaurantDeletedEvent{
		RestaurantID: rest.ID,
		UserID:       rest.UserID,
		Slug:         rest.Slug,
		DeletedAt:    s.now().UTC(),
	})
	return nil
}

// siteURL is the public page for a slug.
func (s *restaurantService) siteURL(slug string) string {
	return s.publicBaseURL + "/r/" + slug
}

// authorize loads the restaurant and checks ownership. Absence wins over ownership.
func (s *restaurantService) authorize(ctx context.Context, caller *domain.Identity, id string) (*domain.Restaurant, error) {
	rest, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller == nil || rest.UserID != caller.AccountID {
		return nil, domain.Forbidden("Unauthorized")
	}
	return rest, nil
}

func (s *restaurantService) publish(ctx context.Context, subject string, payload any) {
	if err := s.eventBus.Publish(ctx, subject, payload); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
