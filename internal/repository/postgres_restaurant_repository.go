package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/menupage/internal/domain"
)

type postgresRestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRestaurantRepository(pool *pgxpool.Pool) RestaurantRepository {
	return &postgresRestaurantRepository{pool: pool}
}

const restaurantCols = `id, user_id, slug, name, description, address, phone, email,
	website, logo_url, cover_image_url, hours, menu, theme, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := row.Scan(
		&rest.ID, &rest.UserID, &rest.Slug, &rest.Name, &rest.Description, &rest.Address, &rest.Phone, &rest.Email,
		&rest.Website, &rest.LogoURL, &rest.CoverImageURL, &rest.Hours, &rest.Menu, &rest.Theme,
		&rest.CreatedAt, &rest.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rest.CreatedAt = rest.CreatedAt.UTC()
	rest.UpdatedAt = rest.UpdatedAt.UTC()
	rest.EnsureDefaults()
	return &rest, nil
}

func (r *postgresRestaurantRepository) query(ctx context.Context, q string, args ...any) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rest)
	}
	return out, rows.Err()
}

func (r *postgresRestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	return r.query(ctx, `SELECT `+restaurantCols+` FROM restaurants ORDER BY created_at`)
}

func (r *postgresRestaurantRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Restaurant, error) {
	return r.query(ctx, `SELECT `+restaurantCols+` FROM restaurants WHERE user_id = $1 ORDER BY created_at`, userID)
}

func (r *postgresRestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return scanRestaurant(r.pool.QueryRow(ctx, `SELECT `+restaurantCols+` FROM restaurants WHERE id = $1`, id))
}

func (r *postgresRestaurantRepository) FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return scanRestaurant(r.pool.QueryRow(ctx, `SELECT `+restaurantCols+` FROM restaurants WHERE slug = $1`, slug))
}

func (r *postgresRestaurantRepository) Create(ctx context.Context, restaurant domain.Restaurant) (*domain.Restaurant, error) {
	const q = `
		INSERT INTO restaurants (` + restaurantCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + restaurantCols

	now := time.Now().UTC()
	restaurant.ID = uuid.NewString()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	restaurant.EnsureDefaults()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanRestaurant(r.pool.QueryRow(ctx, q, restaurantArgs(&restaurant)...))
	if isUniqueViolation(err, restaurantsSlugKey) {
		return nil, ErrSlugTaken
	}
	return created, err
}

// Update locks the row, merges the patch in Go and writes every mutable column back.
func (r *postgresRestaurantRepository) Update(ctx context.Context, id string, patch *domain.UpdateRestaurantRequest) (*domain.Restaurant, []string, error) {
	const (
		selectQ = `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = $1 FOR UPDATE`
		updateQ = `
			UPDATE restaurants SET
				slug = $3, name = $4, description = $5, address = $6, phone = $7, email = $8,
				website = $9, logo_url = $10, cover_image_url = $11,
				hours = $12, menu = $13, theme = $14, updated_at = $16
			WHERE id = $1 AND user_id = $2 AND created_at = $15
			RETURNING ` + restaurantCols
	)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := scanRestaurant(tx.QueryRow(ctx, selectQ, id))
	if err != nil {
		return nil, nil, err
	}

	changed := patch.ApplyTo(current)
	current.UpdatedAt = time.Now().UTC()

	updated, err := scanRestaurant(tx.QueryRow(ctx, updateQ, restaurantArgs(current)...))
	if isUniqueViolation(err, restaurantsSlugKey) {
		return nil, nil, ErrSlugTaken
	}
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return updated, changed, nil
}

func (r *postgresRestaurantRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// restaurantArgs follows the column order of restaurantCols.
func restaurantArgs(rest *domain.Restaurant) []any {
	return []any{
		rest.ID, rest.UserID, rest.Slug, rest.Name, rest.Description, rest.Address, rest.Phone, rest.Email,
		rest.Website, rest.LogoURL, rest.CoverImageURL, rest.Hours, rest.Menu, rest.Theme,
		rest.CreatedAt, rest.UpdatedAt,
	}
}
