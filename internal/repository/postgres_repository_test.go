package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/menupage/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	slugDup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: restaurantsSlugKey}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"matching constraint", slugDup, restaurantsSlugKey, true},
		{"wrapped", fmt.Errorf("insert: %w", slugDup), restaurantsSlugKey, true},
		{"other constraint", slugDup, accountsEmailKey, false},
		{"other code", &pgconn.PgError{Code: "23503", ConstraintName: restaurantsSlugKey}, restaurantsSlugKey, false},
		{"not a postgres error", errors.New("duplicate key"), restaurantsSlugKey, false},
		{"nil", nil, restaurantsSlugKey, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err, tt.constraint))
		})
	}
}

// newTestPool connects to DATABASE_URL. The tests use fresh ids, emails and slugs so they
// can share a database with other runs.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

func TestPostgresAccountRepository(t *testing.T) {
	repo := NewPostgresAccountRepository(newTestPool(t))
	ctx := context.Background()
	email := "owner-" + uniqueSuffix() + "@x.com"

	created, err := repo.Create(ctx, domain.Account{Email: email, Password: "hash", Name: "Owner"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, found.Email)
	assert.Equal(t, "hash", found.Password)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	byEmail, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.Create(ctx, domain.Account{Email: email, Password: "other", Name: "Twin"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByEmail(ctx, email)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRestaurantRepository(t *testing.T) {
	repo := NewPostgresRestaurantRepository(newTestPool(t))
	ctx := context.Background()
	owner := uuid.NewString()
	slug := "joes-" + uniqueSuffix()

	record := newRestaurant(owner, slug)
	record.Menu = []domain.MenuItem{{ID: "m1", Name: "Soup", Price: 4.5, Category: "Starters"}}
	record.Hours = map[string]domain.DayHours{"monday": {Open: "09:00", Close: "17:00"}}

	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, slug, found.Slug)
	assert.Equal(t, owner, found.UserID)
	assert.Equal(t, record.Menu, found.Menu)
	assert.Equal(t, record.Hours, found.Hours)
	assert.Equal(t, domain.DefaultTheme(), found.Theme)

	bySlug, err := repo.FindBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	mine, err := repo.ListByUserID(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	_, err = repo.Create(ctx, newRestaurant(uuid.NewString(), slug))
	assert.ErrorIs(t, err, ErrSlugTaken)

	other, err := repo.Create(ctx, newRestaurant(owner, "other-"+uniqueSuffix()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), other.ID) })

	taken := slug
	_, _, err = repo.Update(ctx, other.ID, &domain.UpdateRestaurantRequest{Slug: &taken})
	assert.ErrorIs(t, err, ErrSlugTaken)

	name := "Joe's Place"
	updated, changed, err := repo.Update(ctx, created.ID, &domain.UpdateRestaurantRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, changed)
	assert.Equal(t, "Joe's Place", updated.Name)
	assert.Equal(t, slug, updated.Slug)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, _, err = repo.Update(ctx, uuid.NewString(), &domain.UpdateRestaurantRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindBySlug(ctx, slug)
	assert.ErrorIs(t, err, ErrNotFound)
}
