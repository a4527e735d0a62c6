package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/menupage/internal/domain"
)

type postgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &postgresAccountRepository{pool: pool}
}

const accountCols = `id, email, password_hash, name, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Password, &a.Name, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func (r *postgresAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts ORDER BY created_at`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *postgresAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanAccount(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanAccount(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresAccountRepository) Create(ctx context.Context, account domain.Account) (*domain.Account, error) {
	const q = `
		INSERT INTO accounts (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountCols
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanAccount(r.pool.QueryRow(ctx, q,
		uuid.NewString(), account.Email, account.Password, account.Name, time.Now().UTC(),
	))
	if isUniqueViolation(err, accountsEmailKey) {
		return nil, ErrEmailTaken
	}
	return created, err
}

func (r *postgresAccountRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM accounts WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
