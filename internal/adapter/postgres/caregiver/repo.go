// Package caregiver implements the Caregiver repository using PostgreSQL.
package caregiver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/babylog/babylog-backend/internal/adapter/postgres"
	"github.com/babylog/babylog-backend/internal/domain"
)

// Repo provides caregiver persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new caregiver repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const caregiverColumns = `id, email, name, password_hash, created_at`

const createSQL = `
INSERT INTO caregivers (id, email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + caregiverColumns

const getByIDSQL = `
SELECT ` + caregiverColumns + `
FROM caregivers
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + caregiverColumns + `
FROM caregivers
WHERE email = $1`

// GetByID returns a caregiver by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Caregiver, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCaregiver(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, id.String())
	}

	return c, nil
}

// GetByEmail returns a caregiver by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Caregiver, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCaregiver(querier.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, mapError(err, email)
	}

	return c, nil
}

// Create inserts a new caregiver. Emails are unique; a duplicate surfaces as
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, c *domain.Caregiver) (*domain.Caregiver, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanCaregiver(querier.QueryRow(ctx, createSQL,
		c.ID,
		c.Email,
		c.Name,
		c.PasswordHash,
		now,
	))
	if err != nil {
		return nil, mapError(err, c.Email)
	}

	return created, nil
}

func scanCaregiver(row pgx.Row) (*domain.Caregiver, error) {
	var c domain.Caregiver
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func mapError(err error, ref string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("caregiver %s: %w", ref, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("caregiver %s: %w", ref, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("caregiver %s: %w", ref, domain.ErrAlreadyExists)
	}

	return fmt.Errorf("caregiver %s: %w", ref, err)
}
