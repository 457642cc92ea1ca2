package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babylog/babylog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCaregiver creates a caregiver row and returns it. The password hash is
// a placeholder; repository tests never verify passwords.
func SeedCaregiver(t *testing.T, pool *pgxpool.Pool) domain.Caregiver {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	caregiver := domain.Caregiver{
		ID:           uuid.New(),
		Email:        "caregiver-" + suffix + "@example.com",
		Name:         "Test Caregiver " + suffix,
		PasswordHash: "$2a$04$placeholderplaceholderplace",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO caregivers (id, email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		caregiver.ID, caregiver.Email, caregiver.Name, caregiver.PasswordHash, caregiver.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCaregiver insert: %v", err)
	}

	return caregiver
}
