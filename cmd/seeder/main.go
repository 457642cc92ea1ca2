// Command seeder creates a caregiver account. Babylog has no
// self-registration: accounts are provisioned offline with this tool.
//
// Flags:
//
//	--email     caregiver email (required)
//	--name      display name (required)
//	--password  plaintext password to hash (required)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/babylog/babylog-backend/internal/adapter/postgres"
	"github.com/babylog/babylog-backend/internal/adapter/postgres/caregiver"
	"github.com/babylog/babylog-backend/internal/app"
	"github.com/babylog/babylog-backend/internal/config"
	"github.com/babylog/babylog-backend/internal/domain"
)

func main() {
	emailFlag := flag.String("email", "", "caregiver email")
	nameFlag := flag.String("name", "", "display name")
	passwordFlag := flag.String("password", "", "plaintext password to hash")
	flag.Parse()

	email := strings.ToLower(strings.TrimSpace(*emailFlag))
	if email == "" || *nameFlag == "" || *passwordFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*passwordFlag), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := caregiver.New(pool)
	created, err := repo.Create(ctx, &domain.Caregiver{
		ID:           uuid.New(),
		Email:        email,
		Name:         *nameFlag,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Error("caregiver already exists", slog.String("email", email))
		} else {
			logger.Error("create caregiver", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	logger.Info("caregiver created",
		slog.String("caregiver_id", created.ID.String()),
		slog.String("email", created.Email),
	)
}
