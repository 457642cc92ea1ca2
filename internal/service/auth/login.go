package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/babylog/babylog-backend/internal/domain"
)

// AuthResult is returned by the Login operation.
type AuthResult struct {
	AccessToken string
	Caregiver   *domain.Caregiver
}

// Login authenticates a caregiver with email + password.
// Returns ErrUnauthorized if the email is not found or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	caregiver, err := s.caregivers.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get caregiver: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(caregiver.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	accessToken, err := s.jwt.GenerateToken(caregiver.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	s.log.InfoContext(ctx, "caregiver logged in",
		slog.String("caregiver_id", caregiver.ID.String()))

	return &AuthResult{
		AccessToken: accessToken,
		Caregiver:   caregiver,
	}, nil
}
