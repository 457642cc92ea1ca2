package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
)

// caregiverRepo defines the caregiver repository interface needed by auth service.
type caregiverRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Caregiver, error)
}

// jwtManager defines the token management interface needed by auth service.
type jwtManager interface {
	GenerateToken(caregiverID uuid.UUID) (string, error)
	ValidateToken(token string) (uuid.UUID, error)
}

// Service implements auth operations.
type Service struct {
	log        *slog.Logger
	caregivers caregiverRepo
	jwt        jwtManager
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, caregivers caregiverRepo, jwt jwtManager) *Service {
	return &Service{
		log:        logger.With("service", "auth"),
		caregivers: caregivers,
		jwt:        jwt,
	}
}

// ValidateToken checks an access token and returns the caregiver ID it
// belongs to. Any failure maps to ErrUnauthorized.
func (s *Service) ValidateToken(token string) (uuid.UUID, error) {
	caregiverID, err := s.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return caregiverID, nil
}
