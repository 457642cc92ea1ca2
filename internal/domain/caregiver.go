package domain

import (
	"time"

	"github.com/google/uuid"
)

// Caregiver is a member of the closed set of people allowed to log events.
type Caregiver struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
