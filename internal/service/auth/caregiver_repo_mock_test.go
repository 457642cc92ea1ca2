package auth

import (
	"context"
	"sync"

	"github.com/babylog/babylog-backend/internal/domain"
)

var _ caregiverRepo = &caregiverRepoMock{}

type caregiverRepoMock struct {
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Caregiver, error)

	calls struct {
		GetByEmail []struct {
			Email string
		}
	}
	lockGetByEmail sync.RWMutex
}

func (mock *caregiverRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Caregiver, error) {
	if mock.GetByEmailFunc == nil {
		panic("caregiverRepoMock.GetByEmailFunc: method is nil but caregiverRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Email string
	}{Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *caregiverRepoMock) GetByEmailCalls() []struct {
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}
