package journal

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	GetByIDFunc func(ctx context.Context, caregiverID, eventID uuid.UUID) (*domain.Event, error)
	ListFunc    func(ctx context.Context, caregiverID uuid.UUID, filter domain.EventFilter) ([]*domain.Event, int, error)
	DeleteFunc  func(ctx context.Context, caregiverID, eventID uuid.UUID) error

	calls struct {
		GetByID []struct {
			CaregiverID uuid.UUID
			EventID     uuid.UUID
		}
		List []struct {
			CaregiverID uuid.UUID
			Filter      domain.EventFilter
		}
		Delete []struct {
			CaregiverID uuid.UUID
			EventID     uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockDelete  sync.RWMutex
}

func (mock *eventRepoMock) GetByID(ctx context.Context, caregiverID, eventID uuid.UUID) (*domain.Event, error) {
	if mock.GetByIDFunc == nil {
		panic("eventRepoMock.GetByIDFunc: method is nil but eventRepo.GetByID was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		EventID     uuid.UUID
	}{CaregiverID: caregiverID, EventID: eventID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, caregiverID, eventID)
}

func (mock *eventRepoMock) GetByIDCalls() []struct {
	CaregiverID uuid.UUID
	EventID     uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *eventRepoMock) List(ctx context.Context, caregiverID uuid.UUID, filter domain.EventFilter) ([]*domain.Event, int, error) {
	if mock.ListFunc == nil {
		panic("eventRepoMock.ListFunc: method is nil but eventRepo.List was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		Filter      domain.EventFilter
	}{CaregiverID: caregiverID, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, caregiverID, filter)
}

func (mock *eventRepoMock) ListCalls() []struct {
	CaregiverID uuid.UUID
	Filter      domain.EventFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *eventRepoMock) Delete(ctx context.Context, caregiverID, eventID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("eventRepoMock.DeleteFunc: method is nil but eventRepo.Delete was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		EventID     uuid.UUID
	}{CaregiverID: caregiverID, EventID: eventID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, caregiverID, eventID)
}

func (mock *eventRepoMock) DeleteCalls() []struct {
	CaregiverID uuid.UUID
	EventID     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
