package sleep

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	GetOpenSleepForUpdateFunc       func(ctx context.Context, caregiverID uuid.UUID) (*domain.Event, error)
	CreateFunc                      func(ctx context.Context, event *domain.Event) (*domain.Event, error)
	CloseSleepFunc                  func(ctx context.Context, caregiverID, eventID uuid.UUID, end time.Time, minutes int) (*domain.Event, error)
	ListClosedSleepIntersectingFunc func(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) ([]*domain.Event, error)

	calls struct {
		GetOpenSleepForUpdate []struct {
			CaregiverID uuid.UUID
		}
		Create []struct {
			Event *domain.Event
		}
		CloseSleep []struct {
			CaregiverID uuid.UUID
			EventID     uuid.UUID
			End         time.Time
			Minutes     int
		}
		ListClosedSleepIntersecting []struct {
			CaregiverID uuid.UUID
			From        time.Time
			To          time.Time
		}
	}
	lockGetOpenSleepForUpdate       sync.RWMutex
	lockCreate                      sync.RWMutex
	lockCloseSleep                  sync.RWMutex
	lockListClosedSleepIntersecting sync.RWMutex
}

func (mock *eventRepoMock) GetOpenSleepForUpdate(ctx context.Context, caregiverID uuid.UUID) (*domain.Event, error) {
	if mock.GetOpenSleepForUpdateFunc == nil {
		panic("eventRepoMock.GetOpenSleepForUpdateFunc: method is nil but eventRepo.GetOpenSleepForUpdate was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
	}{CaregiverID: caregiverID}
	mock.lockGetOpenSleepForUpdate.Lock()
	mock.calls.GetOpenSleepForUpdate = append(mock.calls.GetOpenSleepForUpdate, callInfo)
	mock.lockGetOpenSleepForUpdate.Unlock()
	return mock.GetOpenSleepForUpdateFunc(ctx, caregiverID)
}

func (mock *eventRepoMock) GetOpenSleepForUpdateCalls() []struct {
	CaregiverID uuid.UUID
} {
	mock.lockGetOpenSleepForUpdate.RLock()
	calls := mock.calls.GetOpenSleepForUpdate
	mock.lockGetOpenSleepForUpdate.RUnlock()
	return calls
}

func (mock *eventRepoMock) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if mock.CreateFunc == nil {
		panic("eventRepoMock.CreateFunc: method is nil but eventRepo.Create was just called")
	}
	callInfo := struct {
		Event *domain.Event
	}{Event: event}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, event)
}

func (mock *eventRepoMock) CreateCalls() []struct {
	Event *domain.Event
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *eventRepoMock) CloseSleep(ctx context.Context, caregiverID, eventID uuid.UUID, end time.Time, minutes int) (*domain.Event, error) {
	if mock.CloseSleepFunc == nil {
		panic("eventRepoMock.CloseSleepFunc: method is nil but eventRepo.CloseSleep was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		EventID     uuid.UUID
		End         time.Time
		Minutes     int
	}{CaregiverID: caregiverID, EventID: eventID, End: end, Minutes: minutes}
	mock.lockCloseSleep.Lock()
	mock.calls.CloseSleep = append(mock.calls.CloseSleep, callInfo)
	mock.lockCloseSleep.Unlock()
	return mock.CloseSleepFunc(ctx, caregiverID, eventID, end, minutes)
}

func (mock *eventRepoMock) CloseSleepCalls() []struct {
	CaregiverID uuid.UUID
	EventID     uuid.UUID
	End         time.Time
	Minutes     int
} {
	mock.lockCloseSleep.RLock()
	calls := mock.calls.CloseSleep
	mock.lockCloseSleep.RUnlock()
	return calls
}

func (mock *eventRepoMock) ListClosedSleepIntersecting(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) ([]*domain.Event, error) {
	if mock.ListClosedSleepIntersectingFunc == nil {
		panic("eventRepoMock.ListClosedSleepIntersectingFunc: method is nil but eventRepo.ListClosedSleepIntersecting was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		From        time.Time
		To          time.Time
	}{CaregiverID: caregiverID, From: from, To: to}
	mock.lockListClosedSleepIntersecting.Lock()
	mock.calls.ListClosedSleepIntersecting = append(mock.calls.ListClosedSleepIntersecting, callInfo)
	mock.lockListClosedSleepIntersecting.Unlock()
	return mock.ListClosedSleepIntersectingFunc(ctx, caregiverID, from, to)
}

func (mock *eventRepoMock) ListClosedSleepIntersectingCalls() []struct {
	CaregiverID uuid.UUID
	From        time.Time
	To          time.Time
} {
	mock.lockListClosedSleepIntersecting.RLock()
	calls := mock.calls.ListClosedSleepIntersecting
	mock.lockListClosedSleepIntersecting.RUnlock()
	return calls
}
