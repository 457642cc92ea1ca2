package stats

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
)

var _ eventReader = &eventReaderMock{}

type eventReaderMock struct {
	CountByTypeBetweenFunc     func(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (map[domain.EventType]int, error)
	SumSleepMinutesBetweenFunc func(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (int, error)
	LastByTypeFunc             func(ctx context.Context, caregiverID uuid.UUID, typ domain.EventType) (*domain.Event, error)

	calls struct {
		CountByTypeBetween []struct {
			CaregiverID uuid.UUID
			From        time.Time
			To          time.Time
		}
		SumSleepMinutesBetween []struct {
			CaregiverID uuid.UUID
			From        time.Time
			To          time.Time
		}
		LastByType []struct {
			CaregiverID uuid.UUID
			Typ         domain.EventType
		}
	}
	lockCountByTypeBetween     sync.RWMutex
	lockSumSleepMinutesBetween sync.RWMutex
	lockLastByType             sync.RWMutex
}

func (mock *eventReaderMock) CountByTypeBetween(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (map[domain.EventType]int, error) {
	if mock.CountByTypeBetweenFunc == nil {
		panic("eventReaderMock.CountByTypeBetweenFunc: method is nil but eventReader.CountByTypeBetween was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		From        time.Time
		To          time.Time
	}{CaregiverID: caregiverID, From: from, To: to}
	mock.lockCountByTypeBetween.Lock()
	mock.calls.CountByTypeBetween = append(mock.calls.CountByTypeBetween, callInfo)
	mock.lockCountByTypeBetween.Unlock()
	return mock.CountByTypeBetweenFunc(ctx, caregiverID, from, to)
}

func (mock *eventReaderMock) CountByTypeBetweenCalls() []struct {
	CaregiverID uuid.UUID
	From        time.Time
	To          time.Time
} {
	mock.lockCountByTypeBetween.RLock()
	calls := mock.calls.CountByTypeBetween
	mock.lockCountByTypeBetween.RUnlock()
	return calls
}

func (mock *eventReaderMock) SumSleepMinutesBetween(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (int, error) {
	if mock.SumSleepMinutesBetweenFunc == nil {
		panic("eventReaderMock.SumSleepMinutesBetweenFunc: method is nil but eventReader.SumSleepMinutesBetween was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		From        time.Time
		To          time.Time
	}{CaregiverID: caregiverID, From: from, To: to}
	mock.lockSumSleepMinutesBetween.Lock()
	mock.calls.SumSleepMinutesBetween = append(mock.calls.SumSleepMinutesBetween, callInfo)
	mock.lockSumSleepMinutesBetween.Unlock()
	return mock.SumSleepMinutesBetweenFunc(ctx, caregiverID, from, to)
}

func (mock *eventReaderMock) SumSleepMinutesBetweenCalls() []struct {
	CaregiverID uuid.UUID
	From        time.Time
	To          time.Time
} {
	mock.lockSumSleepMinutesBetween.RLock()
	calls := mock.calls.SumSleepMinutesBetween
	mock.lockSumSleepMinutesBetween.RUnlock()
	return calls
}

func (mock *eventReaderMock) LastByType(ctx context.Context, caregiverID uuid.UUID, typ domain.EventType) (*domain.Event, error) {
	if mock.LastByTypeFunc == nil {
		panic("eventReaderMock.LastByTypeFunc: method is nil but eventReader.LastByType was just called")
	}
	callInfo := struct {
		CaregiverID uuid.UUID
		Typ         domain.EventType
	}{CaregiverID: caregiverID, Typ: typ}
	mock.lockLastByType.Lock()
	mock.calls.LastByType = append(mock.calls.LastByType, callInfo)
	mock.lockLastByType.Unlock()
	return mock.LastByTypeFunc(ctx, caregiverID, typ)
}

func (mock *eventReaderMock) LastByTypeCalls() []struct {
	CaregiverID uuid.UUID
	Typ         domain.EventType
} {
	mock.lockLastByType.RLock()
	calls := mock.calls.LastByType
	mock.lockLastByType.RUnlock()
	return calls
}
