// Package event implements the Event repository using PostgreSQL.
// Fixed-shape lifecycle queries use raw SQL constants; listing and statistics
// queries with optional filters are built with squirrel.
package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/babylog/babylog-backend/internal/adapter/postgres"
	"github.com/babylog/babylog-backend/internal/domain"
)

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// psql builds squirrel queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const eventColumns = `id, caregiver_id, type, occurred_at, amount, note, sleep_start, sleep_end, created_at, updated_at`

const createSQL = `
INSERT INTO events (id, caregiver_id, type, occurred_at, amount, note, sleep_start, sleep_end, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING ` + eventColumns

const getByIDSQL = `
SELECT ` + eventColumns + `
FROM events
WHERE id = $1 AND caregiver_id = $2`

// getOpenSleepForUpdateSQL takes an exclusive row lock on the caregiver's
// open sleep session. The lock is held until the enclosing transaction ends,
// serializing concurrent fall-asleep/wake-up attempts for the same caregiver.
const getOpenSleepForUpdateSQL = `
SELECT ` + eventColumns + `
FROM events
WHERE caregiver_id = $1 AND type = 'SLEEP' AND sleep_start IS NOT NULL AND sleep_end IS NULL
FOR UPDATE`

// closeSleepSQL conditionally closes an open session. The sleep_end IS NULL
// guard makes the mutation a no-op when another transaction already closed
// the row; callers treat zero rows as domain.ErrNotFound.
const closeSleepSQL = `
UPDATE events
SET sleep_end = $3, amount = $4, updated_at = $5
WHERE id = $1 AND caregiver_id = $2 AND type = 'SLEEP' AND sleep_end IS NULL
RETURNING ` + eventColumns

const listClosedSleepIntersectingSQL = `
SELECT ` + eventColumns + `
FROM events
WHERE caregiver_id = $1 AND type = 'SLEEP'
  AND sleep_start IS NOT NULL AND sleep_end IS NOT NULL
  AND sleep_start < $3 AND sleep_end > $2`

const deleteSQL = `
DELETE FROM events
WHERE id = $1 AND caregiver_id = $2`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an event by primary key filtered by caregiver_id.
// Returns domain.ErrNotFound if the event does not exist or belongs to
// another caregiver.
func (r *Repo) GetByID(ctx context.Context, caregiverID, eventID uuid.UUID) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, eventID, caregiverID)

	event, err := scanEvent(row)
	if err != nil {
		return nil, mapError(err, "event", eventID)
	}

	return event, nil
}

// GetOpenSleepForUpdate returns the caregiver's open sleep session under an
// exclusive row lock, or domain.ErrNotFound if no session is open. Must be
// called inside a transaction; outside one the lock is released immediately.
func (r *Repo) GetOpenSleepForUpdate(ctx context.Context, caregiverID uuid.UUID) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getOpenSleepForUpdateSQL, caregiverID)

	event, err := scanEvent(row)
	if err != nil {
		return nil, mapError(err, "open sleep session", caregiverID)
	}

	return event, nil
}

// ListClosedSleepIntersecting returns closed sleep sessions whose
// [sleep_start, sleep_end) interval intersects [from, to).
func (r *Repo) ListClosedSleepIntersecting(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) ([]*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listClosedSleepIntersectingSQL, caregiverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list closed sleep sessions: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// List returns events matching the filter ordered by occurred_at DESC,
// plus the total count ignoring limit/offset.
func (r *Repo) List(ctx context.Context, caregiverID uuid.UUID, filter domain.EventFilter) ([]*domain.Event, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := filterConditions(caregiverID, filter)

	countSQL, countArgs, err := psql.Select("count(*)").From("events").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	listBuilder := psql.Select(eventColumns).
		From("events").
		Where(where).
		OrderBy("occurred_at DESC, created_at DESC")
	if filter.Limit > 0 {
		listBuilder = listBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		listBuilder = listBuilder.Offset(uint64(filter.Offset))
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	return events, total, nil
}

// CountByTypeBetween returns per-type event counts for occurred_at in [from, to).
func (r *Repo) CountByTypeBetween(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (map[domain.EventType]int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("type", "count(*)").
		From("events").
		Where(sq.Eq{"caregiver_id": caregiverID}).
		Where(sq.GtOrEq{"occurred_at": from}).
		Where(sq.Lt{"occurred_at": to}).
		GroupBy("type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count-by-type query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count events by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EventType]int)
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("count events by type: %w", err)
		}
		counts[domain.EventType(typ)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count events by type: %w", err)
	}

	return counts, nil
}

// SumSleepMinutesBetween returns the total minutes of closed sleep sessions
// that ended in [from, to).
func (r *Repo) SumSleepMinutesBetween(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("coalesce(sum(amount), 0)").
		From("events").
		Where(sq.Eq{"caregiver_id": caregiverID, "type": string(domain.EventTypeSleep)}).
		Where("sleep_end IS NOT NULL").
		Where(sq.GtOrEq{"sleep_end": from}).
		Where(sq.Lt{"sleep_end": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sleep-minutes query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum sleep minutes: %w", err)
	}

	return total, nil
}

// LastByType returns the most recent event of the given type.
// Returns domain.ErrNotFound if the caregiver has none.
func (r *Repo) LastByType(ctx context.Context, caregiverID uuid.UUID, typ domain.EventType) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(eventColumns).
		From("events").
		Where(sq.Eq{"caregiver_id": caregiverID, "type": string(typ)}).
		OrderBy("occurred_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last-by-type query: %w", err)
	}

	event, err := scanEvent(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "event", caregiverID)
	}

	return event, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new event and returns the persisted row. A partial unique
// index allows at most one open sleep session per caregiver; inserting a
// second one surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		event.ID,
		event.CaregiverID,
		string(event.Type),
		event.OccurredAt.UTC().Truncate(time.Microsecond),
		event.Amount,
		event.Note,
		truncatePtr(event.SleepStart),
		truncatePtr(event.SleepEnd),
		now,
	)

	created, err := scanEvent(row)
	if err != nil {
		return nil, mapError(err, "event", event.ID)
	}

	return created, nil
}

// CloseSleep sets sleep_end and amount on an open session. The row is mutated
// in place; closing never creates a second row for the same wake event.
// Returns domain.ErrNotFound if the session does not exist, belongs to
// another caregiver, or was already closed.
func (r *Repo) CloseSleep(ctx context.Context, caregiverID, eventID uuid.UUID, end time.Time, minutes int) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, closeSleepSQL,
		eventID,
		caregiverID,
		end.UTC().Truncate(time.Microsecond),
		minutes,
		now,
	)

	closed, err := scanEvent(row)
	if err != nil {
		return nil, mapError(err, "sleep session", eventID)
	}

	return closed, nil
}

// Delete removes an event. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, caregiverID, eventID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, eventID, caregiverID)
	if err != nil {
		return mapError(err, "event", eventID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// filterConditions translates an EventFilter into squirrel predicates.
func filterConditions(caregiverID uuid.UUID, filter domain.EventFilter) sq.And {
	conds := sq.And{sq.Eq{"caregiver_id": caregiverID}}

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		conds = append(conds, sq.Eq{"type": types})
	}
	if filter.From != nil {
		conds = append(conds, sq.GtOrEq{"occurred_at": *filter.From})
	}
	if filter.To != nil {
		conds = append(conds, sq.Lt{"occurred_at": *filter.To})
	}

	return conds
}

func truncatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}

// scanEvent scans a single event row from pgx.Row.
func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var typ string

	if err := row.Scan(
		&e.ID,
		&e.CaregiverID,
		&typ,
		&e.OccurredAt,
		&e.Amount,
		&e.Note,
		&e.SleepStart,
		&e.SleepEnd,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = domain.EventType(typ)
	return &e, nil
}

// scanEvents scans multiple event rows into a []*domain.Event slice.
func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	events := []*domain.Event{}
	for rows.Next() {
		var e domain.Event
		var typ string

		if err := rows.Scan(
			&e.ID,
			&e.CaregiverID,
			&typ,
			&e.OccurredAt,
			&e.Amount,
			&e.Note,
			&e.SleepStart,
			&e.SleepEnd,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}

		e.Type = domain.EventType(typ)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
