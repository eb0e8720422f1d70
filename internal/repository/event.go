package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const eventColumns = `id, title, description, event_date, capacity, price,
		created_by, booked, created_at, updated_at`

type EventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewEventRepo(db *dbpg.DB, strategy retry.Strategy) *EventRepository {
	return &EventRepository{
		db:       db,
		strategy: strategy,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (title, description, event_date, capacity, price, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, booked, created_at, updated_at`

	err := r.db.Master.QueryRowContext(
		ctx, query,
		e.Title, e.Description, e.Date, e.Capacity, e.Price, e.CreatedBy,
	).Scan(&e.ID, &e.Booked, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	return e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  ORDER BY event_date ASC, created_at ASC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		res = append(res, e)
	}

	return res, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, id, ownerID string, in domain.UpdateEventInput) (*domain.Event, error) {
	// The capacity guard lives in the same statement as the ownership match,
	// so a concurrent booking cannot slip between check and write.
	query := `UPDATE events
			  SET title       = COALESCE($3::text, title),
			      description = COALESCE($4::text, description),
			      event_date  = COALESCE($5::timestamptz, event_date),
			      capacity    = COALESCE($6::int, capacity),
			      price       = COALESCE($7::numeric, price),
			      updated_at  = now()
			  WHERE id = $1 AND created_by = $2
			    AND COALESCE($6::int, capacity) >= booked
			  RETURNING ` + eventColumns

	row := r.db.Master.QueryRowContext(
		ctx, query, id, ownerID,
		in.Title, in.Description, in.Date, in.Capacity, in.Price,
	)
	e, err := scanEvent(row)
	if err == nil {
		return e, nil
	}
	if isInvalidID(err) {
		return nil, domain.ErrEventNotFoundOrUnauthorized
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update event: %w", err)
	}

	var booked int
	checkQuery := `SELECT booked FROM events WHERE id = $1 AND created_by = $2`
	if err = r.db.Master.QueryRowContext(ctx, checkQuery, id, ownerID).Scan(&booked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("check event owner: %w", err)
	}

	return nil, fmt.Errorf("%w: %d spots already booked", domain.ErrCapacityExceeded, booked)
}

func (r *EventRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM events
			  WHERE id = $1 AND created_by = $2
			    AND booked = 0
			    AND NOT EXISTS (
			        SELECT 1 FROM bookings WHERE event_id = $1 AND status = $3
			    )`

	res, err := r.db.Master.ExecContext(ctx, query, id, ownerID, domain.BookingStatusActive)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrEventNotFoundOrUnauthorized
		}
		return fmt.Errorf("delete event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("event rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1 AND created_by = $2)`
	if err = r.db.Master.QueryRowContext(ctx, checkQuery, id, ownerID).Scan(&exists); err != nil {
		return fmt.Errorf("check event owner: %w", err)
	}
	if !exists {
		return domain.ErrEventNotFoundOrUnauthorized
	}

	return domain.ErrEventHasActiveBookings
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Capacity, &e.Price,
		&e.CreatedBy, &e.Booked, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
