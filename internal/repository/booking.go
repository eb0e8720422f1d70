package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB, strategy retry.Strategy) *BookingRepository {
	return &BookingRepository{
		db:       db,
		strategy: strategy,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Резервируем места одним условным UPDATE: строка события блокируется,
	// и параллельные брони на то же событие выстраиваются в очередь.
	// Цена берётся из той же заблокированной строки.
	reserveQuery := `UPDATE events
					 SET booked = booked + $2
					 WHERE id = $1 AND $2 <= capacity - booked
					 RETURNING ` + eventColumns
	event, err := scanEvent(tx.QueryRowContext(ctx, reserveQuery, b.EventID, b.Quantity))
	if err != nil {
		if isInvalidID(err) {
			return nil, domain.ErrEventNotFound
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reserve capacity: %w", err)
		}

		var exists bool
		existsQuery := `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`
		if err = tx.QueryRowContext(ctx, existsQuery, b.EventID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check event: %w", err)
		}
		if !exists {
			return nil, domain.ErrEventNotFound
		}
		return nil, domain.ErrCapacityExceeded
	}

	b.TotalPrice = domain.TotalPrice(event.Price, b.Quantity)

	insertQuery := `INSERT INTO bookings (event_id, user_id, quantity, total_price, status)
					VALUES ($1, $2, $3, $4, $5)
					RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(
		ctx, insertQuery,
		b.EventID, b.UserID, b.Quantity, b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	return event, nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id, userID string, now time.Time) (*domain.Booking, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT id, event_id, user_id, quantity, total_price, status, created_at, updated_at
			  FROM bookings
			  WHERE id = $1 AND user_id = $2
			  FOR UPDATE`
	b, eventID, err := scanBooking(tx.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, false, domain.ErrBookingNotFoundOrUnauthorized
		}
		return nil, false, fmt.Errorf("get booking: %w", err)
	}

	if !b.Cancel(now) {
		return b, false, nil
	}

	if eventID.Valid {
		releaseQuery := `UPDATE events
						 SET booked = GREATEST(booked - $2, 0)
						 WHERE id = $1`
		if _, err = tx.ExecContext(ctx, releaseQuery, eventID.String, b.Quantity); err != nil {
			return nil, false, fmt.Errorf("release capacity: %w", err)
		}
	}

	updateQuery := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, updateQuery, b.ID, b.Status, b.UpdatedAt); err != nil {
		return nil, false, fmt.Errorf("cancel booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit cancel: %w", err)
	}

	return b, true, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	query := `SELECT b.id, b.event_id, b.user_id, b.quantity, b.total_price, b.status,
				     b.created_at, b.updated_at,
				     e.id, e.title, e.description, e.event_date, e.capacity, e.price,
				     e.created_by, e.booked, e.created_at, e.updated_at
			  FROM bookings b
			  LEFT JOIN events e ON e.id = b.event_id
			  WHERE b.user_id = $1
			  ORDER BY b.created_at DESC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.BookingWithEvent, 0)
	for rows.Next() {
		var (
			b       domain.BookingWithEvent
			eventID sql.NullString
			ev      nullableEvent
		)
		if err = rows.Scan(
			&b.ID, &eventID, &b.UserID, &b.Quantity, &b.TotalPrice, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
			&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Capacity, &ev.Price,
			&ev.CreatedBy, &ev.Booked, &ev.CreatedAt, &ev.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.EventID = eventID.String
		b.Event = ev.toDomain()
		res = append(res, &b)
	}

	return res, rows.Err()
}

// ReconcileCapacity recomputes the booked counter of drifted events. Each
// event is fixed in its own transaction under the event row lock, the same
// lock booking creation takes.
func (r *BookingRepository) ReconcileCapacity(ctx context.Context) ([]domain.CapacityDrift, error) {
	driftQuery := `SELECT e.id
				   FROM events e
				   LEFT JOIN bookings b ON b.event_id = e.id AND b.status = $1
				   GROUP BY e.id
				   HAVING e.booked <> COALESCE(SUM(b.quantity), 0)`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, driftQuery, domain.BookingStatusActive)
	if err != nil {
		return nil, fmt.Errorf("find drifted events: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan drifted event: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("find drifted events: %w", err)
	}
	rows.Close()

	var (
		drifts []domain.CapacityDrift
		errs   []error
	)
	for _, id := range ids {
		d, fixed, err := r.reconcileEvent(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("event %s: %w", id, err))
			continue
		}
		if fixed {
			drifts = append(drifts, d)
		}
	}

	return drifts, errors.Join(errs...)
}

func (r *BookingRepository) reconcileEvent(ctx context.Context, eventID string) (domain.CapacityDrift, bool, error) {
	d := domain.CapacityDrift{EventID: eventID}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return d, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT booked FROM events WHERE id = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, lockQuery, eventID).Scan(&d.Recorded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, false, nil
		}
		return d, false, fmt.Errorf("lock event: %w", err)
	}

	sumQuery := `SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE event_id = $1 AND status = $2`
	if err = tx.QueryRowContext(ctx, sumQuery, eventID, domain.BookingStatusActive).Scan(&d.Actual); err != nil {
		return d, false, fmt.Errorf("sum active bookings: %w", err)
	}

	if d.Recorded == d.Actual {
		return d, false, nil
	}

	if _, err = tx.ExecContext(ctx, `UPDATE events SET booked = $2 WHERE id = $1`, eventID, d.Actual); err != nil {
		if pqCode(err) == codeCheckViolation {
			return d, false, fmt.Errorf("%w: %d active against the capacity", domain.ErrCapacityExceeded, d.Actual)
		}
		return d, false, fmt.Errorf("fix booked counter: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return d, false, fmt.Errorf("commit reconcile: %w", err)
	}

	return d, true, nil
}

func scanBooking(row rowScanner) (*domain.Booking, sql.NullString, error) {
	var (
		b       domain.Booking
		eventID sql.NullString
	)
	if err := row.Scan(
		&b.ID, &eventID, &b.UserID, &b.Quantity, &b.TotalPrice, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, eventID, err
	}
	b.EventID = eventID.String
	return &b, eventID, nil
}

// nullableEvent receives the LEFT JOIN side of a booking row.
type nullableEvent struct {
	ID          sql.NullString
	Title       sql.NullString
	Description sql.NullString
	Date        sql.NullTime
	Capacity    sql.NullInt64
	Price       decimal.NullDecimal
	CreatedBy   sql.NullString
	Booked      sql.NullInt64
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

func (n nullableEvent) toDomain() *domain.Event {
	if !n.ID.Valid {
		return nil
	}
	return &domain.Event{
		ID:          n.ID.String,
		Title:       n.Title.String,
		Description: n.Description.String,
		Date:        n.Date.Time,
		Capacity:    int(n.Capacity.Int64),
		Price:       n.Price.Decimal,
		CreatedBy:   n.CreatedBy.String,
		Booked:      int(n.Booked.Int64),
		CreatedAt:   n.CreatedAt.Time,
		UpdatedAt:   n.UpdatedAt.Time,
	}
}
