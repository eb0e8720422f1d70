package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID         string
	EventID    string
	UserID     string
	Quantity   int
	TotalPrice decimal.Decimal
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingWithEvent is a booking joined with its event. Event is nil once the
// event has been deleted.
type BookingWithEvent struct {
	Booking
	Event *Event
}

// TotalPrice is price × quantity in exact decimal arithmetic.
func TotalPrice(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Cancel moves an active booking to cancelled and reports whether anything
// changed. Cancelling a cancelled booking is a no-op, so callers release
// capacity only when changed is true.
func (b *Booking) Cancel(now time.Time) (changed bool) {
	if b.Status == BookingStatusCancelled {
		return false
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = now
	return true
}

// Active reports whether the booking still holds capacity.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusActive
}

// CapacityDrift is a mismatch between an event's booked counter and the sum
// of its active bookings, found and repaired by ReconcileCapacity.
type CapacityDrift struct {
	EventID  string
	Recorded int
	Actual   int
}
