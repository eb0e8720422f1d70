package ports

import (
	"context"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
)

type BookingRepo interface {
	// Create reserves b.Quantity spots and inserts b as one atomic unit.
	// b.TotalPrice is taken from the price of the reserved row, and the
	// returned event reflects the reservation.
	Create(ctx context.Context, b *domain.Booking) (*domain.Event, error)
	// Cancel matches on id AND user_id and releases capacity on the first
	// call only; changed is false when the booking was already cancelled.
	Cancel(ctx context.Context, id, userID string, now time.Time) (b *domain.Booking, changed bool, err error)
	ListByUser(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error)
	ReconcileCapacity(ctx context.Context) ([]domain.CapacityDrift, error)
}
