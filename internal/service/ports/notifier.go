package ports

import (
	"context"

	"github.com/codewithrabha/eventbooking/internal/domain"
)

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *domain.Booking, event *domain.Event)
	NotifyBookingCancelled(ctx context.Context, booking *domain.Booking)
	NotifyEventSoldOut(ctx context.Context, event *domain.Event)
}
