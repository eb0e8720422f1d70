package service

import (
	"context"
	"fmt"

	"github.com/codewithrabha/eventbooking/internal/clock"
	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type BookingService struct {
	bookingRepo ports.BookingRepo
	cache       ports.EventCacheInvalidator
	notifier    ports.BookingNotifier
	clock       clock.Clock
	logger      logger.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepo,
	cache ports.EventCacheInvalidator,
	notifier ports.BookingNotifier,
	clock clock.Clock,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		cache:       cache,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

func (s *BookingService) ListByUser(ctx context.Context, callerID string) ([]*domain.BookingWithEvent, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) Create(ctx context.Context, callerID, eventID string, quantity int) (*domain.Booking, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError(domain.FieldError{Field: "quantity", Rule: "min", Message: "quantity must be at least 1"})
	}
	if quantity > domain.MaxSpots {
		return nil, domain.NewValidationError(domain.FieldError{Field: "quantity", Rule: "max", Message: "quantity must be at most 2147483647"})
	}

	now := s.clock.Now()
	booking := &domain.Booking{
		EventID:   eventID,
		UserID:    callerID,
		Quantity:  quantity,
		Status:    domain.BookingStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// резерв мест, расчёт суммы по цене события и вставка брони выполняются
	// одной операцией хранилища
	event, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.cache.Invalidate(ctx, eventID)

	remaining := event.AvailableSpots()

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.String("event_id", eventID),
		logger.String("user_id", callerID),
		logger.Int("quantity", quantity),
		logger.Int("remaining", remaining),
	)

	go s.notifyCreated(context.WithoutCancel(ctx), booking, event, remaining)

	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, callerID, id string) (*domain.Booking, error) {
	booking, changed, err := s.bookingRepo.Cancel(ctx, id, callerID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if !changed {
		s.logger.Debug("booking already cancelled",
			logger.String("booking_id", id),
			logger.String("user_id", callerID),
		)
		return booking, nil
	}

	if booking.EventID != "" {
		s.cache.Invalidate(ctx, booking.EventID)
	}

	s.logger.Info("booking cancelled",
		logger.String("booking_id", booking.ID),
		logger.String("event_id", booking.EventID),
		logger.String("user_id", callerID),
	)

	go s.notifier.NotifyBookingCancelled(context.WithoutCancel(ctx), booking)

	return booking, nil
}

// ReconcileCapacity repairs events whose booked counter drifted from their
// active bookings.
func (s *BookingService) ReconcileCapacity(ctx context.Context) ([]domain.CapacityDrift, error) {
	drifts, err := s.bookingRepo.ReconcileCapacity(ctx)
	if err != nil {
		return drifts, fmt.Errorf("reconcile capacity: %w", err)
	}

	for _, d := range drifts {
		s.cache.Invalidate(ctx, d.EventID)
	}

	return drifts, nil
}

func (s *BookingService) notifyCreated(ctx context.Context, booking *domain.Booking, event *domain.Event, remaining int) {
	s.notifier.NotifyBookingCreated(ctx, booking, event)
	if remaining == 0 {
		s.notifier.NotifyEventSoldOut(ctx, event)
	}
}
