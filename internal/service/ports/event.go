package ports

import (
	"context"

	"github.com/codewithrabha/eventbooking/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	// Update and Delete match on id AND created_by in one write.
	Update(ctx context.Context, id, ownerID string, in domain.UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// EventCacheInvalidator drops cached reads of an event after its booked
// counter changed outside the event repository.
type EventCacheInvalidator interface {
	Invalidate(ctx context.Context, eventID string)
}
