package ports

import (
	"context"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
)

type ProfileRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, id string, in domain.UpdateProfileInput, now time.Time) (*domain.Profile, error)
}
