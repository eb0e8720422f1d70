package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxSpots bounds capacity and quantity to the range of the store's integer columns.
const MaxSpots = math.MaxInt32

type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Capacity    int
	Price       decimal.Decimal
	CreatedBy   string
	Booked      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AvailableSpots never goes negative, even if capacity was lowered by hand in the store.
func (e *Event) AvailableSpots() int {
	if free := e.Capacity - e.Booked; free > 0 {
		return free
	}
	return 0
}

type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Capacity    int
	Price       decimal.Decimal
}

// UpdateEventInput carries only the fields present in the request.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Capacity    *int
	Price       *decimal.Decimal
}

func (in UpdateEventInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Date == nil &&
		in.Capacity == nil && in.Price == nil
}

// Apply copies present fields onto e.
func (in UpdateEventInput) Apply(e *Event) {
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Capacity != nil {
		e.Capacity = *in.Capacity
	}
	if in.Price != nil {
		e.Price = *in.Price
	}
}
