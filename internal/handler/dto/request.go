package dto

import (
	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/validation"
	"github.com/shopspring/decimal"
)

type CreateEventRequest struct {
	Title       string           `json:"title"       validate:"required,max=200"`
	Description string           `json:"description" validate:"max=5000"`
	Date        string           `json:"date"        validate:"required,iso8601"`
	Capacity    *int             `json:"capacity"    validate:"required,min=1,max=2147483647"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0"`
}

// ToInput must be called only after the request passed validation.
func (r CreateEventRequest) ToInput() domain.CreateEventInput {
	date, _ := validation.ParseISO8601(r.Date)
	return domain.CreateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		Capacity:    *r.Capacity,
		Price:       *r.Price,
	}
}

type UpdateEventRequest struct {
	Title       *string          `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Date        *string          `json:"date"        validate:"omitempty,iso8601"`
	Capacity    *int             `json:"capacity"    validate:"omitempty,min=1,max=2147483647"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gte=0"`
}

func (r UpdateEventRequest) ToInput() domain.UpdateEventInput {
	in := domain.UpdateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Capacity:    r.Capacity,
		Price:       r.Price,
	}
	if r.Date != nil {
		date, _ := validation.ParseISO8601(*r.Date)
		in.Date = &date
	}
	return in
}

type CreateBookingRequest struct {
	EventID  string `json:"event_id" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,min=1,max=2147483647"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone"     validate:"omitempty,max=32"`
}

func (r UpdateProfileRequest) ToInput() domain.UpdateProfileInput {
	return domain.UpdateProfileInput{
		FullName: r.FullName,
		Phone:    r.Phone,
	}
}
