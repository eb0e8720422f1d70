package dto

import (
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
)

type EventResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Date           string  `json:"date"`
	Capacity       int     `json:"capacity"`
	Price          float64 `json:"price"`
	CreatedBy      string  `json:"created_by"`
	AvailableSpots int     `json:"available_spots"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	EventID    *string `json:"event_id"`
	UserID     string  `json:"user_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type BookingWithEventResponse struct {
	BookingResponse
	Event *EventResponse `json:"event"`
}

type ProfileResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	UpdatedAt string `json:"updated_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Date:           e.Date.UTC().Format(time.RFC3339),
		Capacity:       e.Capacity,
		Price:          e.Price.InexactFloat64(),
		CreatedBy:      e.CreatedBy,
		AvailableSpots: e.AvailableSpots(),
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		Quantity:   b.Quantity,
		TotalPrice: b.TotalPrice.InexactFloat64(),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  b.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if b.EventID != "" {
		id := b.EventID
		resp.EventID = &id
	}
	return resp
}

func ToBookingWithEventResponse(b *domain.BookingWithEvent) BookingWithEventResponse {
	resp := BookingWithEventResponse{BookingResponse: ToBookingResponse(&b.Booking)}
	if b.Event != nil {
		e := ToEventResponse(b.Event)
		resp.Event = &e
	}
	return resp
}

func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
