package handler

import (
	"context"
	"net/http"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/handler/dto"
	"github.com/codewithrabha/eventbooking/internal/middleware"
	"github.com/codewithrabha/eventbooking/internal/validation"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

type EventSvc interface {
	List(ctx context.Context) ([]*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, callerID string, input domain.CreateEventInput) (*domain.Event, error)
	Update(ctx context.Context, callerID, id string, input domain.UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, callerID, id string) error
}

type BookingSvc interface {
	ListByUser(ctx context.Context, callerID string) ([]*domain.BookingWithEvent, error)
	Create(ctx context.Context, callerID, eventID string, quantity int) (*domain.Booking, error)
	Cancel(ctx context.Context, callerID, id string) (*domain.Booking, error)
}

type ProfileSvc interface {
	Get(ctx context.Context, callerID string) (*domain.Profile, error)
	Update(ctx context.Context, callerID string, input domain.UpdateProfileInput) (*domain.Profile, error)
}

type Handler struct {
	eventService   EventSvc
	bookingService BookingSvc
	profileService ProfileSvc
	validator      *validation.Validator
	logger         logger.Logger
}

func NewHandler(
	eventService EventSvc,
	bookingService BookingSvc,
	profileService ProfileSvc,
	validator *validation.Validator,
	logger logger.Logger,
) *Handler {
	return &Handler{
		eventService:   eventService,
		bookingService: bookingService,
		profileService: profileService,
		validator:      validator,
		logger:         logger,
	}
}

// bind decodes the JSON body into req and runs its validate rules. On
// failure the 400 response is already written.
func (h *Handler) bind(c *ginext.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.validationFailed(c, validation.DecodeError(err))
		return false
	}
	if fields := h.validator.Struct(req); len(fields) > 0 {
		h.validationFailed(c, fields)
		return false
	}
	return true
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Events

func (h *Handler) ListEvents(c *ginext.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEvent(c *ginext.Context) {
	id := c.Param("id")
	if !validID(id) {
		h.handleError(c, domain.ErrEventNotFound)
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) CreateEvent(c *ginext.Context) {
	var req dto.CreateEventRequest
	if !h.bind(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), middleware.CallerID(c), req.ToInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *Handler) UpdateEvent(c *ginext.Context) {
	id := c.Param("id")

	var req dto.UpdateEventRequest
	if !h.bind(c, &req) {
		return
	}

	input := req.ToInput()
	if input.Empty() {
		h.validationFailed(c, []domain.FieldError{{
			Field:   "body",
			Rule:    "required",
			Message: "at least one field must be provided",
		}})
		return
	}

	if !validID(id) {
		h.handleError(c, domain.ErrEventNotFoundOrUnauthorized)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), middleware.CallerID(c), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) DeleteEvent(c *ginext.Context) {
	id := c.Param("id")
	if !validID(id) {
		h.handleError(c, domain.ErrEventNotFoundOrUnauthorized)
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), middleware.CallerID(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Bookings

func (h *Handler) ListBookings(c *ginext.Context) {
	bookings, err := h.bookingService.ListByUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.BookingWithEventResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingWithEventResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateBooking(c *ginext.Context) {
	var req dto.CreateBookingRequest
	if !h.bind(c, &req) {
		return
	}

	if !validID(req.EventID) {
		h.handleError(c, domain.ErrEventNotFound)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), middleware.CallerID(c), req.EventID, *req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) CancelBooking(c *ginext.Context) {
	id := c.Param("id")
	if !validID(id) {
		h.handleError(c, domain.ErrBookingNotFoundOrUnauthorized)
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), middleware.CallerID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// Profiles

func (h *Handler) GetProfile(c *ginext.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

func (h *Handler) UpdateProfile(c *ginext.Context) {
	var req dto.UpdateProfileRequest
	if !h.bind(c, &req) {
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), middleware.CallerID(c), req.ToInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
