package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type EventService struct {
	repo   ports.EventRepo
	logger logger.Logger
}

func NewEventService(repo ports.EventRepo, logger logger.Logger) *EventService {
	return &EventService{
		repo:   repo,
		logger: logger,
	}
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, callerID string, input domain.CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "title", Rule: "required", Message: "title is required"})
	}
	if input.Capacity > domain.MaxSpots {
		return nil, capacityTooLarge()
	}

	event := &domain.Event{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date.UTC(),
		Capacity:    input.Capacity,
		Price:       input.Price,
		CreatedBy:   callerID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		logger.String("event_id", event.ID),
		logger.String("created_by", callerID),
		logger.Int("capacity", event.Capacity),
	)

	return event, nil
}

func (s *EventService) Update(ctx context.Context, callerID, id string, input domain.UpdateEventInput) (*domain.Event, error) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.NewValidationError(domain.FieldError{Field: "title", Rule: "required", Message: "title is required"})
		}
		input.Title = &title
	}
	if input.Capacity != nil && *input.Capacity > domain.MaxSpots {
		return nil, capacityTooLarge()
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		input.Description = &desc
	}
	if input.Date != nil {
		date := input.Date.UTC()
		input.Date = &date
	}

	event, err := s.repo.Update(ctx, id, callerID, input)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event updated",
		logger.String("event_id", id),
		logger.String("created_by", callerID),
	)

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted",
		logger.String("event_id", id),
		logger.String("created_by", callerID),
	)

	return nil
}

func capacityTooLarge() error {
	return domain.NewValidationError(domain.FieldError{Field: "capacity", Rule: "max", Message: "capacity must be at most 2147483647"})
}
