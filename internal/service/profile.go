package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codewithrabha/eventbooking/internal/clock"
	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/service/ports"
)

type ProfileService struct {
	repo  ports.ProfileRepo
	clock clock.Clock
}

func NewProfileService(repo ports.ProfileRepo, clock clock.Clock) *ProfileService {
	return &ProfileService{
		repo:  repo,
		clock: clock,
	}
}

func (s *ProfileService) Get(ctx context.Context, callerID string) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, callerID)
}

func (s *ProfileService) Update(ctx context.Context, callerID string, input domain.UpdateProfileInput) (*domain.Profile, error) {
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		input.FullName = &name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		input.Phone = &phone
	}

	profile, err := s.repo.Update(ctx, callerID, input, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
