package service

import (
	"context"
	"testing"

	"github.com/codewithrabha/eventbooking/internal/clock"
	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Update_StampsClock(t *testing.T) {
	repo := mocks.NewMockProfileRepo(t)
	svc := NewProfileService(repo, clock.NewFixed(testNow))

	name := "  Ada Lovelace "
	repo.EXPECT().Update(mock.Anything, "u1", mock.MatchedBy(func(in domain.UpdateProfileInput) bool {
		return in.FullName != nil && *in.FullName == "Ada Lovelace" && in.Phone == nil
	}), testNow).Return(&domain.Profile{ID: "u1", FullName: "Ada Lovelace", UpdatedAt: testNow}, nil)

	p, err := svc.Update(context.Background(), "u1", domain.UpdateProfileInput{FullName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, testNow, p.UpdatedAt)
}

func TestProfileService_Get_NotFound(t *testing.T) {
	repo := mocks.NewMockProfileRepo(t)
	svc := NewProfileService(repo, clock.NewFixed(testNow))

	repo.EXPECT().GetByID(mock.Anything, "u1").Return(nil, domain.ErrProfileNotFound)

	_, err := svc.Get(context.Background(), "u1")

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
