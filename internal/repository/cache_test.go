package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/service/ports/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*EventCache, *mocks.MockEventRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	base := mocks.NewMockEventRepo(t)
	return NewEventCache(base, client, time.Minute), base, mr
}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:        "e1",
		Title:     "Test",
		Date:      time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Capacity:  10,
		Price:     decimal.RequireFromString("20.50"),
		CreatedBy: "owner",
		Booked:    2,
	}
}

func TestEventCache_GetByID_ReadThrough(t *testing.T) {
	cache, base, mr := newTestCache(t)
	ctx := context.Background()

	base.EXPECT().GetByID(mock.Anything, "e1").Return(testEvent(), nil).Once()

	first, err := cache.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("event:e1"))

	second, err := cache.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.True(t, first.Price.Equal(second.Price))
	assert.Equal(t, 2, second.Booked)
}

func TestEventCache_Invalidate(t *testing.T) {
	cache, base, mr := newTestCache(t)
	ctx := context.Background()

	base.EXPECT().GetByID(mock.Anything, "e1").Return(testEvent(), nil).Twice()

	_, err := cache.GetByID(ctx, "e1")
	require.NoError(t, err)

	cache.Invalidate(ctx, "e1")
	assert.False(t, mr.Exists("event:e1"))

	_, err = cache.GetByID(ctx, "e1")
	require.NoError(t, err)
}

func TestEventCache_WritesEvictList(t *testing.T) {
	cache, base, mr := newTestCache(t)
	ctx := context.Background()

	base.EXPECT().List(mock.Anything).Return([]*domain.Event{testEvent()}, nil).Once()
	_, err := cache.List(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(eventListCacheKey))

	base.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, cache.Create(ctx, &domain.Event{Title: "New"}))
	assert.False(t, mr.Exists(eventListCacheKey))
}

func TestEventCache_ErrorsNotCached(t *testing.T) {
	cache, base, mr := newTestCache(t)
	ctx := context.Background()

	base.EXPECT().GetByID(mock.Anything, "missing").Return(nil, domain.ErrEventNotFound)

	_, err := cache.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.False(t, mr.Exists("event:missing"))
}

func TestEventCache_NilClientPassesThrough(t *testing.T) {
	base := mocks.NewMockEventRepo(t)
	cache := NewEventCache(base, nil, time.Minute)

	base.EXPECT().GetByID(mock.Anything, "e1").Return(testEvent(), nil).Twice()

	for i := 0; i < 2; i++ {
		_, err := cache.GetByID(context.Background(), "e1")
		require.NoError(t, err)
	}
	cache.Invalidate(context.Background(), "e1")
}
