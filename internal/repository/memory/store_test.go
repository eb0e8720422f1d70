package memory

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, s *Store, owner string, capacity int) *domain.Event {
	t.Helper()
	e := &domain.Event{
		Title:     "Conf",
		Date:      time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		Capacity:  capacity,
		Price:     decimal.RequireFromString("25.50"),
		CreatedBy: owner,
	}
	require.NoError(t, s.Events().Create(context.Background(), e))
	return e
}

func TestBookingStore_Create_ConcurrentLastSeat(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 1)

	const workers = 50
	var (
		wg       sync.WaitGroup
		ok       atomic.Int32
		rejected atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Bookings().Create(context.Background(), &domain.Booking{
				EventID:  e.ID,
				UserID:   "u",
				Quantity: 1,
				Status:   domain.BookingStatusActive,
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrCapacityExceeded):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), rejected.Load())

	got, err := s.Events().GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Booked)
	assert.Zero(t, s.eventLocks.size())
}

func TestBookingStore_Create_ConcurrentSumNeverExceedsCapacity(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 10)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_, _ = s.Bookings().Create(context.Background(), &domain.Booking{
				EventID:  e.ID,
				UserID:   "u",
				Quantity: q,
				Status:   domain.BookingStatusActive,
			})
		}(i%3 + 1)
	}
	wg.Wait()

	list, err := s.Bookings().ListByUser(context.Background(), "u")
	require.NoError(t, err)
	total := 0
	for _, b := range list {
		total += b.Quantity
	}
	got, err := s.Events().GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, total, 10)
	assert.Equal(t, total, got.Booked)
}

func TestBookingStore_Create_Remaining(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 5)

	b := &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 3}
	reserved, err := s.Bookings().Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, 3, reserved.Booked)
	assert.Equal(t, 2, reserved.AvailableSpots())
	assert.True(t, decimal.RequireFromString("76.50").Equal(b.TotalPrice))

	_, err = s.Bookings().Create(context.Background(), &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	_, err = s.Bookings().Create(context.Background(), &domain.Booking{EventID: "missing", UserID: "u", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestBookingStore_Create_HugeQuantityRejected(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 10)
	ctx := context.Background()

	_, err := s.Bookings().Create(ctx, &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 1})
	require.NoError(t, err)

	for _, q := range []int{math.MaxInt, math.MaxInt - 1, 10, 0, -1} {
		_, err = s.Bookings().Create(ctx, &domain.Booking{EventID: e.ID, UserID: "u", Quantity: q})
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded, "quantity %d", q)
	}

	got, err := s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Booked)

	_, err = s.Bookings().Create(ctx, &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 9})
	require.NoError(t, err)
	_, err = s.Bookings().Create(ctx, &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestBookingStore_Create_PricesFromCurrentEvent(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 10)
	ctx := context.Background()

	price := decimal.RequireFromString("50.00")
	_, err := s.Events().Update(ctx, e.ID, "owner", domain.UpdateEventInput{Price: &price})
	require.NoError(t, err)

	b := &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 2, TotalPrice: decimal.NewFromInt(1)}
	_, err = s.Bookings().Create(ctx, b)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(b.TotalPrice))
}

func TestBookingStore_Cancel_Idempotent(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 4)
	ctx := context.Background()

	b := &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 2, Status: domain.BookingStatusActive}
	_, err := s.Bookings().Create(ctx, b)
	require.NoError(t, err)

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	first, changed, err := s.Bookings().Cancel(ctx, b.ID, "u", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.BookingStatusCancelled, first.Status)

	second, changed, err := s.Bookings().Cancel(ctx, b.ID, "u", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.BookingStatusCancelled, second.Status)
	assert.Equal(t, now, second.UpdatedAt)

	got, err := s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Booked)
}

func TestBookingStore_Cancel_OtherUser(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 4)
	ctx := context.Background()

	b := &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 1, Status: domain.BookingStatusActive}
	_, err := s.Bookings().Create(ctx, b)
	require.NoError(t, err)

	_, _, err = s.Bookings().Cancel(ctx, b.ID, "intruder", time.Now())
	assert.ErrorIs(t, err, domain.ErrBookingNotFoundOrUnauthorized)

	_, _, err = s.Bookings().Cancel(ctx, "missing", "u", time.Now())
	assert.ErrorIs(t, err, domain.ErrBookingNotFoundOrUnauthorized)
}

func TestEventStore_UpdateDelete_Ownership(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 4)
	ctx := context.Background()
	title := "Renamed"

	_, err := s.Events().Update(ctx, e.ID, "someone", domain.UpdateEventInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrEventNotFoundOrUnauthorized)

	updated, err := s.Events().Update(ctx, e.ID, "owner", domain.UpdateEventInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 4, updated.Capacity)

	assert.ErrorIs(t, s.Events().Delete(ctx, e.ID, "someone"), domain.ErrEventNotFoundOrUnauthorized)
	require.NoError(t, s.Events().Delete(ctx, e.ID, "owner"))

	_, err = s.Events().GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventStore_CapacityGuards(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 4)
	ctx := context.Background()

	_, err := s.Bookings().Create(ctx, &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 3, Status: domain.BookingStatusActive})
	require.NoError(t, err)

	lower := 2
	_, err = s.Events().Update(ctx, e.ID, "owner", domain.UpdateEventInput{Capacity: &lower})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	assert.ErrorIs(t, s.Events().Delete(ctx, e.ID, "owner"), domain.ErrEventHasActiveBookings)
}

func TestEventStore_List_OrderedByDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	late := &domain.Event{Title: "late", Date: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC), Capacity: 1, CreatedBy: "o"}
	early := &domain.Event{Title: "early", Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Capacity: 1, CreatedBy: "o"}
	require.NoError(t, s.Events().Create(ctx, late))
	require.NoError(t, s.Events().Create(ctx, early))

	list, err := s.Events().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].Title)
	assert.Equal(t, "late", list[1].Title)
}

func TestBookingStore_ListByUser_DeletedEvent(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 2)
	ctx := context.Background()

	b := &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 1, Status: domain.BookingStatusActive}
	_, err := s.Bookings().Create(ctx, b)
	require.NoError(t, err)
	_, _, err = s.Bookings().Cancel(ctx, b.ID, "u", time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Events().Delete(ctx, e.ID, "owner"))

	list, err := s.Bookings().ListByUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Event)
	assert.Empty(t, list[0].EventID)
}

func TestBookingStore_ReconcileCapacity(t *testing.T) {
	s := New()
	e := seedEvent(t, s, "owner", 5)
	ctx := context.Background()

	_, err := s.Bookings().Create(ctx, &domain.Booking{EventID: e.ID, UserID: "u", Quantity: 2, Status: domain.BookingStatusActive})
	require.NoError(t, err)

	s.mu.Lock()
	s.events[e.ID].Booked = 4
	s.mu.Unlock()

	drifts, err := s.Bookings().ReconcileCapacity(ctx)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, domain.CapacityDrift{EventID: e.ID, Recorded: 4, Actual: 2}, drifts[0])

	drifts, err = s.Bookings().ReconcileCapacity(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestProfileStore(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.PutProfile(domain.Profile{ID: "u", FullName: "Ada"})

	_, err := s.Profiles().GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	phone := "+100"
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := s.Profiles().Update(ctx, "u", domain.UpdateProfileInput{Phone: &phone}, now)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, "+100", p.Phone)
	assert.Equal(t, now, p.UpdatedAt)
}
