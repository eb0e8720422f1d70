// Package memory is an in-process store adapter. Capacity checks and the
// writes that depend on them run under a per-event lock.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	events   map[string]*domain.Event
	bookings map[string]*domain.Booking
	profiles map[string]*domain.Profile

	eventLocks *keyedMutex
	now        func() time.Time
}

func New() *Store {
	return &Store{
		events:     make(map[string]*domain.Event),
		bookings:   make(map[string]*domain.Booking),
		profiles:   make(map[string]*domain.Profile),
		eventLocks: newKeyedMutex(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Events() *EventStore {
	return &EventStore{s: s}
}

func (s *Store) Bookings() *BookingStore {
	return &BookingStore{s: s}
}

func (s *Store) Profiles() *ProfileStore {
	return &ProfileStore{s: s}
}

// PutProfile provisions a profile row, standing in for the identity provider.
func (s *Store) PutProfile(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = &p
}

type EventStore struct {
	s *Store
}

func (r *EventStore) Create(_ context.Context, e *domain.Event) error {
	now := r.s.now()
	e.ID = uuid.New().String()
	e.Booked = 0
	e.CreatedAt = now
	e.UpdatedAt = now

	cp := *e
	r.s.mu.Lock()
	r.s.events[cp.ID] = &cp
	r.s.mu.Unlock()
	return nil
}

func (r *EventStore) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *EventStore) List(_ context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	res := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		cp := *e
		res = append(res, &cp)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *EventStore) Update(_ context.Context, id, ownerID string, in domain.UpdateEventInput) (*domain.Event, error) {
	unlock := r.s.eventLocks.Lock(id)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok || e.CreatedBy != ownerID {
		return nil, domain.ErrEventNotFoundOrUnauthorized
	}
	if in.Capacity != nil && *in.Capacity < e.Booked {
		return nil, domain.ErrCapacityExceeded
	}

	in.Apply(e)
	e.UpdatedAt = r.s.now()
	cp := *e
	return &cp, nil
}

func (r *EventStore) Delete(_ context.Context, id, ownerID string) error {
	unlock := r.s.eventLocks.Lock(id)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok || e.CreatedBy != ownerID {
		return domain.ErrEventNotFoundOrUnauthorized
	}
	if e.Booked > 0 {
		return domain.ErrEventHasActiveBookings
	}

	delete(r.s.events, id)
	for _, b := range r.s.bookings {
		if b.EventID == id {
			b.EventID = ""
		}
	}
	return nil
}

type BookingStore struct {
	s *Store
}

func (r *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Event, error) {
	unlock := r.s.eventLocks.Lock(b.EventID)
	defer unlock()

	// Check and reserve are separate critical sections; the event lock keeps
	// other writers of this event out in between.
	r.s.mu.RLock()
	e, ok := r.s.events[b.EventID]
	var snapshot domain.Event
	if ok {
		snapshot = *e
	}
	r.s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if b.Quantity < 1 || b.Quantity > snapshot.Capacity-snapshot.Booked {
		return nil, domain.ErrCapacityExceeded
	}

	now := r.s.now()
	b.ID = uuid.New().String()
	b.TotalPrice = domain.TotalPrice(snapshot.Price, b.Quantity)
	b.CreatedAt = now
	b.UpdatedAt = now
	snapshot.Booked += b.Quantity

	cp := *b
	r.s.mu.Lock()
	e.Booked = snapshot.Booked
	r.s.bookings[cp.ID] = &cp
	r.s.mu.Unlock()

	return &snapshot, nil
}

func (r *BookingStore) Cancel(_ context.Context, id, userID string, now time.Time) (*domain.Booking, bool, error) {
	r.s.mu.RLock()
	b, ok := r.s.bookings[id]
	var eventID string
	if ok {
		eventID = b.EventID
	}
	r.s.mu.RUnlock()

	if !ok || b.UserID != userID {
		return nil, false, domain.ErrBookingNotFoundOrUnauthorized
	}

	if eventID != "" {
		unlock := r.s.eventLocks.Lock(eventID)
		defer unlock()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	changed := b.Cancel(now)
	if changed {
		if e, ok := r.s.events[b.EventID]; ok {
			e.Booked = max(e.Booked-b.Quantity, 0)
		}
	}
	cp := *b
	return &cp, changed, nil
}

func (r *BookingStore) ListByUser(_ context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	r.s.mu.RLock()
	res := make([]*domain.BookingWithEvent, 0)
	for _, b := range r.s.bookings {
		if b.UserID != userID {
			continue
		}
		item := &domain.BookingWithEvent{Booking: *b}
		if e, ok := r.s.events[b.EventID]; ok {
			ev := *e
			item.Event = &ev
		}
		res = append(res, item)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *BookingStore) ReconcileCapacity(_ context.Context) ([]domain.CapacityDrift, error) {
	r.s.mu.RLock()
	ids := make([]string, 0, len(r.s.events))
	for id := range r.s.events {
		ids = append(ids, id)
	}
	r.s.mu.RUnlock()
	sort.Strings(ids)

	var drifts []domain.CapacityDrift
	for _, id := range ids {
		if d, fixed := r.reconcileEvent(id); fixed {
			drifts = append(drifts, d)
		}
	}
	return drifts, nil
}

func (r *BookingStore) reconcileEvent(id string) (domain.CapacityDrift, bool) {
	unlock := r.s.eventLocks.Lock(id)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return domain.CapacityDrift{}, false
	}
	actual := 0
	for _, b := range r.s.bookings {
		if b.EventID == id && b.Active() {
			actual += b.Quantity
		}
	}
	if actual == e.Booked {
		return domain.CapacityDrift{}, false
	}

	d := domain.CapacityDrift{EventID: id, Recorded: e.Booked, Actual: actual}
	e.Booked = actual
	return d, true
}

type ProfileStore struct {
	s *Store
}

func (r *ProfileStore) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProfileStore) Update(_ context.Context, id string, in domain.UpdateProfileInput, now time.Time) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	p.UpdatedAt = now
	cp := *p
	return &cp, nil
}
