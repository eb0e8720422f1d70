package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/codewithrabha/eventbooking/internal/auth"
	"github.com/codewithrabha/eventbooking/internal/clock"
	"github.com/codewithrabha/eventbooking/internal/handler/dto"
	"github.com/codewithrabha/eventbooking/internal/middleware"
	"github.com/codewithrabha/eventbooking/internal/notification"
	"github.com/codewithrabha/eventbooking/internal/repository"
	"github.com/codewithrabha/eventbooking/internal/repository/memory"
	"github.com/codewithrabha/eventbooking/internal/router"
	"github.com/codewithrabha/eventbooking/internal/service"
	"github.com/codewithrabha/eventbooking/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

// setupStack wires the real services over the in-memory store.
func setupStack(t *testing.T) testEnv {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)

	verifier, err := auth.New(auth.Options{Mode: auth.ModeHS256, Secret: testSecret})
	require.NoError(t, err)

	notifier, err := notification.NewTelegramNotifier("", 0, log)
	require.NoError(t, err)

	store := memory.New()
	events := repository.NewEventCache(store.Events(), nil, 0)
	clk := clock.NewSystem()

	h := NewHandler(
		service.NewEventService(events, log),
		service.NewBookingService(store.Bookings(), events, notifier, clk, log),
		service.NewProfileService(store.Profiles(), clk),
		validation.New(),
		log,
	)
	return testEnv{
		router: router.InitRouter("test", h,
			middleware.RequireAuth(verifier, log),
			middleware.RequestID(),
			middleware.Recovery(log),
		),
	}
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestFlow_LastSeatAndOwnership(t *testing.T) {
	env := setupStack(t)
	userA, userB, userC := bearer(t, "user-a"), bearer(t, "user-b"), bearer(t, "user-c")

	w := doRequest(env, http.MethodPost, "/api/events", userA,
		`{"title":"Launch","date":"2030-01-01T00:00:00Z","capacity":1,"price":20}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[dto.EventResponse](t, w.Body.Bytes())
	assert.Equal(t, "user-a", event.CreatedBy)
	assert.Equal(t, 1, event.AvailableSpots)

	w = doRequest(env, http.MethodPost, "/api/bookings", userB,
		`{"event_id":"`+event.ID+`","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[dto.BookingResponse](t, w.Body.Bytes())
	assert.Equal(t, 20.0, booking.TotalPrice)
	assert.Equal(t, "active", booking.Status)

	w = doRequest(env, http.MethodPost, "/api/bookings", userC,
		`{"event_id":"`+event.ID+`","quantity":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"capacity exceeded"}`, w.Body.String())

	w = doRequest(env, http.MethodPut, "/api/events/"+event.ID, userC, `{"title":"Hijacked","price":0}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(env, http.MethodDelete, "/api/events/"+event.ID, userC, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(env, http.MethodGet, "/api/events/"+event.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.EventResponse](t, w.Body.Bytes())
	assert.Equal(t, "Launch", got.Title)
	assert.Equal(t, 20.0, got.Price)
	assert.Equal(t, 0, got.AvailableSpots)

	w = doRequest(env, http.MethodGet, "/api/bookings", userB, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.BookingWithEventResponse](t, w.Body.Bytes())
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Event)
	assert.Equal(t, event.ID, list[0].Event.ID)

	w = doRequest(env, http.MethodGet, "/api/bookings", userC, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFlow_CancelFreesSeatOnce(t *testing.T) {
	env := setupStack(t)
	userA, userB, userC := bearer(t, "user-a"), bearer(t, "user-b"), bearer(t, "user-c")

	w := doRequest(env, http.MethodPost, "/api/events", userA,
		`{"title":"Launch","date":"2030-01-01T00:00:00Z","capacity":1,"price":"12.50"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[dto.EventResponse](t, w.Body.Bytes())

	w = doRequest(env, http.MethodPost, "/api/bookings", userB, `{"event_id":"`+event.ID+`","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[dto.BookingResponse](t, w.Body.Bytes())

	w = doRequest(env, http.MethodDelete, "/api/events/"+event.ID, userA, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(env, http.MethodPut, "/api/bookings/"+booking.ID+"/cancel", userC, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	for range 2 {
		w = doRequest(env, http.MethodPut, "/api/bookings/"+booking.ID+"/cancel", userB, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "cancelled", decode[dto.BookingResponse](t, w.Body.Bytes()).Status)
	}

	w = doRequest(env, http.MethodGet, "/api/events/"+event.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.EventResponse](t, w.Body.Bytes()).AvailableSpots)

	w = doRequest(env, http.MethodPost, "/api/bookings", userC,
		`{"event_id":"`+event.ID+`","quantity":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(env, http.MethodPost, "/api/bookings", userC, `{"event_id":"`+event.ID+`","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 12.5, decode[dto.BookingResponse](t, w.Body.Bytes()).TotalPrice)

	w = doRequest(env, http.MethodGet, "/api/events/"+event.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[dto.EventResponse](t, w.Body.Bytes()).AvailableSpots)
}

func TestFlow_ProfileMissingInMemoryStore(t *testing.T) {
	env := setupStack(t)

	w := doRequest(env, http.MethodGet, "/api/profiles/me", bearer(t, "user-a"), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
