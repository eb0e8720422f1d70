package notification

import (
	"context"
	"testing"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func TestTelegramNotifier_DisabledWithoutToken(t *testing.T) {
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)

	n, err := NewTelegramNotifier("", 0, log)
	require.NoError(t, err)
	assert.Nil(t, n.bot)

	event := &domain.Event{ID: "e1", Title: "Test", Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Capacity: 1}
	booking := &domain.Booking{ID: "b1", Quantity: 1, TotalPrice: decimal.NewFromInt(20)}

	assert.NotPanics(t, func() {
		n.NotifyBookingCreated(context.Background(), booking, event)
		n.NotifyBookingCancelled(context.Background(), booking)
		n.NotifyEventSoldOut(context.Background(), event)
	})
}
