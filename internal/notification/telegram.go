package notification

import (
	"context"
	"fmt"

	"github.com/codewithrabha/eventbooking/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"
)

const dateLayout = "02.01.2006 15:04"

// TelegramNotifier posts booking activity to an operator chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		logger.Warn("telegram bot token or chat id is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, event *domain.Event) {
	text := fmt.Sprintf(
		"*New booking*\n\n"+"Event: %s\n"+"Date (UTC): %s\n"+"Quantity: %d\n"+"Total: %s",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, event.Title),
		event.Date.UTC().Format(dateLayout),
		booking.Quantity,
		booking.TotalPrice.StringFixed(2),
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking) {
	text := fmt.Sprintf(
		"*Booking cancelled*\n\n"+"Booking: `%s`\n"+"Released spots: %d",
		booking.ID, booking.Quantity,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) NotifyEventSoldOut(ctx context.Context, event *domain.Event) {
	text := fmt.Sprintf(
		"*Sold out!*\n\n"+"Event: %s\n"+"Date (UTC): %s\n"+"Capacity: %d",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, event.Title),
		event.Date.UTC().Format(dateLayout),
		event.Capacity,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", n.chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
