// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v3"

	"iss_overhead_notifier/internal/domain/notification"
)

// messageSender is the part of *telebot.Bot the adapter uses.
type messageSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements notification.Notifier using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot    messageSender
	chatID int64
}

// NewBot creates a send-only bot. No updates are polled, so the bot is
// created offline and only talks to Telegram when a message is sent.
func NewBot(token string) (*telebot.Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return b, nil
}

func NewTelebotAdapter(b *telebot.Bot, chatID int64) *TelebotAdapter {
	return &TelebotAdapter{bot: b, chatID: chatID}
}

// Notify sends the alert as one plain text message to the configured chat.
func (tba *TelebotAdapter) Notify(ctx context.Context, alert notification.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipient := &telebot.Chat{ID: tba.chatID}
	if _, err := tba.bot.Send(recipient, alert.Text(), &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		return fmt.Errorf("failed to send Telegram alert to chat %d: %w", tba.chatID, err)
	}
	return nil
}
