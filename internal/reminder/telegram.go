package reminder

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramAPI is the slice of the bot client this sender needs.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender delivers reminders to one configured chat. Telegram has no
// phone-number addressing, so the per-profile destination is used for the
// reminder log only; every message goes to the configured chat.
type TelegramSender struct {
	api    telegramAPI
	chatID int64
}

// NewTelegramSender creates a sender backed by the Telegram Bot API.
func NewTelegramSender(botToken string, chatID int64) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return &TelegramSender{api: api, chatID: chatID}, nil
}

// Channel identifies this sender in the reminder log.
func (t *TelegramSender) Channel() string { return "telegram" }

// Send delivers one message to the configured chat, ignoring the destination.
func (t *TelegramSender) Send(_ context.Context, _, body string) error {
	if t.chatID == 0 {
		return fmt.Errorf("telegram chat id is not configured")
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, body)); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
