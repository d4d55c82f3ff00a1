package reminder

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeTelegramAPI struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeTelegramAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramSenderUsesConfiguredChat(t *testing.T) {
	api := &fakeTelegramAPI{}
	sender := &TelegramSender{api: api, chatID: 4242}

	// The destination is a phone number; delivery must still target the
	// configured chat.
	if err := sender.Send(context.Background(), "+15550123", "dinner is planned"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(api.sent))
	}
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want tgbotapi.MessageConfig", api.sent[0])
	}
	if msg.ChatID != 4242 {
		t.Errorf("ChatID = %d, want 4242", msg.ChatID)
	}
	if msg.Text != "dinner is planned" {
		t.Errorf("Text = %q", msg.Text)
	}
}

func TestTelegramSenderErrors(t *testing.T) {
	t.Run("MissingChatID", func(t *testing.T) {
		sender := &TelegramSender{api: &fakeTelegramAPI{}}
		if err := sender.Send(context.Background(), "", "hi"); err == nil {
			t.Fatal("expected error for unset chat id")
		}
	})

	t.Run("APIFailure", func(t *testing.T) {
		sender := &TelegramSender{api: &fakeTelegramAPI{err: errors.New("flood limit")}, chatID: 1}
		if err := sender.Send(context.Background(), "", "hi"); err == nil {
			t.Fatal("expected wrapped api error")
		}
	})
}
