package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "data/madfood.db")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("TELEGRAM_CHAT_ID", "12345")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/madfood.db" {
			t.Errorf("Expected DatabasePath 'data/madfood.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.ListenAddr != ":8080" {
			t.Errorf("Expected default ListenAddr ':8080', got '%s'", cfg.ListenAddr)
		}
		if cfg.TelegramChatID != 12345 {
			t.Errorf("Expected TelegramChatID 12345, got %d", cfg.TelegramChatID)
		}
	})

	t.Run("MissingDatabasePath", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		os.Unsetenv("DATABASE_PATH")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing DATABASE_PATH, got nil")
		}
		expectedError := "DATABASE_PATH environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "data/madfood.db")
		os.Unsetenv("JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
	})

	t.Run("TwilioConfigured", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "data/madfood.db")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
		t.Setenv("TWILIO_AUTH_TOKEN", "token")
		t.Setenv("TWILIO_FROM_NUMBER", "+15550001111")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !cfg.TwilioConfigured() {
			t.Error("Expected TwilioConfigured to be true")
		}
	})
}
