package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	ListenAddr   string
	JWTSecret    string

	ImageStoragePath string

	// Twilio config for the SMS reminder channel.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Telegram config for the alternate reminder channel.
	TelegramBotToken string
	TelegramChatID   int64

	// Optional Gemini key; enables the LLM fallback in the recipe importer.
	GeminiAPIKey string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	imagePath := os.Getenv("IMAGE_STORAGE_PATH")
	if imagePath == "" {
		imagePath = "data/images"
	}

	var telegramChatID int64
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		fmt.Sscanf(v, "%d", &telegramChatID)
	}

	return &Config{
		DatabasePath:     databasePath,
		ListenAddr:       listenAddr,
		JWTSecret:        jwtSecret,
		ImageStoragePath: imagePath,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   telegramChatID,
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
	}, nil
}

// TwilioConfigured reports whether all Twilio settings are present.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// TelegramConfigured reports whether the Telegram channel can be used.
func (c *Config) TelegramConfigured() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
