// The reminder command sends the weekly reminder to every opted-in profile
// and prunes old delivery log rows. It is meant to run from cron once a week.
package main

import (
	"context"
	"flag"
	stdlog "log"
	"time"

	"madfood/internal/app"
	"madfood/internal/config"
	"madfood/internal/database"
	"madfood/internal/log"
	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/profile"
	"madfood/internal/recipe"
	"madfood/internal/reminder"
	"madfood/internal/shopping"

	"github.com/joho/godotenv"
)

func main() {
	retentionDays := flag.Int("retention-days", 90, "Keep reminder log rows for the last N days")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	logger := log.New(log.Config{Component: "reminder"})

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		stdlog.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var sender reminder.Sender
	switch {
	case cfg.TwilioConfigured():
		sender = reminder.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	case cfg.TelegramConfigured():
		sender, err = reminder.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			stdlog.Fatalf("Failed to initialize Telegram sender: %v", err)
		}
	default:
		stdlog.Fatal("No reminder channel configured: set Twilio or Telegram credentials")
	}

	remLog := reminder.NewLogStore(db.SQL)
	application := app.New(logger,
		planner.NewRepository(db.SQL),
		recipe.NewRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		pantry.NewRepository(db.SQL),
		profile.NewRepository(db.SQL),
		recipe.NewImporter(nil),
		nil,
		sender,
		remLog)

	ctx := context.Background()
	now := time.Now()

	sent, err := application.SendWeeklyReminders(ctx, now)
	if err != nil {
		stdlog.Fatalf("Reminder run failed: %v", err)
	}
	logger.Info("reminder run finished", "sent", sent)

	cutoff := now.AddDate(0, 0, -*retentionDays)
	if err := remLog.Prune(ctx, cutoff); err != nil {
		logger.Error("failed to prune reminder log", "error", err)
	}
}
