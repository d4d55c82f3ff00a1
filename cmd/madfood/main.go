package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"madfood/internal/app"
	"madfood/internal/auth"
	"madfood/internal/config"
	"madfood/internal/database"
	"madfood/internal/llm"
	"madfood/internal/log"
	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/profile"
	"madfood/internal/recipe"
	"madfood/internal/reminder"
	"madfood/internal/server"
	"madfood/internal/shopping"
	"madfood/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	logger := log.New(log.Config{Component: "madfood"})

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		stdlog.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := planner.NewRepository(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)
	pantryRepo := pantry.NewRepository(db.SQL)
	profileRepo := profile.NewRepository(db.SQL)
	userRepo := auth.NewUserRepository(db.SQL)

	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			stdlog.Fatalf("Failed to create Gemini client: %v", err)
		}
		if closer, ok := gemini.(llm.Closer); ok {
			defer closer.Close()
		}
		textGen = gemini
	}
	importer := recipe.NewImporter(textGen)

	images, err := storage.NewImageStore(cfg.ImageStoragePath)
	if err != nil {
		stdlog.Fatalf("Failed to initialize image store: %v", err)
	}

	sender := pickSender(cfg, logger)
	remLog := reminder.NewLogStore(db.SQL)

	application := app.New(logger, planRepo, recipeRepo, shoppingRepo, pantryRepo,
		profileRepo, importer, images, sender, remLog)
	authService := auth.NewService(userRepo, cfg.JWTSecret)

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: server.New(logger, application, authService,
			planRepo, recipeRepo, shoppingRepo, pantryRepo, profileRepo).Routes(),
	}

	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			stdlog.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		stdlog.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("server exiting")
}

// pickSender chooses the reminder channel: Twilio when fully configured,
// Telegram as the fallback, nil when neither is set up.
func pickSender(cfg *config.Config, logger *log.Logger) reminder.Sender {
	if cfg.TwilioConfigured() {
		return reminder.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}
	if cfg.TelegramConfigured() {
		sender, err := reminder.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			stdlog.Fatalf("Failed to initialize Telegram sender: %v", err)
		}
		return sender
	}
	logger.Warn("no reminder channel configured, reminder sending disabled")
	return nil
}
