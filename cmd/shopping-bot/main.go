package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ingredient-finder/internal/app"
	"ingredient-finder/internal/cache"
	"ingredient-finder/internal/config"
	"ingredient-finder/internal/sheets"
	"ingredient-finder/internal/telegram"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("telegram_bot_token is not configured")
	}

	// The bot replies in chat; it has no clipboard or console output.
	application := app.NewApp(
		sheets.NewSource(cfg),
		cache.NewStore(cfg.CachePath),
		nopClipboard{},
		io.Discard,
	)

	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: nil,
	}

	go func() {
		log.Printf("Shopping bot listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

type nopClipboard struct{}

func (nopClipboard) ReadAll() (string, error) { return "", nil }
func (nopClipboard) WriteAll(string) error { return nil }
