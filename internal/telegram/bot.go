// Package telegram exposes the cart builder over a Telegram bot: send a
// list of recipe names, get the shopping-cart table back.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ingredient-finder/internal/app"
	"ingredient-finder/internal/config"
)

// CartBuilder builds a rendered shopping cart for a recipe query.
type CartBuilder interface {
	BuildCart(ctx context.Context, query []string) (text string, warnings []string, err error)
}

// Bot wraps the Telegram API and the cart builder.
type Bot struct {
	api     *tgbotapi.BotAPI
	builder CartBuilder
	cfg     *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, builder CartBuilder) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:     bot,
		builder: builder,
		cfg:     cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	query := parseMessageQuery(msg.Text)
	if len(query) == 0 {
		b.reply(msg.Chat.ID, "Send me recipe names, one per line or comma-separated, and I'll build the shopping cart.")
		return
	}

	log.Printf("Building cart for query: %v", query)

	text, warnings, err := b.builder.BuildCart(context.Background(), query)
	if err != nil {
		log.Printf("Error building cart: %v", err)
		b.reply(msg.Chat.ID, fmt.Sprintf("Failed to build cart: %v", err))
		return
	}

	b.reply(msg.Chat.ID, formatCartMessage(text, warnings))
}

func (b *Bot) reply(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ParseMode = "Markdown"
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

// parseMessageQuery splits a message into recipe names. Newlines and commas
// both act as separators, matching the clipboard and CLI conventions.
func parseMessageQuery(text string) []string {
	return app.ParseQuery([]string{strings.ReplaceAll(text, "\n", ",")})
}

// formatCartMessage wraps the tab-separated cart in a monospace block so
// the columns survive Telegram's proportional font, and appends any merge
// warnings below it.
func formatCartMessage(cartText string, warnings []string) string {
	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(cartText)
	b.WriteString("```")
	for _, warning := range warnings {
		b.WriteString("\n⚠️ ")
		b.WriteString(warning)
	}
	return b.String()
}
