// Package bot implements the Telegram surface: the long-poll command
// dispatcher users talk to and the delivery channel the scheduler
// pushes notifications through.
package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	tbapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
	"github.com/AlvesR0/rss-telegram-bot/pkg/store"
)

//go:generate moq -out mocks/telegram.go -pkg mocks -skip-ensure -fmt goimports . TelegramAPI
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/status.go -pkg mocks -skip-ensure -fmt goimports . StatusProvider

// TelegramAPI is the subset of the Telegram bot client the bot needs.
type TelegramAPI interface {
	Send(c tbapi.Chattable) (tbapi.Message, error)
	GetUpdatesChan(config tbapi.UpdateConfig) tbapi.UpdatesChannel
	StopReceivingUpdates()
}

// Fetcher retrieves and parses a feed snapshot, used by /latest.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.Item, error)
}

// StatusProvider reports the time remaining until the next polling pass.
type StatusProvider interface {
	TimeUntilNext() time.Duration
}

// Bot handles incoming commands and outgoing notifications.
type Bot struct {
	api     TelegramAPI
	store   store.Store
	fetcher Fetcher
	status  StatusProvider
	newPin  func() int
}

// New creates a bot on top of an authorized Telegram API client.
func New(api TelegramAPI, st store.Store, fetcher Fetcher, status StatusProvider) *Bot {
	return &Bot{
		api:     api,
		store:   st,
		fetcher: fetcher,
		status:  status,
		newPin: func() int {
			return pinMin + rand.Intn(pinMax-pinMin+1) //nolint:gosec // pins are handles, not secrets
		},
	}
}

// pin range for the short numeric feed handles
const (
	pinMin = 1111
	pinMax = 9999
)

// Run consumes Telegram updates until the context is canceled. Each text
// message is dispatched as a command and answered with a single reply.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tbapi.NewUpdate(0)
	cfg.Timeout = 60
	updates := b.api.GetUpdatesChan(cfg)

	lgr.Printf("[INFO] bot started, waiting for commands")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			lgr.Printf("[INFO] bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
				continue
			}

			reply := b.handleCommand(ctx, update.Message.From.ID, update.Message.Text)
			if err := b.Send(ctx, update.Message.Chat.ID, reply); err != nil {
				lgr.Printf("[WARN] failed to reply in chat %d: %v", update.Message.Chat.ID, err)
			}
		}
	}
}

// Send delivers a text to a chat, implementing the scheduler's channel.
func (b *Bot) Send(_ context.Context, chatID int64, text string) error {
	if _, err := b.api.Send(tbapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

// handleCommand maps one text message to a reply. The first word selects
// the command, the rest is passed to it verbatim.
func (b *Bot) handleCommand(ctx context.Context, userID int64, text string) string {
	cmd, args, _ := strings.Cut(text, " ")

	switch strings.ToLower(cmd) {
	case "/start":
		return "Hello! Add rss feeds by typing /add <url>"
	case "/add":
		return b.add(ctx, userID, args)
	case "/status":
		return b.feedStatus(ctx, userID, args)
	case "/list":
		return b.list(ctx, userID)
	case "/edit":
		return b.edit(ctx, userID, args)
	case "/delete":
		return b.delete(ctx, userID, args)
	case "/latest":
		return b.latest(ctx, userID, args)
	default:
		return "Unknown command.\n" +
			"You can list your rss feeds by typing /list.\n" +
			"You can add a new rss feed by typing /add <RSS url>"
	}
}

// humanDuration renders a wait the way users read it, minutes above one
// minute and seconds below.
func humanDuration(d time.Duration) string {
	if d > time.Minute {
		return fmt.Sprintf("%d minutes", int(d.Seconds())/60)
	}
	return fmt.Sprintf("%d seconds", int(d.Seconds()))
}
