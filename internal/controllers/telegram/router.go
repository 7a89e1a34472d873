package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"weather-bot/internal/services/weather"
	"weather-bot/pkg/logger"
	"weather-bot/pkg/metrics"
)

// BotAPI is the part of *tgbotapi.BotAPI the router talks to.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type WeatherProvider interface {
	Fetch(ctx context.Context) weather.Result
}

type Router struct {
	bot     BotAPI
	weather WeatherProvider
	l       *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewRouter(
	bot BotAPI,
	weatherService WeatherProvider,
	l *logger.Logger,
	m *metrics.Metrics,
) *Router {
	return &Router{
		bot:     bot,
		weather: weatherService,
		l:       l,
		metrics: m,
		now:     time.Now,
	}
}

// Run dispatches every update on its own goroutine until ctx is done or
// updates is closed, then waits for in-flight handlers.
func (r *Router) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			wg.Add(1)
			go func(u tgbotapi.Update) {
				defer wg.Done()
				r.HandleUpdate(ctx, u)
			}(update)
		}
	}
}

// HandleUpdate sends at most one reply for the update.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			r.l.Error(fmt.Errorf("panic while handling update: %v", rec), map[string]any{
				"updateID": update.UpdateID,
			})
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		r.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		r.handleEcho(update.Message)
	default:
		r.metrics.ObserveUpdate("other", "")
		r.l.Debug("ignoring update", map[string]any{"updateID": update.UpdateID})
	}
}

func (r *Router) send(c tgbotapi.Chattable, trigger string) {
	if _, err := r.bot.Send(c); err != nil {
		r.l.Error(err, map[string]any{"trigger": trigger, "op": "send"})
	}
}

func (r *Router) request(c tgbotapi.Chattable, trigger, op string) {
	if _, err := r.bot.Request(c); err != nil {
		r.l.Error(err, map[string]any{"trigger": trigger, "op": op})
	}
}
