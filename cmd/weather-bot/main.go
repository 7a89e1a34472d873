package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"weather-bot/config"
	"weather-bot/internal/controllers/telegram"
	"weather-bot/internal/repositories"
	"weather-bot/internal/services/weather"
	"weather-bot/pkg/httpserver"
	"weather-bot/pkg/logger"
	"weather-bot/pkg/metrics"
	"weather-bot/pkg/observe"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cnf, err := config.NewConfig(config.DefaultPath)
	if err != nil {
		logger.NewZapLogger("weather-bot", "", "info").Fatal("cannot load config", map[string]any{"err": err.Error()})
	}

	writers := []io.Writer{os.Stdout}
	var (
		hook      *observe.SentryHook
		sentryErr error
	)
	if cnf.Log.SentryDSN != "" {
		hook, sentryErr = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Log.SentryDSN, !cnf.IsProduction())
		if sentryErr == nil {
			writers = append(writers, hook)
			hook.SetLogger(logger.NewZapLogger(cnf.App.Name, cnf.App.Env, cnf.Log.Level, os.Stdout))
		}
	}

	l := logger.NewZapLogger(cnf.App.Name, cnf.App.Env, cnf.Log.Level, writers...)
	if sentryErr != nil {
		l.Warning("sentry disabled", map[string]any{"err": sentryErr.Error()})
	}

	m := metrics.New(strings.ReplaceAll(cnf.App.Name, "-", "_"))

	if err := tgbotapi.SetLogger(l); err != nil {
		l.Warning("cannot route bot client logs", map[string]any{"err": err.Error()})
	}

	bot, err := tgbotapi.NewBotAPI(cnf.Bot.Token)
	if err != nil {
		l.Fatal("cannot authorize bot", map[string]any{"err": err.Error()})
	}
	bot.Debug = cnf.Bot.Debug

	// only updates that arrive after startup are handled
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		l.Warning("cannot drop pending updates", map[string]any{"err": err.Error()})
	}

	repos := repositories.InitWeatherRepositories(cnf, l)

	service := weather.NewWeatherService(repos, l, m)

	router := telegram.NewRouter(bot, service, l, m)

	var ready atomic.Bool
	app := httpserver.InitFiberServer(cnf.App.Name, m, ready.Load)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Error(err, map[string]any{"port": cnf.Server.Port})
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cnf.Bot.PollTimeout
	updates := bot.GetUpdatesChan(u)

	done := make(chan struct{})
	go func() {
		router.Run(ctx, updates)
		close(done)
	}()
	ready.Store(true)

	l.Info("bot started", map[string]any{
		"bot":      bot.Self.UserName,
		"port":     cnf.Server.Port,
		"sources":  len(repos),
		"fallback": cnf.Weather.FallbackEnabled,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		ready.Store(false)

		bot.StopReceivingUpdates()
		cancel()
		<-done

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
	}()

	select {
	case <-sigCh:
		l.Info("received shutdown signal")
	case <-done:
		l.Warning("update stream closed")
	}
}
