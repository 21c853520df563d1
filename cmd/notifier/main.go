package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iss_overhead_notifier/internal/app"
	"iss_overhead_notifier/internal/domain/daylight"
	"iss_overhead_notifier/internal/domain/notification"
	"iss_overhead_notifier/internal/infra/astro"
	"iss_overhead_notifier/internal/infra/config"
	"iss_overhead_notifier/internal/infra/logger"
	"iss_overhead_notifier/internal/infra/mail"
	"iss_overhead_notifier/internal/infra/metrics"
	"iss_overhead_notifier/internal/infra/opennotify"
	"iss_overhead_notifier/internal/infra/retry"
	"iss_overhead_notifier/internal/infra/scheduler"
	"iss_overhead_notifier/internal/infra/sunrisesunset"
	"iss_overhead_notifier/internal/infra/telegram"
)

func main() {
	fmt.Println("ISS Overhead Notifier starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.Infof("Configuration loaded: %s", cfg)

	// Notification channels
	smtpNotifier, err := mail.NewSMTPNotifier(mail.DefaultHost, cfg.Email, cfg.EmailPassword)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not set up email notifier: %v", err)
	}
	channels := []notification.Channel{{Name: "email", Notifier: smtpNotifier}}

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken)
		if err != nil {
			mainLogger.Fatalf("FATAL: %v", err)
		}
		channels = append(channels, notification.Channel{
			Name:     "telegram",
			Notifier: telegram.NewTelebotAdapter(bot, cfg.TelegramChatID),
		})
	}
	fanout := notification.NewFanout(channels...)
	mainLogger.Infof("Notification channels: %v", fanout.Channels())

	retry.OnRetry(metrics.ObserveRetry)
	policy := retry.NewPolicy(logger.Component("retry"))

	// Daylight: sunrise-sunset API with retries, local calculation once those are spent
	sunLogger := logger.Component("daylight")
	sun := &daylight.Fallback{
		Primary:   app.NewRetryingProvider(sunrisesunset.NewClient(sunrisesunset.DefaultURL), policy, "sun_times"),
		Secondary: astro.NewProvider(),
		OnFallback: func(err error) {
			metrics.ObserveDaylightFallback()
			sunLogger.WithError(err).Warn("Sunrise-sunset API unavailable, using local sun calculation")
		},
	}

	watchService := app.NewWatchService(
		cfg.Observer(),
		opennotify.NewClient(opennotify.DefaultURL),
		sun,
		fanout,
		policy,
		logger.Component("watch"),
	)
	mainLogger.Info("Watch service initialized.")

	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr, logger.Component("metrics"))
		metricsServer.Start()
	}

	watchScheduler := scheduler.NewWatchScheduler(watchService, logger.Component("scheduler"), cfg.CheckSchedule)
	if err := watchScheduler.Start(); err != nil {
		mainLogger.Fatalf("FATAL: %v", err)
	}

	mainLogger.Info("Application setup complete. Watching for the ISS...")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	watchScheduler.Stop()
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			mainLogger.WithError(err).Warn("Metrics server did not shut down cleanly")
		}
	}
	mainLogger.Info("Application shut down gracefully.")
}
