// cmd/scheduler/main.go
//
// Standalone scheduler runner: fires the dispatch loop on a cron interval
// instead of waiting for an external trigger to hit /scheduler/run. Each
// tick is one complete pass; the process holds no dispatch state between
// runs beyond what is persisted in Postgres, so killing it mid-batch only
// means unprocessed reminders stay active and are retried on the next tick.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/slackping/slackping-backend/internal/config"
	"github.com/slackping/slackping-backend/internal/db"
	"github.com/slackping/slackping-backend/internal/events"
	"github.com/slackping/slackping-backend/internal/repository"
	"github.com/slackping/slackping-backend/internal/service"
	"github.com/slackping/slackping-backend/internal/slack"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "scheduler").Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Warn().Err(err).Msg("amqp unavailable, outcome events disabled")
		} else {
			publisher = p
			defer p.Close()
		}
	}

	dispatcher := &service.Dispatcher{
		ReminderRepo:    &repository.ReminderRepository{DB: conn},
		Deliverer:       slack.NewClient(),
		Recorder:        &service.Recorder{DB: conn, Log: log},
		Events:          publisher,
		Log:             log,
		Concurrency:     cfg.SchedulerConcurrency,
		DeliveryTimeout: cfg.DeliveryTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	_, err = c.AddFunc(cfg.SchedulerInterval, func() {
		summary, err := dispatcher.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("scheduler run failed")
			return
		}
		if summary.Sent+summary.Failed > 0 {
			log.Info().
				Int("sent", summary.Sent).
				Int("failed", summary.Failed).
				Msg("run summary")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Str("interval", cfg.SchedulerInterval).Msg("invalid scheduler interval")
	}

	c.Start()
	log.Info().Str("interval", cfg.SchedulerInterval).Msg("scheduler running")

	<-ctx.Done()
	log.Info().Msg("shutting down, waiting for running jobs")
	<-c.Stop().Done()
}
