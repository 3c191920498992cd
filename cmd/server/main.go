// cmd/server/main.go
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/slackping/slackping-backend/internal/config"
	"github.com/slackping/slackping-backend/internal/db"
	"github.com/slackping/slackping-backend/internal/events"
	"github.com/slackping/slackping-backend/internal/handler"
	"github.com/slackping/slackping-backend/internal/repository"
	"github.com/slackping/slackping-backend/internal/service"
	"github.com/slackping/slackping-backend/internal/slack"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to database")

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

	schedulerHandler := &handler.SchedulerHandler{Dispatcher: dispatcher, Log: log}
	connectionHandler := &handler.ConnectionHandler{
		Repo: &repository.ConnectionRepository{DB: conn},
	}
	reminderHandler := &handler.ReminderHandler{
		ReminderRepo: &repository.ReminderRepository{DB: conn},
		LogRepo:      &repository.LogRepository{DB: conn},
	}
	healthHandler := &handler.HealthHandler{DB: conn}

	r := chi.NewRouter()

	// Scheduler routes
	r.Get("/scheduler/run", schedulerHandler.Run)
	r.Post("/scheduler/run", schedulerHandler.Run)
	r.Get("/reminders/{id}", reminderHandler.GetReminder)
	r.Get("/connections/{id}", connectionHandler.GetConnection)
	r.Get("/healthz", healthHandler.Health)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server running")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
