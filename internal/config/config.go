// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects everything the binaries read from the environment.
// Load .env via godotenv in main before calling Load.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	Port string

	AMQPURL string

	SchedulerConcurrency int
	SchedulerInterval    string
	DeliveryTimeout      time.Duration
}

func Load() Config {
	cfg := Config{
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),

		Port:    getEnv("PORT", "8080"),
		AMQPURL: os.Getenv("AMQP_URL"),

		SchedulerConcurrency: getEnvInt("SCHEDULER_CONCURRENCY", 5),
		SchedulerInterval:    getEnv("SCHEDULER_INTERVAL", "@every 1m"),
		DeliveryTimeout:      getEnvDuration("DELIVERY_TIMEOUT", 10*time.Second),
	}
	return cfg
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
