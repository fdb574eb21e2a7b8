package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment with an
// optional .env overlay for local development.
type Config struct {
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":9292"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:publishing.db?cache=shared"`

	GithubClientID     string `env:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `env:"GITHUB_CLIENT_SECRET"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
}

func loadConfig() (Config, error) {
	// missing .env is the normal production case
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

func (c Config) newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// slogAdapter bridges slog to the printf style logger the domain layer
// expects.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Debug(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Info(format string, args ...any) {
	a.logger.Info(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Error(format string, args ...any) {
	a.logger.Error(fmt.Sprintf(format, args...))
}
