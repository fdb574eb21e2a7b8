package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/provider/github"
	"github.com/goliatone/go-publishing/rest"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	slogger := cfg.newLogger()
	logger := slogAdapter{logger: slogger}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fatal: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger publishing.Logger) error {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	if err := publishing.CreateSchema(ctx, db); err != nil {
		return err
	}

	repo := publishing.NewRepositoryManager(db)
	repo.MustValidate()

	exchanger := github.New(github.Config{
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubClientSecret,
	})

	auther := publishing.NewAuthenticator(repo.Users(), exchanger).WithLogger(logger)
	tokens := publishing.NewTokenService(repo.AccessTokens()).WithLogger(logger)

	server := rest.New(rest.Config{
		Auth:     auther,
		Tokens:   tokens,
		Repo:     repo,
		Logger:   logger,
		PageSize: cfg.DefaultPageSize,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.ServerAddr)
		errCh <- server.Listen(cfg.ServerAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
