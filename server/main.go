package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/memory"
	"github.com/meikuraledutech/workflow/postgres"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var store workflow.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			logger.Error("connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = postgres.New(pool)
	} else {
		logger.Warn("DATABASE_URL is not set, using in-memory store")
		store = memory.New()
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	app := newApp(store, logger)
	if err := app.Listen(addr); err != nil {
		logger.Error("listen", "err", err)
		os.Exit(1)
	}
}
