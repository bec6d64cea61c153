package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"course-checkout/cmd/bootstrap/components"
	"course-checkout/internal/infra/db"
	"course-checkout/internal/infra/metrics"
	"course-checkout/internal/infra/sqlc"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

// env is what every subcommand needs: the server's configuration and the
// ledger backend the server would select for it.
type env struct {
	cfg     config.Config
	clock   clock.Clock
	logger  *slog.Logger
	pool    *pgxpool.Pool
	queries *sqlc.Queries
	ledger  shared.WebhookLedger
	close   func()
}

func openEnv(ctx context.Context, verbose bool) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	var out io.Writer = io.Discard
	if verbose {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, nil))

	e := &env{
		cfg:     cfg,
		clock:   clock.NewRealClock(),
		logger:  logger,
		queries: components.NewSQLQueries(),
		close:   func() {},
	}

	if cfg.DB.Enabled() {
		pool, cleanup, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			cleanup()
			return nil, err
		}
		e.pool = pool
		e.close = cleanup
	}

	e.ledger = components.NewWebhookLedger(e.pool, e.queries, cfg, e.clock, metrics.New(), logger)
	return e, nil
}
