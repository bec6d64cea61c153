package components

import (
	"context"
	"log/slog"
	"time"

	"course-checkout/internal/infra/filestore"
	"course-checkout/internal/infra/memstore"
	"course-checkout/internal/infra/metrics"
	"course-checkout/internal/infra/repository"
	"course-checkout/internal/infra/sqlc"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/keyedmutex"
	"course-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Backend selection: Postgres when a pool is configured, otherwise the JSON
// file ledger and the in-memory limiter. The memory limiter always exists as
// the fallback for a failing durable limiter.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		NewWebhookLedger,
		NewMemoryRateLimitStore,
		fx.Annotate(
			NewDurableRateLimitStore,
			fx.ResultTags(`name:"primary"`),
		),
		fx.Annotate(
			func(s *memstore.RateLimitStore) shared.RateLimitStore { return s },
			fx.ResultTags(`name:"fallback"`),
		),
	),
	fx.Invoke(RegisterRateLimitSweeper),
)

func NewSQLQueries() *sqlc.Queries {
	return sqlc.New()
}

func NewWebhookLedger(pool *pgxpool.Pool, queries *sqlc.Queries, cfg config.Config, clk clock.Clock, m *metrics.Metrics, logger *slog.Logger) shared.WebhookLedger {
	if pool != nil {
		logger.Info("Webhook ledger backend selected", "backend", "postgres")
		return repository.NewWebhookEventRepository(queries, pool)
	}
	logger.Info("Webhook ledger backend selected", "backend", "file", "path", cfg.Webhook.LedgerFile)
	return filestore.NewWebhookLedger(cfg.Webhook.LedgerFile, clk,
		keyedmutex.WithWaitObserver(m.LockWaitObserver("webhook-file")),
	)
}

func NewMemoryRateLimitStore(m *metrics.Metrics) *memstore.RateLimitStore {
	return memstore.NewRateLimitStore(keyedmutex.WithWaitObserver(m.LockWaitObserver("rate-limit")))
}

// NewDurableRateLimitStore returns a nil interface without a pool so the
// limiter answers from memory only.
func NewDurableRateLimitStore(pool *pgxpool.Pool, queries *sqlc.Queries) shared.RateLimitStore {
	if pool == nil {
		return nil
	}
	return repository.NewRateLimitRepository(queries, pool)
}

// RegisterRateLimitSweeper drops expired windows from memory and, with a
// database, from rate_limits.
func RegisterRateLimitSweeper(lc fx.Lifecycle, mem *memstore.RateLimitStore, pool *pgxpool.Pool, queries *sqlc.Queries, cfg config.Config, clk clock.Clock, logger *slog.Logger) {
	interval := cfg.RateLimit.SweepInterval
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if pool == nil {
					mem.RunSweeper(ctx, interval, clk, logger)
					return
				}
				repo := repository.NewRateLimitRepository(queries, pool)
				go mem.RunSweeper(ctx, interval, clk, logger)
				pruneDurable(ctx, repo, interval, clk, logger)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func pruneDurable(ctx context.Context, repo *repository.RateLimitRepository, interval time.Duration, clk clock.Clock, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PruneExpired(ctx, clk.Now())
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Failed to prune rate limit windows", "error", err)
				}
				continue
			}
			if n > 0 {
				logger.Debug("Rate limit windows pruned", "removed", n)
			}
		}
	}
}
