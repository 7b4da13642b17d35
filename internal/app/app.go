package app

import (
	"context"
	"fmt"

	"github.com/strideleague/marathon-fantasy/internal/config"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
	cacherepo "github.com/strideleague/marathon-fantasy/internal/infrastructure/repository/cache"
	"github.com/strideleague/marathon-fantasy/internal/infrastructure/repository/memory"
	"github.com/strideleague/marathon-fantasy/internal/infrastructure/repository/postgres"
	basecache "github.com/strideleague/marathon-fantasy/internal/platform/cache"
	"github.com/strideleague/marathon-fantasy/internal/platform/logging"
	"github.com/strideleague/marathon-fantasy/internal/usecase"
)

// NewRecalcService wires the recalculation use case against postgres. The
// returned cleanup closes the database handle.
func NewRecalcService(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.RecalcService, func() error, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	var rulesRepo rules.Repository = postgres.NewRuleSetRepository(db)
	if cfg.CacheEnabled {
		rulesRepo = cacherepo.NewRuleSetRepository(rulesRepo, basecache.NewStore(cfg.CacheTTL))
	}

	svc := usecase.NewRecalcService(
		postgres.NewResultRepository(db),
		rulesRepo,
		postgres.NewBreakdownRepository(db),
		logger,
	)
	return svc, db.Close, nil
}

// NewMemoryRecalcService wires the recalculation use case against the
// in-memory fixtures. Used for local dry runs and tests.
func NewMemoryRecalcService(logger *logging.Logger) *usecase.RecalcService {
	return usecase.NewRecalcService(
		memory.NewResultRepository(memory.SeedResults()),
		memory.NewRuleSetRepository(memory.SeedRuleSets()),
		memory.NewBreakdownRepository(),
		logger,
	)
}
