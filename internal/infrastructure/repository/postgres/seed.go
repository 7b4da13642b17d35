package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
	"github.com/strideleague/marathon-fantasy/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the sample race results and the default rule set into
// an empty database. A database that already has results is left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM race_results WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count race results for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	resultRepo := NewResultRepository(db)
	for _, item := range memory.SeedResults() {
		if err := resultRepo.UpsertResult(ctx, item); err != nil {
			return fmt.Errorf("seed race result %s/%s: %w", item.RaceID, item.CompetitorID, err)
		}
	}

	rulesRepo := NewRuleSetRepository(db)
	for _, rs := range memory.SeedRuleSets() {
		if err := rulesRepo.Publish(ctx, rs); err != nil {
			if errors.Is(err, rules.ErrVersionExists) {
				continue
			}
			return fmt.Errorf("seed rule set v%d: %w", rs.Version, err)
		}
	}

	return nil
}
