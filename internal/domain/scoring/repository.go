package scoring

import "context"

// Repository is the breakdown-store collaborator. Persistence upserts on the
// (raceID, competitorID, ruleSetVersion) key, which is what makes re-running
// a recalculation safe; the engine assumes that uniqueness but does not
// enforce it. Breakdowns for other versions are never touched.
type Repository interface {
	UpsertMany(ctx context.Context, breakdowns []Breakdown) error
	ListByRaceVersion(ctx context.Context, raceID string, version int) ([]Breakdown, error)
}
