package result

import "context"

// Repository is the results-store collaborator. Rows are written by the
// ingestion side as race-day data arrives; the scoring engine only reads
// them. Partial data is valid input, not an error.
type Repository interface {
	ListByRace(ctx context.Context, raceID string) ([]RaceResult, error)
}
