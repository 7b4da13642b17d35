package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/strideleague/marathon-fantasy/internal/domain/scoring"
)

type breakdownKey struct {
	raceID       string
	competitorID string
	version      int
}

type BreakdownRepository struct {
	mu    sync.RWMutex
	items map[breakdownKey]scoring.Breakdown
}

func NewBreakdownRepository() *BreakdownRepository {
	return &BreakdownRepository{items: make(map[breakdownKey]scoring.Breakdown)}
}

func (r *BreakdownRepository) UpsertMany(_ context.Context, breakdowns []scoring.Breakdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, breakdown := range breakdowns {
		key := breakdownKey{
			raceID:       breakdown.RaceID,
			competitorID: breakdown.CompetitorID,
			version:      breakdown.RuleSetVersion,
		}
		r.items[key] = breakdown
	}
	return nil
}

func (r *BreakdownRepository) ListByRaceVersion(_ context.Context, raceID string, version int) ([]scoring.Breakdown, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Breakdown, 0)
	for key, breakdown := range r.items {
		if key.raceID == raceID && key.version == version {
			out = append(out, breakdown)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompetitorID < out[j].CompetitorID
	})
	return out, nil
}
