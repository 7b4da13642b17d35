package memory

import (
	"context"
	"sync"

	"github.com/strideleague/marathon-fantasy/internal/domain/result"
)

type ResultRepository struct {
	mu     sync.RWMutex
	byRace map[string][]result.RaceResult
}

func NewResultRepository(results []result.RaceResult) *ResultRepository {
	byRace := make(map[string][]result.RaceResult)
	for _, item := range results {
		byRace[item.RaceID] = append(byRace[item.RaceID], item)
	}
	return &ResultRepository{byRace: byRace}
}

func (r *ResultRepository) ListByRace(_ context.Context, raceID string) ([]result.RaceResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byRace[raceID]
	out := make([]result.RaceResult, len(rows))
	copy(out, rows)
	return out, nil
}

func (r *ResultRepository) UpsertResult(_ context.Context, item result.RaceResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.byRace[item.RaceID]
	for i, existing := range rows {
		if existing.CompetitorID == item.CompetitorID {
			rows[i] = item
			return nil
		}
	}
	r.byRace[item.RaceID] = append(rows, item)
	return nil
}
