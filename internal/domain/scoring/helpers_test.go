package scoring

import (
	"testing"

	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
)

func mustClock(t *testing.T, clock string) racetime.TimeValue {
	t.Helper()
	value, ok := racetime.ParseClock(clock)
	if !ok {
		t.Fatalf("bad test clock %q", clock)
	}
	return value
}

func finished(t *testing.T, competitorID, clock string) result.RaceResult {
	t.Helper()
	finish := mustClock(t, clock)
	return result.RaceResult{
		RaceID:       "berlin-2025",
		CompetitorID: competitorID,
		Finish:       &finish,
		Splits:       result.Splits{},
	}
}

func withSplit(t *testing.T, r result.RaceResult, cp racetime.Checkpoint, clock string) result.RaceResult {
	t.Helper()
	if r.Splits == nil {
		r.Splits = result.Splits{}
	}
	r.Splits[cp] = mustClock(t, clock)
	return r
}
