package scoring

import (
	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

// LeaderTime returns the fastest finish time among the finished results of a
// race. When nobody finished there is no leader and no gaps are computed.
func LeaderTime(results []result.RaceResult) (racetime.TimeValue, bool) {
	var leader racetime.TimeValue
	found := false
	for _, r := range results {
		if result.Classify(r) != result.StatusFinished {
			continue
		}
		if !found || *r.Finish < leader {
			leader = *r.Finish
			found = true
		}
	}
	return leader, found
}

// GapBonus computes a finisher's whole-second gap to the leader and the
// points of the first configured window that covers it. Windows are walked
// in their ascending order, first match wins; no match means no bonus. The
// leader's own gap is zero and always matches the first window, so the
// leader always takes the top gap bonus.
func GapBonus(finish, leader racetime.TimeValue, windows []rules.GapWindow) (int64, int) {
	gapSeconds := (finish.Millis() - leader.Millis()) / 1000
	if gapSeconds < 0 {
		gapSeconds = 0
	}
	for _, window := range windows {
		if window.MaxGapSeconds >= gapSeconds {
			return gapSeconds, window.Points
		}
	}
	return gapSeconds, 0
}
