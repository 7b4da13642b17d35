package scoring

import (
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

// Score computes one breakdown per input result for a single race under one
// rule-set version. The function is pure: no I/O, no hidden state, no
// reliance on a process-wide "current" rule set, which is what makes
// historical recalculation reproducible and concurrent scoring of disjoint
// races safe. Breakdowns come back in input order; DNF and DNS rows get
// all-zero breakdowns with their classification noted.
//
// A rule set that fails validation is refused outright rather than scored
// approximately.
func Score(results []result.RaceResult, rs rules.RuleSet) ([]Breakdown, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	placements := CalculatePlacements(results, rs)
	leader, hasLeader := LeaderTime(results)

	out := make([]Breakdown, 0, len(results))
	for _, r := range results {
		b := Breakdown{
			RaceID:         r.RaceID,
			CompetitorID:   r.CompetitorID,
			RuleSetVersion: rs.Version,
			Classification: result.Classify(r),
		}

		if b.Classification == result.StatusFinished {
			if p, ok := placements[r.CompetitorID]; ok {
				place := p.Place
				b.Placement = &place
				b.PlacementPoints = p.Points
			}
			if hasLeader {
				gap, points := GapBonus(*r.Finish, leader, rs.GapWindows)
				b.GapSeconds = &gap
				b.GapPoints = points
			}
			b.Performance = PerformanceBonuses(r, rs.Performance)
			b.Records = RecordBonuses(r.Records, rs)
		}

		b.TotalPoints = b.PlacementPoints + b.GapPoints
		for _, award := range b.Performance {
			b.TotalPoints += award.Points
		}
		for _, award := range b.Records {
			b.TotalPoints += award.Points
		}

		out = append(out, b)
	}
	return out, nil
}
