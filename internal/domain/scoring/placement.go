package scoring

import (
	"sort"

	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

// Placement is one finisher's rank and the placement points it earned.
type Placement struct {
	CompetitorID string
	Place        int
	Points       int
}

type finisher struct {
	competitorID string
	finish       racetime.TimeValue
}

// CalculatePlacements ranks the finished results of one race using standard
// competition ranking: tied times share the lower placement number and the
// next distinct time resumes at its true rank (two tied 2nds are both "2",
// the next finisher is "4"). Placement points come from the rule set's
// table for placements up to MaxScoredPlace; everything past the boundary
// scores zero, including tied finishers whose shared placement crosses it.
// DNF and DNS rows never appear in the output.
func CalculatePlacements(results []result.RaceResult, rs rules.RuleSet) map[string]Placement {
	finishers := make([]finisher, 0, len(results))
	for _, r := range results {
		if result.Classify(r) != result.StatusFinished {
			continue
		}
		finishers = append(finishers, finisher{
			competitorID: r.CompetitorID,
			finish:       *r.Finish,
		})
	}
	if len(finishers) == 0 {
		return map[string]Placement{}
	}

	// Competitor id breaks finish-time ties for a deterministic ordering;
	// tied competitors still share the same placement number below.
	sort.Slice(finishers, func(i, j int) bool {
		if finishers[i].finish != finishers[j].finish {
			return finishers[i].finish < finishers[j].finish
		}
		return finishers[i].competitorID < finishers[j].competitorID
	})

	out := make(map[string]Placement, len(finishers))
	place := 1
	for idx, f := range finishers {
		if idx > 0 && f.finish != finishers[idx-1].finish {
			place = idx + 1
		}

		points := 0
		if place <= rs.MaxScoredPlace {
			points = rs.PlacementPoints[place-1]
		}
		out[f.competitorID] = Placement{
			CompetitorID: f.competitorID,
			Place:        place,
			Points:       points,
		}
	}
	return out
}
