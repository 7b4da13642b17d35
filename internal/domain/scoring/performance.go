package scoring

import (
	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

// fastFinishSegments lists the checkpoints that can anchor the fast-finish
// comparison, preferred first. The segment runs from the checkpoint to the
// finish line; the bulk is everything before it.
var fastFinishSegments = []racetime.Checkpoint{
	racetime.Checkpoint40K,
	racetime.Checkpoint35K,
}

// PerformanceBonuses evaluates the split-derived bonuses for one finished
// result. A bonus whose required splits are missing is silently not
// applicable; partial timing data is normal, not an error. Negative split
// and even pace are evaluated independently and can both be awarded.
func PerformanceBonuses(r result.RaceResult, cfg rules.PerformanceConfig) []PerformanceAward {
	if result.Classify(r) != result.StatusFinished {
		return nil
	}
	finish := *r.Finish

	var awards []PerformanceAward

	firstHalf, secondHalf, halvesOK := raceHalves(finish, r.Splits)

	if cfg.NegativeSplit.Enabled && halvesOK && secondHalf < firstHalf {
		awards = append(awards, PerformanceAward{
			Type:         rules.BonusNegativeSplit,
			Points:       cfg.NegativeSplit.Points,
			FirstHalfMs:  firstHalf.Millis(),
			SecondHalfMs: secondHalf.Millis(),
		})
	}

	if cfg.EvenPace.Enabled && halvesOK {
		diff := firstHalf.Millis() - secondHalf.Millis()
		if diff < 0 {
			diff = -diff
		}
		if float64(diff)/float64(firstHalf.Millis()) <= cfg.EvenPace.ToleranceRatio {
			awards = append(awards, PerformanceAward{
				Type:         rules.BonusEvenPace,
				Points:       cfg.EvenPace.Points,
				FirstHalfMs:  firstHalf.Millis(),
				SecondHalfMs: secondHalf.Millis(),
			})
		}
	}

	if cfg.FastFinish.Enabled {
		if finalPace, bulkPace, ok := finishKickPaces(finish, r.Splits); ok {
			if finalPace <= bulkPace*(1-cfg.FastFinish.ImprovementRatio) {
				awards = append(awards, PerformanceAward{
					Type:             rules.BonusFastFinish,
					Points:           cfg.FastFinish.Points,
					FinalPaceMsPerKm: finalPace,
					BulkPaceMsPerKm:  bulkPace,
				})
			}
		}
	}

	return awards
}

// raceHalves derives the two half times from the half split and the finish.
// Both halves must come out positive; a half split at or past the finish
// time is corrupt data and disables the half-based bonuses.
func raceHalves(finish racetime.TimeValue, splits result.Splits) (racetime.TimeValue, racetime.TimeValue, bool) {
	half, ok := splits.Get(racetime.CheckpointHalf)
	if !ok || half <= 0 || half >= finish {
		return 0, 0, false
	}
	return half, finish - half, true
}

// finishKickPaces computes the per-km pace of the final course segment and
// of the bulk of the race before it, using the latest late-race split
// available.
func finishKickPaces(finish racetime.TimeValue, splits result.Splits) (float64, float64, bool) {
	for _, cp := range fastFinishSegments {
		split, ok := splits.Get(cp)
		if !ok || split <= 0 || split >= finish {
			continue
		}
		bulkKm := racetime.CheckpointKm[cp]
		finalKm := racetime.MarathonKm - bulkKm

		finalPace := float64((finish - split).Millis()) / finalKm
		bulkPace := float64(split.Millis()) / bulkKm
		return finalPace, bulkPace, true
	}
	return 0, 0, false
}
