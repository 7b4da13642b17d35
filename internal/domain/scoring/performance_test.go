package scoring

import (
	"testing"

	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

func awardByType(awards []PerformanceAward, bt rules.PerformanceBonusType) (PerformanceAward, bool) {
	for _, a := range awards {
		if a.Type == bt {
			return a, true
		}
	}
	return PerformanceAward{}, false
}

func TestNegativeSplitAndEvenPaceIndependent(t *testing.T) {
	cfg := rules.DefaultRuleSet().Performance
	cfg.EvenPace.ToleranceRatio = 0.01

	// First half 1:02:00, second half 1:01:30: faster second half and the
	// halves differ by under 1%, so both bonuses apply.
	r := withSplit(t, finished(t, "a", "2:03:30"), racetime.CheckpointHalf, "1:02:00")
	awards := PerformanceBonuses(r, cfg)

	neg, ok := awardByType(awards, rules.BonusNegativeSplit)
	if !ok {
		t.Fatal("negative split should be awarded")
	}
	if neg.FirstHalfMs != mustClock(t, "1:02:00").Millis() || neg.SecondHalfMs != mustClock(t, "1:01:30").Millis() {
		t.Fatalf("negative split raw values wrong: %+v", neg)
	}

	if _, ok := awardByType(awards, rules.BonusEvenPace); !ok {
		t.Fatal("even pace should be awarded independently of negative split")
	}
}

func TestEvenPaceToleranceBoundary(t *testing.T) {
	cfg := rules.DefaultRuleSet().Performance
	cfg.NegativeSplit.Enabled = false
	cfg.FastFinish.Enabled = false
	cfg.EvenPace.ToleranceRatio = 0.005

	// 1:02:00 halves: tolerance 0.005 allows an 18.6s difference.
	within := withSplit(t, finished(t, "a", "2:04:15"), racetime.CheckpointHalf, "1:02:00")
	if awards := PerformanceBonuses(within, cfg); len(awards) != 1 {
		t.Fatalf("15s positive split within tolerance should earn even pace, got %+v", awards)
	}

	outside := withSplit(t, finished(t, "a", "2:04:30"), racetime.CheckpointHalf, "1:02:00")
	if awards := PerformanceBonuses(outside, cfg); len(awards) != 0 {
		t.Fatalf("30s positive split outside tolerance should earn nothing, got %+v", awards)
	}
}

func TestFastFinishKick(t *testing.T) {
	cfg := rules.DefaultRuleSet().Performance
	cfg.NegativeSplit.Enabled = false
	cfg.EvenPace.Enabled = false
	cfg.FastFinish.ImprovementRatio = 0.05

	// 40k in 2:00:00 is a 180000 ms/km bulk pace. Finishing the last
	// 2.195 km in 6:00 is about 164008 ms/km, an 8.9% improvement.
	kick := withSplit(t, finished(t, "a", "2:06:00"), racetime.Checkpoint40K, "2:00:00")
	awards := PerformanceBonuses(kick, cfg)
	award, ok := awardByType(awards, rules.BonusFastFinish)
	if !ok {
		t.Fatalf("fast finish should be awarded, got %+v", awards)
	}
	if award.FinalPaceMsPerKm >= award.BulkPaceMsPerKm {
		t.Fatalf("recorded paces inconsistent: %+v", award)
	}

	// Same bulk pace but a 6:35 finish segment is only ~0.1% faster.
	flat := withSplit(t, finished(t, "a", "2:06:35"), racetime.Checkpoint40K, "2:00:00")
	if awards := PerformanceBonuses(flat, cfg); len(awards) != 0 {
		t.Fatalf("marginal kick should not be awarded, got %+v", awards)
	}
}

func TestFastFinishFallsBackTo35K(t *testing.T) {
	cfg := rules.DefaultRuleSet().Performance
	cfg.NegativeSplit.Enabled = false
	cfg.EvenPace.Enabled = false
	cfg.FastFinish.ImprovementRatio = 0.05

	// No 40k split: the 35k split anchors a 7.195 km final segment.
	// 35k in 1:45:00 is 180000 ms/km; the final segment in 19:30 is about
	// 162613 ms/km.
	r := withSplit(t, finished(t, "a", "2:04:30"), racetime.Checkpoint35K, "1:45:00")
	awards := PerformanceBonuses(r, cfg)
	if _, ok := awardByType(awards, rules.BonusFastFinish); !ok {
		t.Fatalf("fast finish should fall back to the 35k split, got %+v", awards)
	}
}

func TestPerformanceBonusesDegradeOnMissingData(t *testing.T) {
	cfg := rules.DefaultRuleSet().Performance

	// No splits at all: nothing is applicable, nothing errors.
	if awards := PerformanceBonuses(finished(t, "a", "2:04:00"), cfg); len(awards) != 0 {
		t.Fatalf("no splits should disable every bonus, got %+v", awards)
	}

	// A half split recorded at or past the finish is corrupt; half-based
	// bonuses stay off.
	corrupt := withSplit(t, finished(t, "a", "2:04:00"), racetime.CheckpointHalf, "2:04:00")
	if awards := PerformanceBonuses(corrupt, cfg); len(awards) != 0 {
		t.Fatalf("corrupt half split should disable half bonuses, got %+v", awards)
	}

	// DNF rows earn nothing regardless of splits.
	dnf := withSplit(t, result.RaceResult{CompetitorID: "x"}, racetime.CheckpointHalf, "1:00:00")
	if awards := PerformanceBonuses(dnf, cfg); awards != nil {
		t.Fatalf("DNF should earn no performance bonuses, got %+v", awards)
	}
}

func TestPerformanceBonusesRespectToggles(t *testing.T) {
	cfg := rules.DefaultRuleSet().Performance
	cfg.NegativeSplit.Enabled = false
	cfg.EvenPace.Enabled = false
	cfg.FastFinish.Enabled = false

	r := withSplit(t, finished(t, "a", "2:03:30"), racetime.CheckpointHalf, "1:02:00")
	r = withSplit(t, r, racetime.Checkpoint40K, "1:57:00")
	if awards := PerformanceBonuses(r, cfg); len(awards) != 0 {
		t.Fatalf("disabled bonuses must not be awarded, got %+v", awards)
	}
}
