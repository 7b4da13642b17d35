package memory

import (
	"fmt"

	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

const (
	RaceIDValencia2025 = "valencia-marathon-2025"
	RaceIDBerlin2025   = "berlin-marathon-2025"
)

// SeedResults returns a small realistic fixture: two races with finishers,
// split coverage good enough to exercise the performance bonuses, a record
// claim, and the usual DNF/DNS stragglers.
func SeedResults() []result.RaceResult {
	return []result.RaceResult{
		{
			RaceID:       RaceIDValencia2025,
			CompetitorID: "kipruto-a",
			Finish:       clockPtr("2:03:15"),
			Splits: result.Splits{
				racetime.CheckpointHalf: clock("1:02:10"),
				racetime.Checkpoint35K:  clock("1:42:30"),
				racetime.Checkpoint40K:  clock("1:56:40"),
			},
			Records: result.RecordFlags{
				Course: true,
				Status: result.RecordStatusConfirmed,
			},
		},
		{
			RaceID:       RaceIDValencia2025,
			CompetitorID: "mutiso-b",
			Finish:       clockPtr("2:04:41"),
			Splits: result.Splits{
				racetime.CheckpointHalf: clock("1:01:55"),
				racetime.Checkpoint35K:  clock("1:43:05"),
				racetime.Checkpoint40K:  clock("1:58:02"),
			},
		},
		{
			RaceID:       RaceIDValencia2025,
			CompetitorID: "okello-c",
			Finish:       clockPtr("2:06:30"),
			Splits: result.Splits{
				racetime.CheckpointHalf: clock("1:03:05"),
			},
		},
		{
			RaceID:       RaceIDValencia2025,
			CompetitorID: "santos-d",
			Splits: result.Splits{
				racetime.Checkpoint30K: clock("1:31:20"),
			},
		},
		{
			RaceID:       RaceIDValencia2025,
			CompetitorID: "tanaka-e",
		},
		{
			RaceID:       RaceIDBerlin2025,
			CompetitorID: "bekele-f",
			Finish:       clockPtr("2:02:58"),
			Splits: result.Splits{
				racetime.CheckpointHalf: clock("1:01:30"),
				racetime.Checkpoint40K:  clock("1:56:21"),
			},
			Records: result.RecordFlags{
				World:  true,
				Course: true,
				Status: result.RecordStatusProvisional,
			},
		},
		{
			RaceID:       RaceIDBerlin2025,
			CompetitorID: "girma-g",
			Finish:       clockPtr("2:05:12"),
			Splits: result.Splits{
				racetime.CheckpointHalf: clock("1:02:40"),
			},
		},
		{
			RaceID:       RaceIDBerlin2025,
			CompetitorID: "haile-h",
			Finish:       clockPtr("2:05:12"),
			Splits: result.Splits{
				racetime.CheckpointHalf: clock("1:02:44"),
			},
		},
	}
}

func SeedRuleSets() []rules.RuleSet {
	return []rules.RuleSet{rules.DefaultRuleSet()}
}

func clock(s string) racetime.TimeValue {
	value, ok := racetime.ParseClock(s)
	if !ok {
		panic(fmt.Sprintf("invalid seed clock value %q", s))
	}
	return value
}

func clockPtr(s string) *racetime.TimeValue {
	value := clock(s)
	return &value
}
