package scoring

import (
	"testing"

	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

func TestGapBonusWindows(t *testing.T) {
	windows := []rules.GapWindow{
		{MaxGapSeconds: 60, Points: 5},
		{MaxGapSeconds: 120, Points: 4},
		{MaxGapSeconds: 180, Points: 3},
		{MaxGapSeconds: 300, Points: 2},
		{MaxGapSeconds: 600, Points: 1},
	}
	leader := mustClock(t, "2:04:00")

	tests := []struct {
		name       string
		finish     string
		wantGap    int64
		wantPoints int
	}{
		{name: "leader gap zero takes top window", finish: "2:04:00", wantGap: 0, wantPoints: 5},
		{name: "exact window boundary", finish: "2:05:00", wantGap: 60, wantPoints: 5},
		{name: "one past boundary drops a window", finish: "2:05:01", wantGap: 61, wantPoints: 4},
		{name: "150s falls in third window", finish: "2:06:30", wantGap: 150, wantPoints: 3},
		{name: "gap floors sub-second remainder", finish: "2:05:00.900", wantGap: 60, wantPoints: 5},
		{name: "outside every window", finish: "2:20:00", wantGap: 960, wantPoints: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			finish := mustClock(t, tc.finish)
			gap, points := GapBonus(finish, leader, windows)
			if gap != tc.wantGap {
				t.Fatalf("gap: got=%d want=%d", gap, tc.wantGap)
			}
			if points != tc.wantPoints {
				t.Fatalf("points: got=%d want=%d", points, tc.wantPoints)
			}
		})
	}
}

func TestLeaderTime(t *testing.T) {
	dnf := withSplit(t, result.RaceResult{CompetitorID: "x"}, "half", "1:02:00")

	if _, ok := LeaderTime([]result.RaceResult{dnf, {CompetitorID: "y"}}); ok {
		t.Fatal("a race with no finishers has no leader")
	}

	results := []result.RaceResult{
		finished(t, "a", "2:05:00"),
		finished(t, "b", "2:04:00"),
		dnf,
	}
	leader, ok := LeaderTime(results)
	if !ok {
		t.Fatal("expected a leader")
	}
	if leader != mustClock(t, "2:04:00") {
		t.Fatalf("leader time: got=%s want=2:04:00", leader)
	}
}
