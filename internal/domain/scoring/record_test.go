package scoring

import (
	"testing"

	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

func TestRecordBonusesExclusivePrecedence(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.RequireConfirmation = false
	rs.RecordExclusive = true

	flags := result.RecordFlags{World: true, Course: true, Status: result.RecordStatusConfirmed}
	awards := RecordBonuses(flags, rs)
	if len(awards) != 2 {
		t.Fatalf("both flagged types must be recorded, got %d", len(awards))
	}

	nonZero := 0
	for _, a := range awards {
		if a.Points > 0 {
			nonZero++
			if a.Type != rs.RecordPrecedence[0] {
				t.Fatalf("paying type must match head of precedence, got %s", a.Type)
			}
			if a.Superseded {
				t.Fatal("paying award must not be marked superseded")
			}
		} else if !a.Superseded {
			t.Fatalf("zero-point flagged award must be marked superseded: %+v", a)
		}
	}
	if nonZero != 1 {
		t.Fatalf("exactly one record bonus must pay under exclusivity, got %d", nonZero)
	}
}

func TestRecordBonusesNonExclusivePaysBoth(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.RequireConfirmation = false
	rs.RecordExclusive = false

	flags := result.RecordFlags{World: true, Course: true, Status: result.RecordStatusConfirmed}
	awards := RecordBonuses(flags, rs)
	total := 0
	for _, a := range awards {
		if a.Superseded {
			t.Fatalf("nothing is superseded without exclusivity: %+v", a)
		}
		total += a.Points
	}
	want := rs.Records[rules.RecordWorld].Points + rs.Records[rules.RecordCourse].Points
	if total != want {
		t.Fatalf("both bonuses should pay: got=%d want=%d", total, want)
	}
}

func TestRecordBonusesConfirmationWorkflow(t *testing.T) {
	tests := []struct {
		name       string
		policy     rules.ProvisionalPolicy
		status     result.RecordStatus
		wantPoints int
		wantStatus result.RecordStatus
	}{
		{
			name:       "withhold while provisional",
			policy:     rules.ProvisionalWithhold,
			status:     result.RecordStatusProvisional,
			wantPoints: 0,
			wantStatus: result.RecordStatusProvisional,
		},
		{
			name:       "award provisionally",
			policy:     rules.ProvisionalAward,
			status:     result.RecordStatusProvisional,
			wantPoints: 5,
			wantStatus: result.RecordStatusProvisional,
		},
		{
			name:       "unreviewed counts as provisional",
			policy:     rules.ProvisionalWithhold,
			status:     result.RecordStatusNone,
			wantPoints: 0,
			wantStatus: result.RecordStatusProvisional,
		},
		{
			name:       "confirmed pays in full",
			policy:     rules.ProvisionalWithhold,
			status:     result.RecordStatusConfirmed,
			wantPoints: 5,
			wantStatus: result.RecordStatusConfirmed,
		},
		{
			name:       "rejected never pays",
			policy:     rules.ProvisionalAward,
			status:     result.RecordStatusRejected,
			wantPoints: 0,
			wantStatus: result.RecordStatusRejected,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rs := rules.DefaultRuleSet()
			rs.RequireConfirmation = true
			rs.ProvisionalPolicy = tc.policy

			flags := result.RecordFlags{Course: true, Status: tc.status}
			awards := RecordBonuses(flags, rs)
			if len(awards) != 1 {
				t.Fatalf("expected one award entry, got %d", len(awards))
			}
			if awards[0].Points != tc.wantPoints {
				t.Fatalf("points: got=%d want=%d", awards[0].Points, tc.wantPoints)
			}
			if awards[0].Status != tc.wantStatus {
				t.Fatalf("status: got=%s want=%s", awards[0].Status, tc.wantStatus)
			}
		})
	}
}

func TestRecordBonusesRejectedDoesNotSupersede(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.RequireConfirmation = false
	rs.RecordExclusive = true

	// A rejected world record claim must not smother a standing course
	// record: the course bonus still pays.
	flags := result.RecordFlags{World: true, Course: true, Status: result.RecordStatusRejected}
	awards := RecordBonuses(flags, rs)
	if len(awards) != 2 {
		t.Fatalf("expected two entries, got %d", len(awards))
	}
	for _, a := range awards {
		if a.Points != 0 {
			t.Fatalf("rejected status applies to the result's claim as a whole: %+v", a)
		}
	}
}

func TestRecordBonusesDisabledTypeSkipped(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.RequireConfirmation = false
	rs.RecordExclusive = true
	rs.Records[rules.RecordWorld] = rules.BonusConfig{Enabled: false, Points: 10}

	flags := result.RecordFlags{World: true, Course: true, Status: result.RecordStatusConfirmed}
	awards := RecordBonuses(flags, rs)
	if len(awards) != 1 {
		t.Fatalf("disabled type must not appear, got %d entries", len(awards))
	}
	if awards[0].Type != rules.RecordCourse || awards[0].Points != rs.Records[rules.RecordCourse].Points {
		t.Fatalf("course bonus should pay when world is disabled: %+v", awards[0])
	}
}

func TestRecordBonusesNoFlags(t *testing.T) {
	rs := rules.DefaultRuleSet()
	if awards := RecordBonuses(result.RecordFlags{Status: result.RecordStatusNone}, rs); awards != nil {
		t.Fatalf("no flags should produce no entries, got %+v", awards)
	}
}
