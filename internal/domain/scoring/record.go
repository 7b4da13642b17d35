package scoring

import (
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

// RecordBonuses evaluates the record flags of one result against the rule
// set's record configuration. Types are walked in precedence order (highest
// value first). A rejected record never pays. While confirmation is
// required and still pending, the bonus is withheld or awarded provisionally
// per the rule set's policy, with the pending status recorded either way.
// Under mutual exclusivity only the first flagged type in precedence order
// pays; later flagged types are recorded with zero points and marked
// superseded, which models a world record also breaking the course record
// with only the larger bonus paid.
//
// The engine never rewrites a previously emitted breakdown when a record's
// status changes later; re-scoring the result appends a corrected one.
func RecordBonuses(flags result.RecordFlags, rs rules.RuleSet) []RecordAward {
	var awards []RecordAward
	paid := false

	for _, rt := range rs.RecordPrecedence {
		if !recordFlagged(flags, rt) {
			continue
		}
		cfg, ok := rs.Records[rt]
		if !ok || !cfg.Enabled {
			continue
		}

		award := RecordAward{Type: rt, Status: flags.Status}

		switch {
		case rs.RecordExclusive && paid:
			award.Superseded = true
		case flags.Status == result.RecordStatusRejected:
			// flag left set after rejection: nothing to pay
		case rs.RequireConfirmation && flags.Status != result.RecordStatusConfirmed:
			award.Status = result.RecordStatusProvisional
			if rs.ProvisionalPolicy == rules.ProvisionalAward {
				award.Points = cfg.Points
			}
			paid = true
		default:
			award.Points = cfg.Points
			paid = true
		}

		awards = append(awards, award)
	}
	return awards
}

func recordFlagged(flags result.RecordFlags, rt rules.RecordType) bool {
	switch rt {
	case rules.RecordWorld:
		return flags.World
	case rules.RecordCourse:
		return flags.Course
	default:
		return false
	}
}
