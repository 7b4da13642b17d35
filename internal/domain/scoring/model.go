package scoring

import (
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

// PerformanceAward records one split-derived bonus with the raw values that
// triggered it, so a published score stays auditable.
type PerformanceAward struct {
	Type   rules.PerformanceBonusType `json:"type"`
	Points int                        `json:"points"`

	FirstHalfMs  int64 `json:"first_half_ms,omitempty"`
	SecondHalfMs int64 `json:"second_half_ms,omitempty"`

	FinalPaceMsPerKm float64 `json:"final_pace_ms_per_km,omitempty"`
	BulkPaceMsPerKm  float64 `json:"bulk_pace_ms_per_km,omitempty"`
}

// RecordAward records one record bonus evaluation. Superseded entries carry
// zero points and exist so the breakdown explains why a flagged record was
// not paid.
type RecordAward struct {
	Type       rules.RecordType    `json:"type"`
	Points     int                 `json:"points"`
	Status     result.RecordStatus `json:"status"`
	Superseded bool                `json:"superseded,omitempty"`
}

// Breakdown is the itemized score of one competitor in one race under one
// rule-set version. It is immutable once produced; re-scoring under another
// version appends a new row keyed (RaceID, CompetitorID, RuleSetVersion)
// rather than mutating this one.
type Breakdown struct {
	RaceID         string        `json:"race_id"`
	CompetitorID   string        `json:"competitor_id"`
	RuleSetVersion int           `json:"rule_set_version"`
	Classification result.Status `json:"classification"`

	Placement       *int `json:"placement,omitempty"`
	PlacementPoints int  `json:"placement_points"`

	GapSeconds *int64 `json:"gap_seconds,omitempty"`
	GapPoints  int    `json:"gap_points"`

	Performance []PerformanceAward `json:"performance_bonuses,omitempty"`
	Records     []RecordAward      `json:"record_bonuses,omitempty"`

	TotalPoints int `json:"total_points"`
}
