package rules

// RecordType names a record category a performance can break.
type RecordType string

const (
	RecordWorld  RecordType = "world"
	RecordCourse RecordType = "course"
)

// KnownRecordTypes lists every record type the engine understands.
var KnownRecordTypes = map[RecordType]struct{}{
	RecordWorld:  {},
	RecordCourse: {},
}

// ProvisionalPolicy selects what an unconfirmed record bonus is worth while
// confirmation is pending.
type ProvisionalPolicy string

const (
	ProvisionalWithhold ProvisionalPolicy = "withhold"
	ProvisionalAward    ProvisionalPolicy = "award"
)

// PerformanceBonusType names a split-derived bonus.
type PerformanceBonusType string

const (
	BonusNegativeSplit PerformanceBonusType = "negative_split"
	BonusEvenPace      PerformanceBonusType = "even_pace"
	BonusFastFinish    PerformanceBonusType = "fast_finish"
)

// GapWindow awards points to finishers within MaxGapSeconds of the leader.
// Windows are evaluated in the supplied ascending order, first match wins.
type GapWindow struct {
	MaxGapSeconds int64 `json:"max_gap_seconds" validate:"gte=0"`
	Points        int   `json:"points" validate:"gte=0"`
}

// BonusConfig is the enabled/points pair shared by the simpler bonuses.
type BonusConfig struct {
	Enabled bool `json:"enabled"`
	Points  int  `json:"points" validate:"gte=0"`
}

// EvenPaceConfig extends BonusConfig with the half-difference tolerance.
type EvenPaceConfig struct {
	Enabled        bool    `json:"enabled"`
	Points         int     `json:"points" validate:"gte=0"`
	ToleranceRatio float64 `json:"tolerance_ratio" validate:"gte=0,lt=1"`
}

// FastFinishConfig extends BonusConfig with the required pace improvement of
// the final segment over the bulk of the race.
type FastFinishConfig struct {
	Enabled          bool    `json:"enabled"`
	Points           int     `json:"points" validate:"gte=0"`
	ImprovementRatio float64 `json:"improvement_ratio" validate:"gte=0,lt=1"`
}

// PerformanceConfig groups the split-derived bonus settings.
type PerformanceConfig struct {
	NegativeSplit BonusConfig      `json:"negative_split"`
	EvenPace      EvenPaceConfig   `json:"even_pace"`
	FastFinish    FastFinishConfig `json:"fast_finish"`
}

// RuleSet is one immutable, versioned scoring configuration. Published
// versions are append-only: a configuration change is always a new version
// number, which is what keeps historical recalculation reproducible.
type RuleSet struct {
	Version             int                        `json:"version" validate:"gte=1"`
	PlacementPoints     []int                      `json:"placement_points" validate:"min=1,dive,gte=0"`
	MaxScoredPlace      int                        `json:"max_scored_place" validate:"gte=1"`
	GapWindows          []GapWindow                `json:"time_gap_windows" validate:"dive"`
	Performance         PerformanceConfig          `json:"performance_bonuses"`
	Records             map[RecordType]BonusConfig `json:"record_bonuses"`
	RecordExclusive     bool                       `json:"record_bonus_mutually_exclusive"`
	RecordPrecedence    []RecordType               `json:"record_bonus_precedence"`
	RequireConfirmation bool                       `json:"record_requires_confirmation"`
	ProvisionalPolicy   ProvisionalPolicy          `json:"record_provisional_points_policy" validate:"oneof=withhold award"`
}

// DefaultRuleSet returns the launch configuration, version 1.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Version:         1,
		PlacementPoints: []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1},
		MaxScoredPlace:  10,
		GapWindows: []GapWindow{
			{MaxGapSeconds: 60, Points: 5},
			{MaxGapSeconds: 120, Points: 4},
			{MaxGapSeconds: 180, Points: 3},
			{MaxGapSeconds: 300, Points: 2},
			{MaxGapSeconds: 600, Points: 1},
		},
		Performance: PerformanceConfig{
			NegativeSplit: BonusConfig{Enabled: true, Points: 3},
			EvenPace:      EvenPaceConfig{Enabled: true, Points: 2, ToleranceRatio: 0.005},
			FastFinish:    FastFinishConfig{Enabled: true, Points: 4, ImprovementRatio: 0.05},
		},
		Records: map[RecordType]BonusConfig{
			RecordWorld:  {Enabled: true, Points: 10},
			RecordCourse: {Enabled: true, Points: 5},
		},
		RecordExclusive:     true,
		RecordPrecedence:    []RecordType{RecordWorld, RecordCourse},
		RequireConfirmation: true,
		ProvisionalPolicy:   ProvisionalWithhold,
	}
}
