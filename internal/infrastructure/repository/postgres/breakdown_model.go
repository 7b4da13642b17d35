package postgres

import (
	"database/sql"
	"time"
)

type breakdownTableModel struct {
	ID              int64          `db:"id"`
	RaceID          string         `db:"race_id"`
	CompetitorID    string         `db:"competitor_id"`
	RuleSetVersion  int            `db:"rule_set_version"`
	Classification  string         `db:"classification"`
	Placement       sql.NullInt64  `db:"placement"`
	PlacementPoints int            `db:"placement_points"`
	GapSeconds      sql.NullInt64  `db:"gap_seconds"`
	GapPoints       int            `db:"gap_points"`
	Performance     []byte         `db:"performance_bonuses"`
	Records         []byte         `db:"record_bonuses"`
	TotalPoints     int            `db:"total_points"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type breakdownInsertModel struct {
	RaceID          string `db:"race_id"`
	CompetitorID    string `db:"competitor_id"`
	RuleSetVersion  int    `db:"rule_set_version"`
	Classification  string `db:"classification"`
	Placement       *int64 `db:"placement"`
	PlacementPoints int    `db:"placement_points"`
	GapSeconds      *int64 `db:"gap_seconds"`
	GapPoints       int    `db:"gap_points"`
	Performance     []byte `db:"performance_bonuses"`
	Records         []byte `db:"record_bonuses"`
	TotalPoints     int    `db:"total_points"`
}
