package postgres

import (
	"database/sql"
	"time"
)

type raceResultTableModel struct {
	ID           int64         `db:"id"`
	RaceID       string        `db:"race_id"`
	CompetitorID string        `db:"competitor_id"`
	FinishMs     sql.NullInt64 `db:"finish_ms"`
	Splits       []byte        `db:"splits"`
	WorldRecord  bool          `db:"world_record"`
	CourseRecord bool          `db:"course_record"`
	RecordStatus string        `db:"record_status"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
	DeletedAt    *time.Time    `db:"deleted_at"`
}

type raceResultInsertModel struct {
	RaceID       string `db:"race_id"`
	CompetitorID string `db:"competitor_id"`
	FinishMs     *int64 `db:"finish_ms"`
	Splits       []byte `db:"splits"`
	WorldRecord  bool   `db:"world_record"`
	CourseRecord bool   `db:"course_record"`
	RecordStatus string `db:"record_status"`
}
