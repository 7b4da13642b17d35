package postgres

import "time"

type ruleSetTableModel struct {
	ID         int64      `db:"id"`
	Version    int        `db:"version"`
	Definition []byte     `db:"definition"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type ruleSetInsertModel struct {
	Version    int    `db:"version"`
	Definition []byte `db:"definition"`
}
