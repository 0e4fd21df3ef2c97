package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for all portal tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	// Login sessions for the web UI
	`CREATE TABLE IF NOT EXISTS ui_sessions (
		id              TEXT PRIMARY KEY,
		team_name       TEXT NOT NULL,
		admin           INTEGER NOT NULL DEFAULT 0,
		exam_session_id INTEGER NOT NULL DEFAULT 0,
		token           TEXT NOT NULL,
		token_exp       INTEGER NOT NULL,
		created_at      INTEGER NOT NULL,
		expires_at      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ui_sessions_expires_at ON ui_sessions(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_ui_sessions_team_name ON ui_sessions(team_name)`,
	`CREATE INDEX IF NOT EXISTS idx_ui_sessions_exam_session ON ui_sessions(exam_session_id)`,

	// In-progress code per question, keyed by login session
	`CREATE TABLE IF NOT EXISTS drafts (
		session_id   TEXT NOT NULL,
		question_num INTEGER NOT NULL,
		code         TEXT NOT NULL DEFAULT '',
		last_output  TEXT NOT NULL DEFAULT '',
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (session_id, question_num)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_session_id ON drafts(session_id)`,
}

// alterStatements are column additions that need special handling since
// SQLite doesn't support IF NOT EXISTS for ALTER TABLE ADD COLUMN.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string // Optional index to create after column is added
}{
	{
		table:    "ui_sessions",
		column:   "exam_session_id",
		alterSQL: "ALTER TABLE ui_sessions ADD COLUMN exam_session_id INTEGER NOT NULL DEFAULT 0",
		indexSQL: "CREATE INDEX IF NOT EXISTS idx_ui_sessions_exam_session ON ui_sessions(exam_session_id)",
	},
}

// migrate executes all schema DDL statements and alter migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// Execute ALTER TABLE statements idempotently.
	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil // Column already exists
		}
	}

	_, err = db.ExecContext(ctx, alterSQL)
	return err
}
