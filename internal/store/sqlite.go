package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/csolympiad/portal/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- UI session operations ---

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *model.UISession) error {
	s.logger.Debug("sql", "op", "insert", "table", "ui_sessions", "id", sess.ID)

	admin := 0
	if sess.Admin {
		admin = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ui_sessions (id, team_name, admin, exam_session_id, token, token_exp, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.TeamName, admin, sess.ExamSessionID,
		sess.Token, sess.TokenExp.Unix(),
		sess.CreatedAt.Unix(), sess.ExpiresAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.UISession, error) {
	s.logger.Debug("sql", "op", "select", "table", "ui_sessions", "id", id)

	var sess model.UISession
	var admin int
	var tokenExp, createdAt, expiresAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, team_name, admin, exam_session_id, token, token_exp, created_at, expires_at
		 FROM ui_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.TeamName, &admin, &sess.ExamSessionID,
		&sess.Token, &tokenExp, &createdAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess.Admin = admin != 0
	sess.TokenExp = time.Unix(tokenExp, 0)
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.ExpiresAt = time.Unix(expiresAt, 0)

	return &sess, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "ui_sessions", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM ui_sessions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.logger.Debug("sql", "op", "delete_expired", "table", "ui_sessions")

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM ui_sessions WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQLiteStore) DeleteSessionsByTeam(ctx context.Context, teamName string) (int64, error) {
	s.logger.Debug("sql", "op", "delete_by_team", "table", "ui_sessions", "team", teamName)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM ui_sessions WHERE team_name = ?`, teamName)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteSessionsByExamSession revokes every login tied to a competition
// session. Admin logins are kept so operators stay signed in after the
// window closes.
func (s *SQLiteStore) DeleteSessionsByExamSession(ctx context.Context, examSessionID int) (int64, error) {
	s.logger.Debug("sql", "op", "delete_by_exam_session", "table", "ui_sessions", "exam_session_id", examSessionID)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM ui_sessions WHERE exam_session_id = ? AND admin = 0`, examSessionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// --- Draft operations ---

// SaveDraft inserts or overwrites the draft for one question.
func (s *SQLiteStore) SaveDraft(ctx context.Context, d *model.Draft) error {
	s.logger.Debug("sql", "op", "upsert", "table", "drafts", "session_id", d.SessionID, "question_num", d.QuestionNum)

	updatedAt := d.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (session_id, question_num, code, last_output, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, question_num) DO UPDATE SET
			code = excluded.code,
			last_output = excluded.last_output,
			updated_at = excluded.updated_at`,
		d.SessionID, d.QuestionNum, d.Code, d.LastOutput,
		updatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) GetDraft(ctx context.Context, sessionID string, questionNum int) (*model.Draft, error) {
	s.logger.Debug("sql", "op", "select", "table", "drafts", "session_id", sessionID, "question_num", questionNum)

	var d model.Draft
	var updatedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, question_num, code, last_output, updated_at
		 FROM drafts WHERE session_id = ? AND question_num = ?`,
		sessionID, questionNum,
	).Scan(&d.SessionID, &d.QuestionNum, &d.Code, &d.LastOutput, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &d, nil
}

func (s *SQLiteStore) ListDrafts(ctx context.Context, sessionID string) ([]*model.Draft, error) {
	s.logger.Debug("sql", "op", "list", "table", "drafts", "session_id", sessionID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, question_num, code, last_output, updated_at
		 FROM drafts WHERE session_id = ? ORDER BY question_num`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*model.Draft
	for rows.Next() {
		var d model.Draft
		var updatedAt string
		if err := rows.Scan(&d.SessionID, &d.QuestionNum, &d.Code, &d.LastOutput, &updatedAt); err != nil {
			return nil, err
		}
		d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

func (s *SQLiteStore) DeleteDrafts(ctx context.Context, sessionID string) (int64, error) {
	s.logger.Debug("sql", "op", "delete", "table", "drafts", "session_id", sessionID)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM drafts WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
