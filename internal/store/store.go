package store

import (
	"context"

	"github.com/csolympiad/portal/pkg/model"
)

// Store defines the portal's local persistence layer: login sessions and
// per-question work drafts. Competition data itself lives in the scoring
// backend and is never stored here.
type Store interface {
	// UI session operations
	CreateSession(ctx context.Context, sess *model.UISession) error
	GetSession(ctx context.Context, id string) (*model.UISession, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	DeleteSessionsByTeam(ctx context.Context, teamName string) (int64, error)
	DeleteSessionsByExamSession(ctx context.Context, examSessionID int) (int64, error)

	// Draft operations
	SaveDraft(ctx context.Context, d *model.Draft) error
	GetDraft(ctx context.Context, sessionID string, questionNum int) (*model.Draft, error)
	ListDrafts(ctx context.Context, sessionID string) ([]*model.Draft, error)
	DeleteDrafts(ctx context.Context, sessionID string) (int64, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
