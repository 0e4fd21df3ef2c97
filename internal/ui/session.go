package ui

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/csolympiad/portal/internal/store"
	"github.com/csolympiad/portal/pkg/model"
)

const (
	// SessionCookieName is the name of the login session cookie.
	SessionCookieName = "portal_session"
	// DefaultSessionDuration is the session lifetime when no TTL is configured.
	DefaultSessionDuration = 24 * time.Hour
)

// SessionManager handles login session creation, validation, and cleanup.
// The backend bearer token lives only in the store, keyed by the opaque
// cookie value; it is never sent to the browser.
type SessionManager struct {
	store store.Store
	ttl   time.Duration
}

// NewSessionManager creates a session manager with the given session TTL.
func NewSessionManager(st store.Store, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionDuration
	}
	return &SessionManager{store: st, ttl: ttl}
}

// CreateSession creates a new login session for an authenticated team.
func (sm *SessionManager) CreateSession(ctx context.Context, teamName string, admin bool, examSessionID int, token string, tokenExp time.Time) (*model.UISession, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	sess := &model.UISession{
		ID:            sessionID,
		TeamName:      teamName,
		Admin:         admin,
		ExamSessionID: examSessionID,
		Token:         token,
		TokenExp:      tokenExp,
		CreatedAt:     now,
		ExpiresAt:     now.Add(sm.ttl),
	}

	// Limit session expiry to token expiry if the token expires sooner.
	if !tokenExp.IsZero() && tokenExp.Before(sess.ExpiresAt) {
		sess.ExpiresAt = tokenExp
	}

	if err := sm.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return sess, nil
}

// GetSession retrieves a session by ID from the store.
// Returns nil if the session doesn't exist or has expired.
func (sm *SessionManager) GetSession(ctx context.Context, sessionID string) (*model.UISession, error) {
	sess, err := sm.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	// Check if session or token has expired.
	if sess.IsExpired() || sess.IsTokenExpired() {
		_ = sm.store.DeleteSession(ctx, sessionID)
		return nil, nil
	}

	return sess, nil
}

// DeleteSession removes a session and its drafts from the store.
func (sm *SessionManager) DeleteSession(ctx context.Context, sessionID string) error {
	_, _ = sm.store.DeleteDrafts(ctx, sessionID)
	return sm.store.DeleteSession(ctx, sessionID)
}

// CleanupExpiredSessions removes all expired sessions from the store.
func (sm *SessionManager) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return sm.store.DeleteExpiredSessions(ctx)
}

// GetSessionFromRequest extracts the session from the request cookie.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) (*model.UISession, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil // No cookie, no session
	}
	return sm.GetSession(r.Context(), cookie.Value)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, sess *model.UISession, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  sess.ExpiresAt,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateSessionID generates a cryptographically secure random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}
