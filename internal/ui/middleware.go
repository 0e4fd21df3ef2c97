package ui

import (
	"context"
	"net/http"

	"github.com/csolympiad/portal/pkg/model"
)

// Context keys for session data.
type contextKey string

const (
	sessionContextKey contextKey = "session"
)

// SessionFromContext retrieves the login session from the request context.
func SessionFromContext(ctx context.Context) *model.UISession {
	sess, _ := ctx.Value(sessionContextKey).(*model.UISession)
	return sess
}

// AuthMiddleware validates the session and adds it to the request context.
// If no valid session exists, it redirects to the login page.
func (ui *UI) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := ui.sessions.GetSessionFromRequest(r)
		if err != nil {
			ui.logger.Error("session lookup failed", "error", err)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if sess == nil {
			ClearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures the logged-in principal is a supervisor. Anyone
// else is sent back to the login page before any admin content renders.
// Must be used after AuthMiddleware.
func (ui *UI) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil || !sess.Admin {
			ClearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
