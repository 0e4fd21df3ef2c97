package model

import "time"

// UISession is an authenticated portal login session, identified by a
// cookie. It is the single durable home of the backend bearer token.
type UISession struct {
	ID       string `json:"id"`
	TeamName string `json:"team_name"`
	Admin    bool   `json:"admin"`

	// ExamSessionID is the competition session the team was scheduled into
	// at login time, or 0 if unscheduled. Lets the gate revoke every login
	// for a session the moment its window closes.
	ExamSessionID int `json:"exam_session_id"`

	Token     string    `json:"-"` // backend bearer token (never exposed)
	TokenExp  time.Time `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the portal session has expired.
func (s *UISession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsTokenExpired reports whether the backend token has expired. A zero
// TokenExp means the token carried no readable expiry claim.
func (s *UISession) IsTokenExpired() bool {
	return !s.TokenExp.IsZero() && time.Now().After(s.TokenExp)
}
