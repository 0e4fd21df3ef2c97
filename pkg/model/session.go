package model

import "time"

// Session is a scheduled competition time window with assigned teams.
// (Distinct from UISession, the portal's browser login session.)
type Session struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Teams     []int     `json:"teams,omitempty"`
}

// Started reports whether the session window has opened as of now.
func (s *Session) Started(now time.Time) bool {
	return !now.Before(s.StartTime)
}

// Ended reports whether the session window has closed as of now.
func (s *Session) Ended(now time.Time) bool {
	return !now.Before(s.EndTime)
}

// Duration returns the length of the session window.
func (s *Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
