package model

// Team is a participant unit: the login principal for the portal.
// SessionID is nil when the team has not been scheduled yet.
type Team struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Password  string   `json:"password,omitempty"`
	SessionID *int     `json:"session_id"`
	Session   *Session `json:"session,omitempty"`
}

// Scheduled reports whether the team has been assigned a session.
func (t *Team) Scheduled() bool {
	return t.SessionID != nil || t.Session != nil
}

// TeamMember is a single roster entry for a team.
type TeamMember struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TeamScore is a scored result row for the supervisor score table.
type TeamScore struct {
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
}
