package model

// LoginRequest is the credential payload sent to the backend login route.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	IsTeam   bool   `json:"is_team"`
}

// Token is the bearer credential issued by the backend on login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ServerTime is the backend's authoritative clock reading. Session timing is
// always computed against this, never the local wall clock.
type ServerTime struct {
	Now string `json:"now"`
}
