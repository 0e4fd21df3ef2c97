package ui

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenInfo is what the portal reads out of a backend bearer token: the
// principal name, the admin flag, and the expiry. The signature is not
// verified here; only the backend holds the signing key, and the backend
// re-checks the token on every API call. The claims just drive UI shape
// (admin navigation, session lifetime).
type TokenInfo struct {
	Name   string
	Admin  bool
	Expiry time.Time
}

// ParseToken decodes the claims of a backend JWT without verifying it.
// A token that cannot be parsed yields a zero TokenInfo.
func ParseToken(tokenString string) TokenInfo {
	var info TokenInfo

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return info
	}

	if sub, ok := claims["sub"].(string); ok {
		info.Name = sub
	}
	if admin, ok := claims["is_admin"].(bool); ok {
		info.Admin = admin
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.Expiry = time.Unix(int64(exp), 0)
	}

	return info
}
