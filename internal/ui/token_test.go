package ui

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestParseToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub":      "B1",
		"is_admin": false,
		"exp":      exp.Unix(),
	})

	info := ParseToken(raw)
	if info.Name != "B1" {
		t.Errorf("Name = %q, want B1", info.Name)
	}
	if info.Admin {
		t.Error("Admin = true, want false")
	}
	if !info.Expiry.Equal(exp) {
		t.Errorf("Expiry = %v, want %v", info.Expiry, exp)
	}
}

func TestParseTokenAdmin(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"sub":      "root",
		"is_admin": true,
	})

	info := ParseToken(raw)
	if !info.Admin {
		t.Error("Admin = false, want true")
	}
	if !info.Expiry.IsZero() {
		t.Errorf("Expiry = %v, want zero for token without exp", info.Expiry)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b", "a.b.c"} {
		info := ParseToken(raw)
		if info.Name != "" || info.Admin || !info.Expiry.IsZero() {
			t.Errorf("ParseToken(%q) = %+v, want zero TokenInfo", raw, info)
		}
	}
}
