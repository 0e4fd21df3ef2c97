package ui

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestLoginFormValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    loginForm
		wantErr bool
	}{
		{"valid", loginForm{Name: "B1", Password: "secret"}, false},
		{"missing name", loginForm{Password: "secret"}, true},
		{"missing password", loginForm{Name: "B1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionFormEndMustFollowStart(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	valid := sessionForm{Name: "Morning", Start: start, End: start.Add(2 * time.Hour)}
	if err := validate.Struct(valid); err != nil {
		t.Errorf("valid session rejected: %v", err)
	}

	backwards := sessionForm{Name: "Morning", Start: start, End: start.Add(-time.Hour)}
	if err := validate.Struct(backwards); err == nil {
		t.Error("session ending before it starts was accepted")
	}
}

func TestTeamFormPasswordLength(t *testing.T) {
	if err := validate.Struct(teamForm{Name: "B1", Password: "abc"}); err == nil {
		t.Error("3-character password was accepted")
	}
	if err := validate.Struct(teamForm{Name: "B1", Password: "abcd"}); err != nil {
		t.Errorf("4-character password rejected: %v", err)
	}
}

func TestParseLocalTime(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-03-14T10:00", false},
		{"2026-03-14T10:00:30", false},
		{"2026-03-14T10:00:00Z", false},
		{"", true},
		{"tomorrow", true},
	}
	for _, tt := range tests {
		_, err := parseLocalTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLocalTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseSessionForm(t *testing.T) {
	body := url.Values{
		"name":       {"Morning Block"},
		"start_time": {"2026-03-14T10:00"},
		"end_time":   {"2026-03-14T12:00"},
	}
	r := httptest.NewRequest("POST", "/admin/sessions", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := parseSessionForm(r)
	if err != nil {
		t.Fatalf("parseSessionForm: %v", err)
	}
	if form.Name != "Morning Block" {
		t.Errorf("Name = %q, want Morning Block", form.Name)
	}
	if !form.End.After(form.Start) {
		t.Error("End is not after Start")
	}
	if got := form.End.Sub(form.Start); got != 2*time.Hour {
		t.Errorf("duration = %v, want 2h", got)
	}
}

func TestFormErrorMessages(t *testing.T) {
	err := validate.Struct(loginForm{})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := formError(err)
	if !strings.Contains(msg, "Name is required") || !strings.Contains(msg, "Password is required") {
		t.Errorf("formError = %q, want both required-field messages", msg)
	}
}
