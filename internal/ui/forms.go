package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is shared across handlers; the validator caches struct metadata.
var validate = validator.New()

// loginForm is the login page submission.
type loginForm struct {
	Name     string `validate:"required"`
	Password string `validate:"required"`
}

// submitForm is a code submission for one question.
type submitForm struct {
	Code string `validate:"required"`
}

// memberForm adds one person to the team roster.
type memberForm struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
}

// teamForm creates or renames a team.
type teamForm struct {
	Name     string `validate:"required,max=100"`
	Password string `validate:"required,min=4"`
}

// sessionForm schedules a competition session.
type sessionForm struct {
	Name  string    `validate:"required,max=200"`
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required,gtfield=Start"`
}

// problemForm edits a question's authoring fields.
type problemForm struct {
	Prompt      string `validate:"required"`
	StarterCode string
	TestCases   string `validate:"required"`
	DemoCases   string
}

// parseSessionForm reads a session form, accepting datetime-local inputs.
func parseSessionForm(r *http.Request) (sessionForm, error) {
	f := sessionForm{Name: strings.TrimSpace(r.FormValue("name"))}

	var err error
	f.Start, err = parseLocalTime(r.FormValue("start_time"))
	if err != nil {
		return f, fmt.Errorf("start time: %w", err)
	}
	f.End, err = parseLocalTime(r.FormValue("end_time"))
	if err != nil {
		return f, fmt.Errorf("end time: %w", err)
	}
	return f, validate.Struct(f)
}

// parseLocalTime parses a browser datetime-local value, with or without
// seconds, in the server's local zone.
func parseLocalTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing value")
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// formError flattens a validation failure into a one-line message suitable
// for a query-string flash.
func formError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
			case "min":
				parts = append(parts, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
			case "max":
				parts = append(parts, fmt.Sprintf("%s is too long", fe.Field()))
			case "gtfield":
				parts = append(parts, fmt.Sprintf("%s must be after %s", fe.Field(), fe.Param()))
			default:
				parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}
