package hoopsdk

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	requiredReason = "required"

	// MaxNameLength bounds a leaderboard player name, in characters.
	MaxNameLength = 50
)

// Validate checks the login request fields. Returns a map of field names to
// error messages, or nil if all fields are valid.
func (l LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)

	email := strings.TrimSpace(l.Email)
	switch {
	case email == "":
		errs["email"] = requiredReason
	case !strings.Contains(email, "@"):
		errs["email"] = "must be an email address"
	}

	if l.Password == "" {
		errs["password"] = requiredReason
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the score submission fields.
func (s SubmitScoreRequest) Validate() map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(s.Name)
	switch {
	case name == "":
		errs["name"] = requiredReason
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs["name"] = fmt.Sprintf("too long (max %d)", MaxNameLength)
	}

	switch {
	case s.Score == nil:
		errs["score"] = requiredReason
	case *s.Score < 0:
		errs["score"] = "must be >= 0"
	}

	switch {
	case s.MaxCombo == nil:
		errs["maxCombo"] = requiredReason
	case *s.MaxCombo < 0:
		errs["maxCombo"] = "must be >= 0"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
