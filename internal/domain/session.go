package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Session is the signed-in demo user. Exactly one of LoginTime and
// RegistrationTime is set.
type Session struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	LoginTime        *time.Time `json:"loginTime,omitempty"`
	RegistrationTime *time.Time `json:"registrationTime,omitempty"`
}

// Valid reports whether a restored session is usable. Name may be empty:
// login derives it from the email's local part, which can be blank.
func (s Session) Valid() bool {
	return s.ID != "" && s.Email != "" &&
		(s.LoginTime != nil || s.RegistrationTime != nil)
}

// DisplayNameFromEmail returns the local part of email with its first
// letter upper-cased: "jane.doe@example.com" becomes "Jane.doe".
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(r)) + local[size:]
}

// Greeting is the header text for the current session.
func Greeting(s *Session) string {
	if s == nil {
		return "Sign In"
	}
	return "Hello, " + s.Name
}
