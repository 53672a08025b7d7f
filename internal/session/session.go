// Package session carries the logged-in user explicitly through every call
// that is scoped to one account.
package session

import (
	"time"
)

// Session identifies the user a request acts for
type Session struct {
	Username  string
	StartedAt time.Time
}

// New starts a session for username
func New(username string) *Session {
	return &Session{
		Username:  username,
		StartedAt: time.Now(),
	}
}

// Valid reports whether the session names a user
func (s *Session) Valid() bool {
	return s != nil && s.Username != ""
}
