package domain

import "strings"

// Session is the identity returned by a successful login. It is never
// mutated; a new login produces a new Session.
type Session struct {
	StudentID string
	UserID    string
	Token     string
}

func (s Session) Valid() bool {
	return strings.TrimSpace(s.UserID) != "" && strings.TrimSpace(s.Token) != ""
}
