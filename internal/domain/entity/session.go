// internal/domain/entity/session.go
package entity

import "time"

// ActivePage identifies the view being rendered, for nav highlighting
type ActivePage string

const (
	PageHome      ActivePage = "home"
	PageDashboard ActivePage = "dashboard"
	PageUsers     ActivePage = "users"
)

// Session is the client-local login state, never persisted beyond memory.
// IsAdmin is a UI hint only; the real permission check happens server-side.
type Session struct {
	ID         string
	EmployeeID string
	IsAdmin    bool
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the session has passed its TTL
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
