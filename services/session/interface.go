package session

import (
	"context"

	"hussboss/models"
)

// Reader is the read side of a session store, used by guards and workflows.
type Reader interface {
	// Get returns the current session, or nil when nobody is logged in.
	Get(ctx context.Context) (*models.Session, error)
}

// Listener receives the new session after every Set or Clear. It gets nil
// after Clear.
type Listener func(*models.Session)

// IsAdmin reports whether s grants access to the admin views. The flag is
// whatever the backend returned at login; it is not re-validated.
func IsAdmin(s *models.Session) bool {
	return s != nil && s.IsAdmin
}
