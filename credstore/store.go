// Package credstore persists the current admin session across restarts.
// Exactly one session is stored at a time, as a single JSON blob.
package credstore

import "github.com/addisride/admin-console/session"

// Store is the persistence contract used by the auth manager.
//
// Load returns (nil, nil) when no session is stored or the stored data
// cannot be decoded - a corrupt blob is treated as absent, never as an
// error the caller has to handle.
type Store interface {
	Save(s *session.Session) error
	Load() (*session.Session, error)
	Clear() error
}
