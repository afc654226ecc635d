package session

import "errors"

// ErrNoSession indicates that no usable session is stored. A corrupt
// stored session is reported the same way: the process hydrates as
// anonymous, it never crashes over bad durable state.
var ErrNoSession = errors.New("no stored session")

// Repo persists the session across process restarts.
type Repo interface {
	// Load returns the stored session, or ErrNoSession when nothing
	// usable is stored.
	Load() (*Session, error)

	// Save replaces the stored session.
	Save(sess *Session) error

	// Clear removes the stored session.
	Clear() error
}
