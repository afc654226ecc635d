package sessionrepo

import (
	"sync"

	"github.com/basebase-ai/basebase-go/session"
)

// InMemoryRepo is a thread-safe in-memory implementation of session.Repo
type InMemoryRepo struct {
	mu     sync.RWMutex
	stored *session.Session
}

var _ session.Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Load() (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stored == nil {
		return nil, session.ErrNoSession
	}

	// Return a copy to prevent external modifications
	sess := *r.stored
	return &sess, nil
}

func (r *InMemoryRepo) Save(sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *sess
	r.stored = &copied
	return nil
}

func (r *InMemoryRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stored = nil
	return nil
}
