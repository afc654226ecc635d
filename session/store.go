package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
)

// Listener is invoked with the new session on every mutation.
type Listener func(Session)

type subscription struct {
	fn      Listener
	removed bool
}

// Store holds the current session and fans every mutation out to its
// subscribers. It is the single entry point for session reads and writes;
// the session is hydrated from the repo once, on construction.
type Store struct {
	mu      sync.Mutex
	current Session
	repo    Repo
	subs    []*subscription
	nowTime func() time.Time
}

// StoreOption modifies a Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore hydrates a store from the repo. A missing, corrupt, invalid or
// expired stored session hydrates as anonymous; hydration never fails.
func NewStore(repo Repo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] repo is required")
	}

	store := &Store{
		repo:    repo,
		current: Anonymous(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(store)
	}

	sess, err := repo.Load()
	switch {
	case apperrors.Is(err, ErrNoSession):
	case err != nil:
		log.Warn().Err(err).Msg("session restore failed, starting anonymous")
	case !sess.Valid():
		log.Warn().Msg("stored session violates invariant, starting anonymous")
	case sess.IsAuthenticated && TokenExpired(sess.Token, store.nowTime()):
		log.Info().Msg("stored session token expired, starting anonymous")
	default:
		store.current = sess.clone()
	}
	return store, nil
}

// Get returns a snapshot of the current session. Mutating the returned
// value has no effect on the store.
func (s *Store) Get() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Set replaces the session, persists it, and synchronously notifies every
// registered listener once, in registration order. A persistence failure
// is non-fatal: the in-memory state still updates and listeners still
// fire. Calls are never coalesced; each Set runs its own full pass.
func (s *Store) Set(next Session) {
	s.mu.Lock()
	s.current = next.clone()
	snapshot := s.current
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if err := s.repo.Save(&snapshot); err != nil {
		log.Warn().Err(err).Msg("session persistence failed, in-memory state updated anyway")
	}

	for _, sub := range subs {
		s.mu.Lock()
		skip := sub.removed
		s.mu.Unlock()
		if skip {
			continue
		}
		sub.fn(snapshot.clone())
	}
}

// Subscribe registers a listener and returns its unsubscribe handle. A
// listener removed during a delivery pass is not called again, including
// later in that same pass.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscription{fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		for i, candidate := range s.subs {
			if candidate == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}
