package directory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
	"github.com/basebase-ai/basebase-go/session"
)

// Reader lists published projects from the platform read API. Records
// come back in whatever shape the platform stored them.
type Reader interface {
	ListProjects(ctx context.Context) ([]map[string]any, error)
}

// Directory is the searchable, cached list of published projects. Fetch
// is guarded by a refresh epoch: the caller supplies a monotonically
// increasing trigger version, and only a strictly greater version than
// the last one observed forces a re-fetch.
type Directory struct {
	mu          sync.Mutex
	reader      Reader
	cache       Cache
	lastVersion int
	primed      bool
}

// Option modifies a Directory instance.
type Option func(*Directory)

// WithCache replaces the default in-process cache, e.g. with the Redis
// cache from the rediscache package.
func WithCache(cache Cache) Option {
	return func(d *Directory) {
		d.cache = cache
	}
}

// New initializes a directory over the read API.
func New(reader Reader, options ...Option) (*Directory, error) {
	if reader == nil {
		return nil, errors.New("[directory.New] reader is required")
	}

	dir := &Directory{
		reader: reader,
		cache:  NewInMemoryCache(),
	}
	for _, opt := range options {
		opt(dir)
	}
	return dir, nil
}

// Fetch returns the normalized project list. It is idempotent and safe
// to call repeatedly: equal or lower trigger versions are served from the
// cache when possible. Errors are returned as values; nothing escapes
// this boundary.
func (d *Directory) Fetch(ctx context.Context, triggerVersion int) (records []Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("project fetch panicked: %v", r)
		}
	}()

	d.mu.Lock()
	defer d.mu.Unlock()

	refresh := !d.primed || triggerVersion > d.lastVersion
	if !refresh {
		cached, ok, cacheErr := d.cache.Get(ctx)
		if cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("directory cache read failed, re-fetching")
		} else if ok {
			return cached, nil
		}
	}

	raw, err := d.reader.ListProjects(ctx)
	if err != nil {
		return nil, &apperrors.RemoteError{Op: "list projects", Err: err}
	}

	records = make([]Record, 0, len(raw))
	for _, entry := range raw {
		rec, normErr := Normalize(entry)
		if normErr != nil {
			// A single bad record must not take down the whole list.
			log.Warn().Err(normErr).Msg("skipping unusable project record")
			continue
		}
		records = append(records, rec)
	}

	if cacheErr := d.cache.Put(ctx, records); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("directory cache write failed")
	}
	d.primed = true
	if triggerVersion > d.lastVersion {
		d.lastVersion = triggerVersion
	}
	return records, nil
}

// Invalidate drops the cached list so the next Fetch hits the read API
// regardless of its trigger version. Called after a successful
// provisioning run.
func (d *Directory) Invalidate(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.primed = false
	if err := d.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("directory cache invalidation failed")
	}
}

// Search filters records by a case-insensitive substring match against
// name, description and categories. The empty query returns every record
// unchanged.
func Search(records []Record, query string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Matches(query) {
			out = append(out, rec)
		}
	}
	return out
}

// CanEdit reports whether the session's user owns the record. Purely
// advisory; the platform enforces ownership on writes.
func CanEdit(rec Record, sess session.Session) bool {
	if !sess.IsAuthenticated || sess.User == nil {
		return false
	}
	return rec.OwnerID != "" && sess.User.ID == rec.OwnerID
}
