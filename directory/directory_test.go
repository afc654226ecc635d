package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/directory"
	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
	"github.com/basebase-ai/basebase-go/session"
)

type fakeReader struct {
	projects []map[string]any
	err      error
	calls    int
}

func (r *fakeReader) ListProjects(_ context.Context) ([]map[string]any, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.projects, nil
}

type failingCache struct{}

func (failingCache) Get(context.Context) ([]directory.Record, bool, error) {
	return nil, false, errors.New("cache down")
}
func (failingCache) Put(context.Context, []directory.Record) error { return errors.New("cache down") }
func (failingCache) Invalidate(context.Context) error              { return errors.New("cache down") }

func twoProjects() []map[string]any {
	return []map[string]any{
		{"id": "chess-club", "name": "Chess Club", "categories": []any{"games"}},
		{"id": "book-swap", "description": "Trade paperbacks"},
	}
}

func TestNew(t *testing.T) {
	_, err := directory.New(nil)
	require.Error(t, err)
}

func TestDirectory_Fetch(t *testing.T) {
	t.Run("normalizes every record", func(t *testing.T) {
		reader := &fakeReader{projects: twoProjects()}
		dir, err := directory.New(reader)
		require.NoError(t, err)

		records, err := dir.Fetch(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, "Chess Club", records[0].Name)
		require.Equal(t, "book-swap", records[1].Name)
		require.Equal(t, directory.DefaultDescription, records[1].Description)
	})

	t.Run("equal trigger version is served from cache", func(t *testing.T) {
		reader := &fakeReader{projects: twoProjects()}
		dir, err := directory.New(reader)
		require.NoError(t, err)

		_, err = dir.Fetch(context.Background(), 1)
		require.NoError(t, err)
		_, err = dir.Fetch(context.Background(), 1)
		require.NoError(t, err)
		_, err = dir.Fetch(context.Background(), 0)
		require.NoError(t, err)

		require.Equal(t, 1, reader.calls)
	})

	t.Run("greater trigger version forces a re-fetch", func(t *testing.T) {
		reader := &fakeReader{projects: twoProjects()}
		dir, err := directory.New(reader)
		require.NoError(t, err)

		_, err = dir.Fetch(context.Background(), 1)
		require.NoError(t, err)
		_, err = dir.Fetch(context.Background(), 2)
		require.NoError(t, err)

		require.Equal(t, 2, reader.calls)
	})

	t.Run("bad records are skipped, not fatal", func(t *testing.T) {
		reader := &fakeReader{projects: []map[string]any{
			{"name": "no id here"},
			{"id": "book-swap"},
		}}
		dir, err := directory.New(reader)
		require.NoError(t, err)

		records, err := dir.Fetch(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "book-swap", records[0].ID)
	})

	t.Run("reader failure is a remote error", func(t *testing.T) {
		reader := &fakeReader{err: errors.New("service unavailable")}
		dir, err := directory.New(reader)
		require.NoError(t, err)

		_, err = dir.Fetch(context.Background(), 0)
		require.True(t, apperrors.IsRemote(err))
		require.EqualError(t, err, "service unavailable")
	})

	t.Run("cache failures only cost a re-fetch", func(t *testing.T) {
		reader := &fakeReader{projects: twoProjects()}
		dir, err := directory.New(reader, directory.WithCache(failingCache{}))
		require.NoError(t, err)

		records, err := dir.Fetch(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 2)

		records, err = dir.Fetch(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, 2, reader.calls)
	})
}

func TestDirectory_Invalidate(t *testing.T) {
	reader := &fakeReader{projects: twoProjects()}
	dir, err := directory.New(reader)
	require.NoError(t, err)

	_, err = dir.Fetch(context.Background(), 1)
	require.NoError(t, err)

	dir.Invalidate(context.Background())

	// Same trigger version, but the drop forces a fresh read.
	_, err = dir.Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, reader.calls)
}

func TestSearch(t *testing.T) {
	records := []directory.Record{
		{ID: "chess-club", Name: "Chess Club", Description: "Weekly games", Categories: []string{"games"}},
		{ID: "book-swap", Name: "Book Swap", Description: "Trade paperbacks", Categories: []string{"reading"}},
	}

	require.Len(t, directory.Search(records, ""), 2)

	found := directory.Search(records, "games")
	require.Len(t, found, 1)
	require.Equal(t, "chess-club", found[0].ID)

	require.Empty(t, directory.Search(records, "cooking"))
}

func TestCanEdit(t *testing.T) {
	rec := directory.Record{ID: "chess-club", OwnerID: "user-1"}
	owner := session.Authenticated(session.User{ID: "user-1"}, nil, "tok")
	other := session.Authenticated(session.User{ID: "user-2"}, nil, "tok")

	require.True(t, directory.CanEdit(rec, owner))
	require.False(t, directory.CanEdit(rec, other))
	require.False(t, directory.CanEdit(rec, session.Anonymous()))
	require.False(t, directory.CanEdit(directory.Record{ID: "orphan"}, owner))
}
