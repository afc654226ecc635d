package directory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/directory"
)

func TestNormalize(t *testing.T) {
	t.Run("missing id is rejected", func(t *testing.T) {
		_, err := directory.Normalize(map[string]any{"name": "Chess Club"})
		require.ErrorIs(t, err, directory.MissingIDErr)

		_, err = directory.Normalize(map[string]any{"id": "   "})
		require.ErrorIs(t, err, directory.MissingIDErr)
	})

	t.Run("sparse record gets explicit defaults", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{"id": "chess-club"})
		require.NoError(t, err)

		require.Equal(t, "chess-club", rec.ID)
		require.Equal(t, "chess-club", rec.Name)
		require.Equal(t, directory.DefaultDescription, rec.Description)
		require.Zero(t, rec.Users)
		require.Zero(t, rec.Forks)
		require.Empty(t, rec.Categories)
		require.NotNil(t, rec.Categories)
	})

	t.Run("full record", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{
			"id":            "chess-club",
			"name":          "Chess Club",
			"description":   "Weekly games and rankings",
			"githubUrl":     "https://github.com/basebase-ai/chess-club",
			"productionUrl": "https://chess-club.basebase.live",
			"users":         float64(42),
			"forks":         int64(3),
			"categories":    []any{"games", "community"},
			"ownerId":       "user-1",
		})
		require.NoError(t, err)

		require.Equal(t, "Chess Club", rec.Name)
		require.Equal(t, "Weekly games and rankings", rec.Description)
		require.Equal(t, "https://github.com/basebase-ai/chess-club", rec.GithubURL)
		require.Equal(t, "https://chess-club.basebase.live", rec.ProductionURL)
		require.Equal(t, 42, rec.Users)
		require.Equal(t, 3, rec.Forks)
		require.Equal(t, []string{"games", "community"}, rec.Categories)
		require.Equal(t, "user-1", rec.OwnerID)
		require.Nil(t, rec.Extra)
	})

	t.Run("blank name and description fall back to defaults", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{
			"id":          "chess-club",
			"name":        "   ",
			"description": "",
		})
		require.NoError(t, err)
		require.Equal(t, "chess-club", rec.Name)
		require.Equal(t, directory.DefaultDescription, rec.Description)
	})

	t.Run("legacy singular category", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{
			"id":       "chess-club",
			"category": "games",
		})
		require.NoError(t, err)
		require.Equal(t, []string{"games"}, rec.Categories)
	})

	t.Run("plural categories win over singular", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{
			"id":         "chess-club",
			"category":   "legacy",
			"categories": []any{"games"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"games"}, rec.Categories)
	})

	t.Run("negative counters clamp to zero", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{
			"id":    "chess-club",
			"users": float64(-5),
		})
		require.NoError(t, err)
		require.Zero(t, rec.Users)
	})

	t.Run("unknown fields are preserved in Extra", func(t *testing.T) {
		rec, err := directory.Normalize(map[string]any{
			"id":       "chess-club",
			"featured": true,
			"stars":    float64(12),
		})
		require.NoError(t, err)
		require.Equal(t, true, rec.Extra["featured"])
		require.Equal(t, float64(12), rec.Extra["stars"])
	})
}

func TestRecord_DisplayCategories(t *testing.T) {
	rec := directory.Record{Categories: []string{"games", "Uncategorized", "community", "uncategorized"}}
	require.Equal(t, []string{"games", "community"}, rec.DisplayCategories())

	// The record itself keeps every category.
	require.Len(t, rec.Categories, 4)
}

func TestRecord_Matches(t *testing.T) {
	rec := directory.Record{
		Name:        "Chess Club",
		Description: "Weekly games and rankings",
		Categories:  []string{"Games"},
	}

	require.True(t, rec.Matches(""))
	require.True(t, rec.Matches("chess"))
	require.True(t, rec.Matches("RANKINGS"))
	require.True(t, rec.Matches("game"))
	require.False(t, rec.Matches("cooking"))
}
