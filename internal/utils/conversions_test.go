package utils_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/internal/utils"
)

func TestToInt(t *testing.T) {
	require.Equal(t, 42, utils.ToInt(42))
	require.Equal(t, 42, utils.ToInt(int64(42)))
	require.Equal(t, 42, utils.ToInt(float64(42.9)))
	require.Equal(t, 42, utils.ToInt(json.Number("42")))
	require.Zero(t, utils.ToInt(-5))
	require.Zero(t, utils.ToInt("42"))
	require.Zero(t, utils.ToInt(nil))
}

func TestToStringSlice(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, utils.ToStringSlice([]any{"a", 1, "b", nil}))
	require.Empty(t, utils.ToStringSlice(nil))
}
