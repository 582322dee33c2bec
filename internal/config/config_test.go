package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 50, cfg.NumAuthors)
	require.Equal(t, 10000, cfg.NumPosts)
	require.Equal(t, 5000, cfg.NumUsers)
	require.Equal(t, 50000, cfg.NumEngagements)
	require.Equal(t, 5000, cfg.BatchSize)
	require.InDelta(t, 0.15, cfg.ViewToLikeRatio, 1e-9)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("NUM_POSTS", "123")
	t.Setenv("SEED", "99")
	t.Setenv("POST_RANGE_START", "2023-05-01")

	cfg, err := Parse()
	require.NoError(t, err)
	require.Equal(t, 123, cfg.NumPosts)
	require.Equal(t, 99, cfg.Seed)

	genCfg, err := cfg.Generation()
	require.NoError(t, err)
	require.Equal(t, int64(99), genCfg.Seed)
	require.Equal(t, 123, genCfg.Posts)
	require.Equal(t, 2023, genCfg.PostStart.Year())
}

func TestGeneration_RejectsBadDates(t *testing.T) {
	t.Setenv("POST_RANGE_START", "01/02/2024")
	cfg, err := Parse()
	require.NoError(t, err)
	_, err = cfg.Generation()
	require.Error(t, err)
}

func TestGeneration_RejectsInvertedRange(t *testing.T) {
	t.Setenv("POST_RANGE_START", "2025-01-01")
	t.Setenv("POST_RANGE_END", "2024-01-01")
	cfg, err := Parse()
	require.NoError(t, err)
	_, err = cfg.Generation()
	require.Error(t, err)
}

func TestAPIKeySet(t *testing.T) {
	cfg := Config{APIKeys: " key-a, key-b ,,key-c"}
	keys := cfg.APIKeySet()
	require.Len(t, keys, 3)
	require.Contains(t, keys, "key-a")
	require.Contains(t, keys, "key-b")
	require.Contains(t, keys, "key-c")

	require.Empty(t, Config{}.APIKeySet())
}
