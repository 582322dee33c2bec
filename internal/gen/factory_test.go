package gen

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"example.com/engagement-analytics/internal/domain"
)

func smallConfig(seed int64) Config {
	cfg := DefaultConfig(seed)
	cfg.Authors = 20
	cfg.Posts = 500
	cfg.Users = 100
	cfg.MaxEngagements = 0
	return cfg
}

func TestEntityFactory_Authors(t *testing.T) {
	cfg := smallConfig(1)
	f := NewEntityFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))

	authors := f.Authors()
	require.Len(t, authors, cfg.Authors)

	for _, a := range authors {
		require.NotEmpty(t, a.Name)
		require.Contains(t, domain.Categories, a.Category)
		require.False(t, a.JoinedDate.Before(cfg.AuthorJoinStart))
		require.False(t, a.JoinedDate.After(cfg.AuthorJoinStart.AddDate(0, 0, cfg.AuthorJoinDays)))
	}
}

func TestEntityFactory_Posts(t *testing.T) {
	cfg := smallConfig(2)
	f := NewEntityFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))

	posts := f.Posts()
	require.Len(t, posts, cfg.Posts)

	for _, p := range posts {
		require.GreaterOrEqual(t, p.AuthorID, int64(1))
		require.LessOrEqual(t, p.AuthorID, int64(cfg.Authors))
		require.Contains(t, domain.Categories, p.Category)

		// Publish hours restricted to 06:00-22:00.
		require.GreaterOrEqual(t, p.PublishedAt.Hour(), 6)
		require.LessOrEqual(t, p.PublishedAt.Hour(), 22)
		require.False(t, p.PublishedAt.Before(cfg.PostStart))

		require.GreaterOrEqual(t, p.ContentLength, 200)
		require.LessOrEqual(t, p.ContentLength, 3000)
		require.NotEmpty(t, p.Title)
	}
}

func TestEntityFactory_Users(t *testing.T) {
	cfg := smallConfig(3)
	f := NewEntityFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))

	users := f.Users()
	require.Len(t, users, cfg.Users)
	for _, u := range users {
		require.Contains(t, domain.Countries, u.Country)
		require.Contains(t, domain.UserSegments, u.Segment)
		require.False(t, u.SignupDate.Before(cfg.UserSignupStart))
	}
}

func TestEntityFactory_PostMetadata(t *testing.T) {
	cfg := smallConfig(4)
	f := NewEntityFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))

	meta := f.PostMetadata(cfg.Posts)
	require.Len(t, meta, cfg.Posts)

	for i, m := range meta {
		require.Equal(t, int64(i+1), m.PostID)
		require.GreaterOrEqual(t, len(m.Tags), 1)
		require.LessOrEqual(t, len(m.Tags), 4)
		require.Len(t, lo.Uniq(m.Tags), len(m.Tags), "tags sampled without replacement")
		require.Equal(t, "en", m.Language)
	}
}

func TestEntityFactory_Deterministic(t *testing.T) {
	cfg := smallConfig(5)

	a := NewEntityFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))
	b := NewEntityFactory(cfg, rand.New(rand.NewSource(cfg.Seed)))

	require.Equal(t, a.Authors(), b.Authors())
	require.Equal(t, a.Posts(), b.Posts())
	require.Equal(t, a.Users(), b.Users())
}
