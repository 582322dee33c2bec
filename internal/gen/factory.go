package gen

import (
	"fmt"
	"math/rand"
	"time"

	"example.com/engagement-analytics/internal/domain"
)

// tagPool is the fixed vocabulary for post metadata tags.
var tagPool = []string{
	"SQL", "Python", "Analytics", "Wellness", "Morning", "Tips",
	"Optimization", "Tutorial", "Guide", "Review", "Trends",
}

// EntityFactory produces the base population from configured sizes and date
// ranges. It allocates no identities: rows are positional and IDs are
// assigned by persistence on insert.
type EntityFactory struct {
	cfg Config
	rng *rand.Rand
}

func NewEntityFactory(cfg Config, rng *rand.Rand) *EntityFactory {
	return &EntityFactory{cfg: cfg, rng: rng}
}

// Authors draws join dates uniformly from the historical window and
// categories uniformly from the fixed set.
func (f *EntityFactory) Authors() []domain.Author {
	authors := make([]domain.Author, 0, f.cfg.Authors)
	for i := 1; i <= f.cfg.Authors; i++ {
		authors = append(authors, domain.Author{
			Name:       fmt.Sprintf("Author_%d", i),
			JoinedDate: f.cfg.AuthorJoinStart.AddDate(0, 0, f.rng.Intn(f.cfg.AuthorJoinDays+1)),
			Category:   pick(f.rng, domain.Categories),
		})
	}
	return authors
}

// Posts assigns each post a uniform author and a category independent of the
// author's own category (intentional: authors participate across categories).
// Publish timestamps are uniform over the configured range, restricted to
// hours 06:00-22:00.
func (f *EntityFactory) Posts() []domain.Post {
	rangeDays := int(f.cfg.PostEnd.Sub(f.cfg.PostStart).Hours() / 24)
	posts := make([]domain.Post, 0, f.cfg.Posts)
	for i := 0; i < f.cfg.Posts; i++ {
		category := pick(f.rng, domain.Categories)
		publishedAt := f.cfg.PostStart.
			AddDate(0, 0, f.rng.Intn(rangeDays+1)).
			Add(time.Duration(6+f.rng.Intn(17))*time.Hour + time.Duration(f.rng.Intn(60))*time.Minute)
		posts = append(posts, domain.Post{
			AuthorID:      int64(1 + f.rng.Intn(f.cfg.Authors)),
			Category:      category,
			PublishedAt:   publishedAt,
			Title:         fmt.Sprintf("Post about %s topic %d", category, 1000+f.rng.Intn(9000)),
			ContentLength: 200 + f.rng.Intn(2801),
			HasMedia:      f.rng.Float64() < f.cfg.MediaProb,
		})
	}
	return posts
}

// Users draws signup dates uniformly from the historical window, country and
// segment uniformly from the fixed sets.
func (f *EntityFactory) Users() []domain.User {
	users := make([]domain.User, 0, f.cfg.Users)
	for i := 0; i < f.cfg.Users; i++ {
		users = append(users, domain.User{
			SignupDate: f.cfg.UserSignupStart.AddDate(0, 0, f.rng.Intn(f.cfg.UserSignupDays+1)),
			Country:    pick(f.rng, domain.Countries),
			Segment:    pick(f.rng, domain.UserSegments),
		})
	}
	return users
}

// PostMetadata emits one metadata row per post: 1-4 tags sampled without
// replacement from the tag pool, a promoted flag, and a fixed language.
func (f *EntityFactory) PostMetadata(numPosts int) []domain.PostMetadata {
	meta := make([]domain.PostMetadata, 0, numPosts)
	for postID := 1; postID <= numPosts; postID++ {
		k := 1 + f.rng.Intn(4)
		perm := f.rng.Perm(len(tagPool))
		tags := make([]string, 0, k)
		for _, idx := range perm[:k] {
			tags = append(tags, tagPool[idx])
		}
		meta = append(meta, domain.PostMetadata{
			PostID:     int64(postID),
			Tags:       tags,
			IsPromoted: f.rng.Float64() < f.cfg.PromotedProb,
			Language:   "en",
		})
	}
	return meta
}

func pick[T any](rng *rand.Rand, set []T) T {
	return set[rng.Intn(len(set))]
}
