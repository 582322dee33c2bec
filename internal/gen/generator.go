package gen

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"example.com/engagement-analytics/internal/domain"
)

// Dataset is one full generation run: all entities, immutable after creation,
// ordered as they will be persisted.
type Dataset struct {
	Authors     []domain.Author
	Posts       []domain.Post
	Users       []domain.User
	Metadata    []domain.PostMetadata
	Engagements []domain.Engagement
}

// Generator orchestrates entity synthesis: factory, then per-post funnels on
// a worker pool, then the volume cap over the concatenated result.
//
// Determinism: the factory consumes a single rng seeded with cfg.Seed; each
// post's funnel runs on its own rng seeded cfg.Seed + post index, and results
// are concatenated in post order, so output is identical across runs and
// worker counts for a fixed seed and config.
type Generator struct {
	cfg     Config
	weights TemporalWeights
	log     zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Generator {
	return &Generator{cfg: cfg, weights: DefaultTemporalWeights(), log: log}
}

// Run generates a complete dataset. It returns early with the context error
// if cancelled; no partial dataset is returned.
func (g *Generator) Run(ctx context.Context) (*Dataset, error) {
	factoryRng := rand.New(rand.NewSource(g.cfg.Seed))
	factory := NewEntityFactory(g.cfg, factoryRng)

	ds := &Dataset{
		Authors: factory.Authors(),
		Posts:   factory.Posts(),
		Users:   factory.Users(),
	}
	ds.Metadata = factory.PostMetadata(len(ds.Posts))
	g.log.Info().
		Int("authors", len(ds.Authors)).
		Int("posts", len(ds.Posts)).
		Int("users", len(ds.Users)).
		Msg("base population generated")

	perPost, err := g.generateFunnels(ctx, ds.Posts)
	if err != nil {
		return nil, err
	}
	events := lo.Flatten(perPost)
	g.log.Info().Int("events", len(events)).Msg("funnel events generated")

	sampler := NewVolumeCapSampler(g.cfg.MaxEngagements)
	samplerRng := rand.New(rand.NewSource(g.cfg.Seed + int64(len(ds.Posts)) + 1))
	ds.Engagements = sampler.Sample(samplerRng, events)

	byType := lo.CountValuesBy(ds.Engagements, func(e domain.Engagement) domain.EngagementType {
		return e.Type
	})
	g.log.Info().
		Int("kept", len(ds.Engagements)).
		Int("cap", g.cfg.MaxEngagements).
		Interface("by_type", byType).
		Msg("volume cap applied")

	return ds, nil
}

// generateFunnels maps posts to per-post event lists. Posts are independent
// (no shared mutable state), so the map runs on a bounded worker pool; the
// volume cap is applied by the caller only after all results are combined.
func (g *Generator) generateFunnels(ctx context.Context, posts []domain.Post) ([][]domain.Engagement, error) {
	funnel := NewFunnelGenerator(g.cfg, g.weights)
	results := make([][]domain.Engagement, len(posts))

	workers := g.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := rand.New(rand.NewSource(g.cfg.Seed + int64(i) + 1))
				results[i] = funnel.PostEvents(rng, int64(i+1), posts[i].PublishedAt)
			}
		}()
	}

feed:
	for i := range posts {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
