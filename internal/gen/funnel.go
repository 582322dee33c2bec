package gen

import (
	"math/rand"
	"time"

	"example.com/engagement-analytics/internal/domain"
)

// dayOffsetWeights skews engagement toward the first days after publication:
// roughly halving over the first week, flat afterward, over a 30 day window.
var dayOffsetWeights = [30]float64{
	10, 8, 6, 4, 3, 2, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
}

// FunnelGenerator derives per-post view/like/comment/share counts via chained
// conversion ratios with virality amplification, and emits one event per unit.
//
// Funnel counts are monotonically non-increasing in expectation only: the
// per-stage jitter is independent, so a single post may invert a stage. That
// is an accepted stochastic property, not an error.
type FunnelGenerator struct {
	cfg     Config
	weights TemporalWeights
}

func NewFunnelGenerator(cfg Config, weights TemporalWeights) *FunnelGenerator {
	return &FunnelGenerator{cfg: cfg, weights: weights}
}

// PostEvents generates the full event set for one post. Posts are independent,
// so callers may run this concurrently as long as each call gets its own rng.
// The post's true publish timestamp is the reference for every event time.
func (g *FunnelGenerator) PostEvents(rng *rand.Rand, postID int64, publishedAt time.Time) []domain.Engagement {
	base := g.cfg.BaseViewsMin + rng.Intn(g.cfg.BaseViewsMax-g.cfg.BaseViewsMin+1)

	// Promoted/viral content: amplify views by a random integer factor.
	if rng.Float64() < g.cfg.ViralityProb {
		base *= g.cfg.ViralityMinFactor + rng.Intn(g.cfg.ViralityMaxFactor-g.cfg.ViralityMinFactor+1)
	}

	likes := int(float64(base) * g.cfg.ViewToLikeRatio * jitter(rng))
	comments := int(float64(likes) * g.cfg.LikeToCommentRatio * jitter(rng))
	shares := int(float64(comments) * g.cfg.CommentToShareRatio * jitter(rng))

	events := make([]domain.Engagement, 0, base+likes+comments+shares)
	emit := func(n int, typ domain.EngagementType) {
		for i := 0; i < n; i++ {
			events = append(events, domain.Engagement{
				PostID:     postID,
				Type:       typ,
				UserID:     int64(1 + rng.Intn(g.cfg.Users)),
				OccurredAt: g.synthesizeTimestamp(rng, publishedAt),
			})
		}
	}
	emit(base, domain.TypeView)
	emit(likes, domain.TypeLike)
	emit(comments, domain.TypeComment)
	emit(shares, domain.TypeShare)
	return events
}

// jitter returns a uniform draw in [0.5, 1.5).
func jitter(rng *rand.Rand) float64 {
	return 0.5 + rng.Float64()
}

// synthesizeTimestamp produces an event time relative to the reference:
// a decay-weighted day offset, an activity-weighted hour, a random minute,
// then a probabilistic shift of low-weight weekdays forward 1-3 days.
// Events never precede the reference; a day-0 draw that lands on an earlier
// hour is pushed to the next day.
func (g *FunnelGenerator) synthesizeTimestamp(rng *rand.Rand, ref time.Time) time.Time {
	day := weightedIndex(rng, dayOffsetWeights[:])
	hour := g.weights.SampleHour(rng)

	ts := ref.AddDate(0, 0, day).
		Add(time.Duration(hour-ref.Hour())*time.Hour + time.Duration(rng.Intn(60))*time.Minute)
	if ts.Before(ref) {
		ts = ts.AddDate(0, 0, 1)
	}

	if rng.Float64() > g.weights.WeekdayWeight(ts.Weekday()) {
		ts = ts.AddDate(0, 0, 1+rng.Intn(3))
	}
	return ts
}
