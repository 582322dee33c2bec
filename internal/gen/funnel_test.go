package gen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"example.com/engagement-analytics/internal/domain"
)

func TestFunnel_EventShape(t *testing.T) {
	cfg := smallConfig(10)
	funnel := NewFunnelGenerator(cfg, DefaultTemporalWeights())
	publishedAt := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	events := funnel.PostEvents(rand.New(rand.NewSource(10)), 42, publishedAt)
	require.NotEmpty(t, events)

	for _, e := range events {
		require.Equal(t, int64(42), e.PostID)
		require.Contains(t, domain.EngagementTypes, e.Type)
		require.GreaterOrEqual(t, e.UserID, int64(1))
		require.LessOrEqual(t, e.UserID, int64(cfg.Users))
	}
}

func TestFunnel_ViewCountWithinConfiguredRange(t *testing.T) {
	cfg := smallConfig(11)
	cfg.ViralityProb = 0 // isolate the base range
	funnel := NewFunnelGenerator(cfg, DefaultTemporalWeights())
	publishedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		events := funnel.PostEvents(rand.New(rand.NewSource(int64(i))), 1, publishedAt)
		views := lo.CountBy(events, func(e domain.Engagement) bool { return e.Type == domain.TypeView })
		require.GreaterOrEqual(t, views, cfg.BaseViewsMin)
		require.LessOrEqual(t, views, cfg.BaseViewsMax)
	}
}

func TestFunnel_ViralityAmplifiesViews(t *testing.T) {
	cfg := smallConfig(12)
	cfg.ViralityProb = 1.0 // every post promoted
	funnel := NewFunnelGenerator(cfg, DefaultTemporalWeights())
	publishedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	events := funnel.PostEvents(rand.New(rand.NewSource(3)), 1, publishedAt)
	views := lo.CountBy(events, func(e domain.Engagement) bool { return e.Type == domain.TypeView })

	require.GreaterOrEqual(t, views, cfg.BaseViewsMin*cfg.ViralityMinFactor)
	require.LessOrEqual(t, views, cfg.BaseViewsMax*cfg.ViralityMaxFactor)
}

func TestFunnel_TimestampsNeverPrecedePublication(t *testing.T) {
	cfg := smallConfig(13)
	funnel := NewFunnelGenerator(cfg, DefaultTemporalWeights())

	// A late-evening publish hour maximizes the chance of a same-day draw
	// landing on an earlier hour.
	publishedAt := time.Date(2024, 9, 30, 21, 45, 0, 0, time.UTC)
	// 30 day offset window + up to 3 days weekday shift + 1 day floor shift.
	upperBound := publishedAt.AddDate(0, 0, 34)

	for seed := int64(0); seed < 50; seed++ {
		events := funnel.PostEvents(rand.New(rand.NewSource(seed)), 1, publishedAt)
		for _, e := range events {
			require.False(t, e.OccurredAt.Before(publishedAt),
				"event at %s precedes publication %s", e.OccurredAt, publishedAt)
			require.True(t, e.OccurredAt.Before(upperBound),
				"event at %s beyond bounded window", e.OccurredAt)
		}
	}
}

func TestFunnel_Deterministic(t *testing.T) {
	cfg := smallConfig(14)
	funnel := NewFunnelGenerator(cfg, DefaultTemporalWeights())
	publishedAt := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

	a := funnel.PostEvents(rand.New(rand.NewSource(99)), 7, publishedAt)
	b := funnel.PostEvents(rand.New(rand.NewSource(99)), 7, publishedAt)
	require.Equal(t, a, b)
}

// The like/view ratio is a statistical contract, not per-post: jitter makes
// individual posts deviate, so assert on the aggregate over many posts.
func TestFunnel_ConversionRatioStatistical(t *testing.T) {
	cfg := smallConfig(15)
	cfg.ViralityProb = 0
	funnel := NewFunnelGenerator(cfg, DefaultTemporalWeights())
	publishedAt := time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)

	var totalViews, totalLikes int
	for i := 0; i < 1000; i++ {
		events := funnel.PostEvents(rand.New(rand.NewSource(int64(i))), int64(i+1), publishedAt)
		byType := lo.CountValuesBy(events, func(e domain.Engagement) domain.EngagementType { return e.Type })
		totalViews += byType[domain.TypeView]
		totalLikes += byType[domain.TypeLike]
	}

	ratio := float64(totalLikes) / float64(totalViews)
	require.InDelta(t, cfg.ViewToLikeRatio, ratio, cfg.ViewToLikeRatio*0.30)
}
