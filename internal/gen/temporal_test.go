package gen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTemporalWeights_Bounds(t *testing.T) {
	w := DefaultTemporalWeights()

	for h := 0; h < 24; h++ {
		hw := w.HourWeight(h)
		require.Greater(t, hw, 0.0, "hour %d", h)
		require.LessOrEqual(t, hw, 1.0, "hour %d", h)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		dw := w.WeekdayWeight(d)
		require.Greater(t, dw, 0.0, "weekday %s", d)
		require.LessOrEqual(t, dw, 1.0, "weekday %s", d)
	}
}

func TestTemporalWeights_Shape(t *testing.T) {
	w := DefaultTemporalWeights()

	// Business hours peak over the overnight trough.
	for h := 9; h <= 16; h++ {
		for trough := 0; trough <= 5; trough++ {
			require.Greater(t, w.HourWeight(h), w.HourWeight(trough))
		}
	}

	// Weekdays dominate the weekend.
	require.Equal(t, 1.0, w.WeekdayWeight(time.Monday))
	require.Greater(t, w.WeekdayWeight(time.Friday), w.WeekdayWeight(time.Saturday))
	require.Greater(t, w.WeekdayWeight(time.Saturday), w.WeekdayWeight(time.Sunday))
}

func TestSampleHour_FollowsWeights(t *testing.T) {
	w := DefaultTemporalWeights()
	rng := rand.New(rand.NewSource(7))

	counts := make([]int, 24)
	for i := 0; i < 100000; i++ {
		h := w.SampleHour(rng)
		require.GreaterOrEqual(t, h, 0)
		require.Less(t, h, 24)
		counts[h]++
	}

	// Peak hours should be drawn far more often than trough hours.
	require.Greater(t, counts[10], 4*counts[2])
}

func TestWeightedIndex_Deterministic(t *testing.T) {
	weights := []float64{1, 2, 3}

	a := rand.New(rand.NewSource(11))
	b := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		require.Equal(t, weightedIndex(a, weights), weightedIndex(b, weights))
	}
}
