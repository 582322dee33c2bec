package gen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/engagement-analytics/internal/domain"
)

func makeEvents(n int) []domain.Engagement {
	events := make([]domain.Engagement, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range events {
		events[i] = domain.Engagement{
			PostID:     int64(i + 1),
			Type:       domain.TypeView,
			UserID:     int64(i%50 + 1),
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return events
}

func TestSampler_UnderCapUnchanged(t *testing.T) {
	events := makeEvents(100)
	out := NewVolumeCapSampler(100).Sample(rand.New(rand.NewSource(1)), events)
	require.Equal(t, events, out)

	out = NewVolumeCapSampler(500).Sample(rand.New(rand.NewSource(1)), events)
	require.Len(t, out, 100)
}

func TestSampler_OverCapExactSizeAndSubset(t *testing.T) {
	events := makeEvents(1000)
	out := NewVolumeCapSampler(300).Sample(rand.New(rand.NewSource(2)), events)
	require.Len(t, out, 300)

	// Every sampled event exists in the input; PostID is unique per input
	// event here, so membership and no-duplication both reduce to id checks.
	seen := make(map[int64]bool, len(out))
	for _, e := range out {
		require.GreaterOrEqual(t, e.PostID, int64(1))
		require.LessOrEqual(t, e.PostID, int64(1000))
		require.False(t, seen[e.PostID], "event sampled twice")
		seen[e.PostID] = true
	}
}

func TestSampler_InputNotModified(t *testing.T) {
	events := makeEvents(200)
	snapshot := make([]domain.Engagement, len(events))
	copy(snapshot, events)

	NewVolumeCapSampler(50).Sample(rand.New(rand.NewSource(3)), events)
	require.Equal(t, snapshot, events)
}

func TestSampler_DisabledCap(t *testing.T) {
	events := makeEvents(10)
	out := NewVolumeCapSampler(0).Sample(rand.New(rand.NewSource(4)), events)
	require.Equal(t, events, out)
}

func TestSampler_Deterministic(t *testing.T) {
	events := makeEvents(500)
	a := NewVolumeCapSampler(100).Sample(rand.New(rand.NewSource(5)), events)
	b := NewVolumeCapSampler(100).Sample(rand.New(rand.NewSource(5)), events)
	require.Equal(t, a, b)
}
