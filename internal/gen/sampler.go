package gen

import (
	"math/rand"

	"example.com/engagement-analytics/internal/domain"
)

// VolumeCapSampler enforces the global event ceiling by uniform sampling
// without replacement. It is a post-hoc truncation over the combined dataset:
// high-volume posts lose proportionally more events and per-post funnel
// ratios are not preserved exactly.
type VolumeCapSampler struct {
	max int
}

// NewVolumeCapSampler builds a sampler; max <= 0 disables the cap.
func NewVolumeCapSampler(max int) VolumeCapSampler {
	return VolumeCapSampler{max: max}
}

// Sample returns events unchanged when within the cap, otherwise a uniform
// random subset of exactly max events. The input slice is not modified.
func (s VolumeCapSampler) Sample(rng *rand.Rand, events []domain.Engagement) []domain.Engagement {
	if s.max <= 0 || len(events) <= s.max {
		return events
	}

	// Partial Fisher-Yates over a copy: the first max positions end up
	// holding a uniform sample without replacement.
	pool := make([]domain.Engagement, len(events))
	copy(pool, events)
	for i := 0; i < s.max; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:s.max]
}
