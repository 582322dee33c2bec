package domain

import "fmt"

// Query parameter bounds. Out-of-range parameters are rejected before any
// data access.
const (
	MinRankingLimit = 1
	MaxRankingLimit = 50

	// allDays stands in for an unbounded window (100 years).
	allDays = 36500
)

// periodDays maps the supported summary periods to trailing-window days.
var periodDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"all": allDays,
}

// PeriodDays resolves a period string to its window in days.
func PeriodDays(period string) (int, error) {
	d, ok := periodDays[period]
	if !ok {
		return 0, fmt.Errorf("period must be one of 7d, 30d, 90d, all; got %q", period)
	}
	return d, nil
}

// RankMetric selects the ordering for category rankings.
type RankMetric string

const (
	MetricEngagement RankMetric = "engagement"
	MetricPosts      RankMetric = "posts"
)

// ParseRankMetric validates a ranking metric string.
func ParseRankMetric(s string) (RankMetric, error) {
	switch RankMetric(s) {
	case MetricEngagement, MetricPosts:
		return RankMetric(s), nil
	}
	return "", fmt.Errorf("metric must be engagement or posts; got %q", s)
}

// ValidateRankingLimit bounds the number of ranking rows.
func ValidateRankingLimit(n int) error {
	if n < MinRankingLimit || n > MaxRankingLimit {
		return fmt.Errorf("limit must be between %d and %d; got %d", MinRankingLimit, MaxRankingLimit, n)
	}
	return nil
}
