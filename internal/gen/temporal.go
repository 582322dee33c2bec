package gen

import (
	"math/rand"
	"time"
)

// defaultHourWeights is the relative engagement probability by hour of day:
// bimodal, peaking 09:00-16:00 and troughing 00:00-05:00.
var defaultHourWeights = [24]float64{
	0.2, 0.1, 0.1, 0.1, 0.1, 0.2,
	0.3, 0.5, 0.8, 1.0, 1.0, 1.0,
	0.9, 1.0, 1.0, 0.9, 0.8, 0.7,
	0.6, 0.5, 0.4, 0.4, 0.3, 0.2,
}

// defaultWeekdayWeights is the engagement multiplier per weekday, indexed by
// time.Weekday (Sunday=0): Mon-Thu 1.0, Fri 0.9, Sat 0.6, Sun 0.5.
var defaultWeekdayWeights = [7]float64{0.5, 1.0, 1.0, 1.0, 1.0, 0.9, 0.6}

// TemporalWeights maps (hour-of-day, day-of-week) to relative activity
// weights. Pure lookup tables fixed at construction; all 24x7 combinations
// are defined, so there are no error paths.
type TemporalWeights struct {
	hours    [24]float64
	weekdays [7]float64
}

// DefaultTemporalWeights returns the standard activity curves.
func DefaultTemporalWeights() TemporalWeights {
	return NewTemporalWeights(defaultHourWeights, defaultWeekdayWeights)
}

// NewTemporalWeights builds a model from explicit tables.
func NewTemporalWeights(hours [24]float64, weekdays [7]float64) TemporalWeights {
	return TemporalWeights{hours: hours, weekdays: weekdays}
}

// HourWeight returns the relative activity weight for an hour of day (0-23).
func (t TemporalWeights) HourWeight(hour int) float64 {
	return t.hours[hour]
}

// WeekdayWeight returns the activity multiplier for a day of week.
func (t TemporalWeights) WeekdayWeight(d time.Weekday) float64 {
	return t.weekdays[d]
}

// SampleHour draws an hour of day using the hour table as sampling weights.
func (t TemporalWeights) SampleHour(rng *rand.Rand) int {
	return weightedIndex(rng, t.hours[:])
}

// weightedIndex draws an index from a discrete distribution proportional to
// weights. Weights must be non-negative with a positive sum.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}
