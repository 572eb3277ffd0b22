// Package weekday computes per-weekday attendance statistics from one
// user's presence records: interval buckets, means and totals, mean
// start/end times, and standard deviation bands around them.
package weekday

import (
	"github.com/montanaflynn/stats"

	"presence-analyzer/domain/presence"
)

// SecondsSinceMidnight returns the number of seconds elapsed since 00:00:00.
func SecondsSinceMidnight(t presence.TimeOfDay) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Interval returns the signed number of seconds between start and end.
// No wraparound is applied, so end before start yields a negative value.
func Interval(start, end presence.TimeOfDay) int {
	return SecondsSinceMidnight(end) - SecondsSinceMidnight(start)
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean[T int | float64](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	data := make(stats.Float64Data, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return mean
}
