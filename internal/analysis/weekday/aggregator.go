package weekday

import (
	"gonum.org/v1/gonum/floats"

	"presence-analyzer/domain/presence"
)

// GroupByWeekday appends the presence interval of every record to the
// bucket of its weekday. Records are visited in ascending date order so
// bucket contents are deterministic.
func GroupByWeekday(records presence.UserRecords) presence.Buckets {
	var buckets presence.Buckets
	for i := range buckets {
		buckets[i] = []int{}
	}
	for _, date := range records.SortedDates() {
		record := records[date]
		w := date.Weekday()
		buckets[w] = append(buckets[w], Interval(record.Start, record.End))
	}
	return buckets
}

// MeanByWeekday returns the mean interval of every bucket.
func MeanByWeekday(buckets presence.Buckets) [presence.DaysInWeek]float64 {
	var means [presence.DaysInWeek]float64
	for w, bucket := range buckets {
		means[w] = Mean(bucket)
	}
	return means
}

// TotalByWeekday returns the summed interval of every bucket, 0 when empty.
func TotalByWeekday(buckets presence.Buckets) [presence.DaysInWeek]int {
	var totals [presence.DaysInWeek]int
	for w, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		values := make([]float64, len(bucket))
		for i, v := range bucket {
			values[i] = float64(v)
		}
		totals[w] = int(floats.Sum(values))
	}
	return totals
}
