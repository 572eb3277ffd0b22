package weekday

import (
	"presence-analyzer/domain/presence"
)

// ComputeWeekdayStats collects the start and end times of every weekday
// and returns their means together with the sample count.
func ComputeWeekdayStats(records presence.UserRecords) [presence.DaysInWeek]presence.WeekdayStats {
	var starts, ends [presence.DaysInWeek][]int
	for _, date := range records.SortedDates() {
		record := records[date]
		w := date.Weekday()
		starts[w] = append(starts[w], SecondsSinceMidnight(record.Start))
		ends[w] = append(ends[w], SecondsSinceMidnight(record.End))
	}

	var result [presence.DaysInWeek]presence.WeekdayStats
	for w := range result {
		result[w] = presence.WeekdayStats{
			MeanStart: Mean(starts[w]),
			MeanEnd:   Mean(ends[w]),
			Samples:   len(starts[w]),
		}
	}
	return result
}

// MeanStartEnd converts the weekday means into wall-clock times.
func MeanStartEnd(stats [presence.DaysInWeek]presence.WeekdayStats) [presence.DaysInWeek]presence.StartEnd {
	var result [presence.DaysInWeek]presence.StartEnd
	for w, s := range stats {
		result[w] = presence.StartEnd{
			Start: presence.FromSeconds(s.MeanStart),
			End:   presence.FromSeconds(s.MeanEnd),
		}
	}
	return result
}
