package weekday

import (
	"presence-analyzer/domain/presence"
)

// Report bundles every statistic derived from one user's records.
type Report struct {
	Buckets   presence.Buckets
	Means     [presence.DaysInWeek]float64
	Totals    [presence.DaysInWeek]int
	Stats     [presence.DaysInWeek]presence.WeekdayStats
	StartEnd  [presence.DaysInWeek]presence.StartEnd
	Variation [presence.DaysInWeek]presence.DayVariation
	Bands     [presence.DaysInWeek]presence.DeviationBand
}

// Analyze runs the whole pipeline over one user's records.
func Analyze(records presence.UserRecords) (*Report, error) {
	r := &Report{Buckets: GroupByWeekday(records)}
	r.Means = MeanByWeekday(r.Buckets)
	r.Totals = TotalByWeekday(r.Buckets)
	r.Stats = ComputeWeekdayStats(records)
	r.StartEnd = MeanStartEnd(r.Stats)

	variation, err := AccumulateVariation(records, r.Stats)
	if err != nil {
		return nil, err
	}
	r.Variation = variation
	r.Bands = StandardDeviationBands(variation, r.Stats)
	return r, nil
}
