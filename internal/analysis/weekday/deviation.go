package weekday

import (
	"fmt"
	"math"

	"presence-analyzer/domain/core"
	"presence-analyzer/domain/presence"
)

// VariationTerm is the contribution of one observation to the variation
// of its weekday: the squared deviation divided by the sample count.
func VariationTerm(t presence.TimeOfDay, mean float64, samples int) float64 {
	d := float64(SecondsSinceMidnight(t)) - mean
	return d * d / float64(samples)
}

// AccumulateVariation sums the variation terms of every record into its
// weekday. A record on a weekday with no counted samples means stats were
// computed from different records and is reported as ErrInconsistentSamples.
func AccumulateVariation(records presence.UserRecords, stats [presence.DaysInWeek]presence.WeekdayStats) ([presence.DaysInWeek]presence.DayVariation, error) {
	var result [presence.DaysInWeek]presence.DayVariation
	for _, date := range records.SortedDates() {
		record := records[date]
		w := date.Weekday()
		s := stats[w]
		if s.Samples == 0 {
			return result, fmt.Errorf("%w: %s on weekday %d", core.ErrInconsistentSamples, date, w)
		}
		result[w].Start += VariationTerm(record.Start, s.MeanStart, s.Samples)
		result[w].End += VariationTerm(record.End, s.MeanEnd, s.Samples)
	}
	return result, nil
}

// StandardDeviationBands returns [mean-σ, mean+σ] for start and end times
// of every weekday, with σ the square root of the accumulated variation.
func StandardDeviationBands(variation [presence.DaysInWeek]presence.DayVariation, stats [presence.DaysInWeek]presence.WeekdayStats) [presence.DaysInWeek]presence.DeviationBand {
	var result [presence.DaysInWeek]presence.DeviationBand
	for w := range result {
		result[w] = presence.DeviationBand{
			Start: band(stats[w].MeanStart, variation[w].Start),
			End:   band(stats[w].MeanEnd, variation[w].End),
		}
	}
	return result
}

func band(mean, variance float64) [2]presence.TimeOfDay {
	sigma := math.Sqrt(variance)
	return [2]presence.TimeOfDay{
		presence.FromSeconds(mean - sigma),
		presence.FromSeconds(mean + sigma),
	}
}
