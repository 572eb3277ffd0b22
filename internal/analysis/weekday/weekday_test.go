package weekday

import (
	"errors"
	"math"
	"testing"
	"time"

	"presence-analyzer/domain/core"
	"presence-analyzer/domain/presence"
)

func tod(h, m, s int) presence.TimeOfDay { return presence.NewTimeOfDay(h, m, s) }

func day(d int) presence.Date { return presence.NewDate(2013, time.September, d) }

// sampleRecords returns the three records of user 10 from the fixture file
func sampleRecords() presence.UserRecords {
	return presence.UserRecords{
		day(10): {Start: tod(9, 39, 5), End: tod(17, 59, 52)},
		day(12): {Start: tod(10, 48, 46), End: tod(17, 23, 51)},
		day(11): {Start: tod(9, 19, 52), End: tod(16, 7, 37)},
	}
}

func TestSecondsSinceMidnight(t *testing.T) {
	if got := SecondsSinceMidnight(tod(22, 33, 11)); got != 81191 {
		t.Errorf("SecondsSinceMidnight(22:33:11) = %d, want 81191", got)
	}
	if got := SecondsSinceMidnight(tod(0, 0, 0)); got != 0 {
		t.Errorf("SecondsSinceMidnight(00:00:00) = %d, want 0", got)
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end presence.TimeOfDay
		want       int
	}{
		{"regular day", tod(9, 39, 5), tod(17, 59, 52), 30047},
		{"end before start stays negative", tod(11, 22, 33), tod(8, 11, 31), -11462},
		{"same time", tod(12, 0, 0), tod(12, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interval(tt.start, tt.end)
			if got != tt.want {
				t.Errorf("Interval = %d, want %d", got, tt.want)
			}
			if diff := SecondsSinceMidnight(tt.end) - SecondsSinceMidnight(tt.start); got != diff {
				t.Errorf("Interval = %d, differs from seconds difference %d", got, diff)
			}
		})
	}

	for h := 0; h < 24; h++ {
		t0 := tod(h, h%60, (h*7)%60)
		if got := Interval(t0, t0); got != 0 {
			t.Errorf("Interval(%s, %s) = %d, want 0", t0, t0, got)
		}
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]int{}); got != 0 {
		t.Errorf("Mean(empty) = %f, want 0", got)
	}
	if got := Mean([]int{1, 2, 3}); got != 2 {
		t.Errorf("Mean([1 2 3]) = %f, want 2", got)
	}
	if got := Mean([]int{-1, -2, -3}); got != -2 {
		t.Errorf("Mean([-1 -2 -3]) = %f, want -2", got)
	}
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("Mean([1. 2. 3.]) = %f, want 2", got)
	}
	values := []int{30047, 24465, 23705, 100}
	sum := 0
	for _, v := range values {
		sum += v
	}
	if got, want := Mean(values), float64(sum)/float64(len(values)); got != want {
		t.Errorf("Mean(%v) = %f, want %f", values, got, want)
	}
}

func TestGroupByWeekday(t *testing.T) {
	got := GroupByWeekday(sampleRecords())
	want := [][]int{{}, {30047}, {24465}, {23705}, {}, {}, {}}

	for w := range want {
		if len(got[w]) != len(want[w]) {
			t.Fatalf("bucket %d = %v, want %v", w, got[w], want[w])
		}
		for i := range want[w] {
			if got[w][i] != want[w][i] {
				t.Errorf("bucket %d = %v, want %v", w, got[w], want[w])
			}
		}
	}
}

func TestGroupByWeekday_AllWeekdays(t *testing.T) {
	// 2013-09-09 is a Monday; two full weeks
	records := presence.UserRecords{}
	for d := 9; d <= 22; d++ {
		records[day(d)] = presence.Record{Start: tod(9, 0, 0), End: tod(9, 0, d)}
	}

	buckets := GroupByWeekday(records)
	if len(buckets) != presence.DaysInWeek {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	for w, bucket := range buckets {
		if len(bucket) != 2 {
			t.Errorf("bucket %d has %d entries, want 2", w, len(bucket))
		}
		for _, interval := range bucket {
			// interval encodes the day of month, which must fall on this weekday
			if got := day(interval).Weekday(); got != w {
				t.Errorf("bucket %d contains interval from weekday %d", w, got)
			}
		}
		if bucket[0] >= bucket[1] {
			t.Errorf("bucket %d not in date order: %v", w, bucket)
		}
	}
}

func TestMeanAndTotalByWeekday(t *testing.T) {
	records := sampleRecords()
	records[day(17)] = presence.Record{Start: tod(9, 0, 0), End: tod(17, 0, 0)} // second Tuesday: 28800

	buckets := GroupByWeekday(records)
	means := MeanByWeekday(buckets)
	totals := TotalByWeekday(buckets)

	wantMeans := [7]float64{0, (30047 + 28800) / 2.0, 24465, 23705, 0, 0, 0}
	wantTotals := [7]int{0, 30047 + 28800, 24465, 23705, 0, 0, 0}
	if means != wantMeans {
		t.Errorf("MeanByWeekday = %v, want %v", means, wantMeans)
	}
	if totals != wantTotals {
		t.Errorf("TotalByWeekday = %v, want %v", totals, wantTotals)
	}
}

func TestTotalByWeekday_NegativeIntervalsPassThrough(t *testing.T) {
	records := presence.UserRecords{
		day(9): {Start: tod(11, 22, 33), End: tod(8, 11, 31)},
	}
	totals := TotalByWeekday(GroupByWeekday(records))
	if totals[0] != -11462 {
		t.Errorf("Monday total = %d, want -11462", totals[0])
	}
}

func TestComputeWeekdayStats(t *testing.T) {
	stats := ComputeWeekdayStats(sampleRecords())

	want := presence.WeekdayStats{MeanStart: 34745, MeanEnd: 64792, Samples: 1}
	if stats[1] != want {
		t.Errorf("Tuesday stats = %+v, want %+v", stats[1], want)
	}
	for _, w := range []int{0, 4, 5, 6} {
		if stats[w] != (presence.WeekdayStats{}) {
			t.Errorf("weekday %d stats = %+v, want zero value", w, stats[w])
		}
	}

	startEnd := MeanStartEnd(stats)
	if startEnd[3].Start != tod(10, 48, 46) || startEnd[3].End != tod(17, 23, 51) {
		t.Errorf("Thursday start/end = %+v", startEnd[3])
	}
	if startEnd[0].Start != tod(0, 0, 0) || startEnd[0].End != tod(0, 0, 0) {
		t.Errorf("Monday start/end = %+v, want midnight", startEnd[0])
	}
}

func TestVariationTerm(t *testing.T) {
	got := VariationTerm(tod(8, 54, 29), 30553.52475247525, 101)
	if math.Abs(got-22739.259661982247) > 1e-6 {
		t.Errorf("VariationTerm = %f, want 22739.259661982247", got)
	}
}

func TestAccumulateVariationAndBands(t *testing.T) {
	records := presence.UserRecords{
		day(9):  {Start: tod(8, 0, 0), End: tod(16, 0, 0)},
		day(16): {Start: tod(10, 0, 0), End: tod(18, 0, 0)},
	}

	stats := ComputeWeekdayStats(records)
	if stats[0].MeanStart != 32400 || stats[0].MeanEnd != 61200 || stats[0].Samples != 2 {
		t.Fatalf("Monday stats = %+v", stats[0])
	}

	variation, err := AccumulateVariation(records, stats)
	if err != nil {
		t.Fatalf("AccumulateVariation returned error: %v", err)
	}
	if variation[0].Start != 3600*3600 || variation[0].End != 3600*3600 {
		t.Errorf("Monday variation = %+v, want 12960000 for both", variation[0])
	}

	bands := StandardDeviationBands(variation, stats)
	want := presence.DeviationBand{
		Start: [2]presence.TimeOfDay{tod(8, 0, 0), tod(10, 0, 0)},
		End:   [2]presence.TimeOfDay{tod(16, 0, 0), tod(18, 0, 0)},
	}
	if bands[0] != want {
		t.Errorf("Monday band = %+v, want %+v", bands[0], want)
	}
}

func TestAnalyze_SingleSampleCollapsesBand(t *testing.T) {
	// one record per weekday, 2013-09-09 is a Monday
	records := presence.UserRecords{}
	for d := 9; d <= 15; d++ {
		records[day(d)] = presence.Record{Start: tod(8, d, 0), End: tod(16, d, 30)}
	}

	report, err := Analyze(records)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	for w := 0; w < presence.DaysInWeek; w++ {
		if report.Variation[w].Start != 0 || report.Variation[w].End != 0 {
			t.Errorf("weekday %d variation = %+v, want zero", w, report.Variation[w])
		}
		start := tod(8, 9+w, 0)
		end := tod(16, 9+w, 30)
		if report.Bands[w].Start != [2]presence.TimeOfDay{start, start} {
			t.Errorf("weekday %d start band = %v, want collapsed at %s", w, report.Bands[w].Start, start)
		}
		if report.Bands[w].End != [2]presence.TimeOfDay{end, end} {
			t.Errorf("weekday %d end band = %v, want collapsed at %s", w, report.Bands[w].End, end)
		}
	}
}

func TestAnalyze_EmptyRecords(t *testing.T) {
	report, err := Analyze(presence.UserRecords{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	zero := [2]presence.TimeOfDay{tod(0, 0, 0), tod(0, 0, 0)}
	for w := 0; w < presence.DaysInWeek; w++ {
		if report.Means[w] != 0 || report.Totals[w] != 0 {
			t.Errorf("weekday %d mean/total = %f/%d, want 0", w, report.Means[w], report.Totals[w])
		}
		if report.Bands[w].Start != zero || report.Bands[w].End != zero {
			t.Errorf("weekday %d band = %+v, want midnight", w, report.Bands[w])
		}
	}
}

func TestAccumulateVariation_InconsistentStats(t *testing.T) {
	var stats [presence.DaysInWeek]presence.WeekdayStats // no samples anywhere

	_, err := AccumulateVariation(sampleRecords(), stats)
	if !errors.Is(err, core.ErrInconsistentSamples) {
		t.Errorf("expected ErrInconsistentSamples, got %v", err)
	}
}
