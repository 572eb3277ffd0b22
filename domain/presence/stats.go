package presence

// WeekdayStats summarizes the start and end times of one weekday.
type WeekdayStats struct {
	MeanStart float64 `json:"start"`
	MeanEnd   float64 `json:"end"`
	Samples   int     `json:"data_examples_num"`
}

// DayVariation is the per-sample-normalized sum of squared deviations of
// start and end times from the weekday mean.
type DayVariation struct {
	Start float64 `json:"start_variation"`
	End   float64 `json:"end_variation"`
}

// DeviationBand is the [mean-σ, mean+σ] interval of start and end times.
type DeviationBand struct {
	Start [2]TimeOfDay `json:"start_variation"`
	End   [2]TimeOfDay `json:"end_variation"`
}

// StartEnd is the mean start and end time of one weekday.
type StartEnd struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}
