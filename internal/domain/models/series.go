package models

// NowLabel marks the live point appended to a series for active leagues.
const NowLabel = "Now"

// CalendarSeries is a calendar-complete daily series ready for charting.
// All channels are parallel and always the same length.
//
// A nil label marks a pure alignment-padding slot that renders with no
// tooltip; its value channels are nil too. A non-nil label with zero values
// marks a day the league was open but no data was collected.
type CalendarSeries struct {
	Labels []*string
	Mean   []*float64
	Median []*float64
	Mode   []*float64
	Daily  []*int64
}

// Len returns the number of slots in the series.
func (s CalendarSeries) Len() int {
	return len(s.Labels)
}
