package models

import "time"

// League describes one economy league and its lifecycle. Seasonal leagues are
// time-boxed (Start..End); permanent leagues have no end date and stay active.
//
// Special marks the two flagship permanent leagues. They are charted against a
// fixed 120-day window instead of the proportional seasonal alignment. The flag
// is decided once when the row is loaded, so no magic-id comparisons leak into
// the chart logic.
type League struct {
	ID      int64
	Name    string
	Display string
	Start   *time.Time
	End     *time.Time
	Active  bool
	Special bool
}

// specialLeagueMaxID covers the two flagship league ids that predate the
// seasonal league system.
const specialLeagueMaxID = 2

// IsSpecialLeagueID reports whether a league id belongs to the fixed-window
// charting policy. Callers set League.Special from this exactly once, at load.
func IsSpecialLeagueID(id int64) bool {
	return id <= specialLeagueMaxID
}
