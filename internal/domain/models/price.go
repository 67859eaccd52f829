package models

import "time"

// PriceSnapshot is one day's aggregate for one item in one league. Snapshots
// are produced by the daily rollup and are immutable once written; this core
// only consumes them.
type PriceSnapshot struct {
	Time     time.Time
	Mean     float64
	Median   float64
	Mode     float64
	Daily    int64
	Total    int64
	Current  int64
	Accepted int64
}

// HistoryWindowSize is the fixed number of slots in a trend window: up to six
// prior daily means plus the current one.
const HistoryWindowSize = 7

// HistoryWindow is the trend view for one item+league built per response from
// the stored compact history and the current mean. History always holds
// exactly HistoryWindowSize entries, oldest to newest, with nil marking days
// that had no stored sample. The last entry is always the current mean.
type HistoryWindow struct {
	History       []*float64
	ChangePercent float64
}

// ItemPriceRow is one item's current price statistics for a league, as read
// from storage. Spark carries the compact comma-joined history encoding, or
// nil when fewer than two snapshots exist.
type ItemPriceRow struct {
	Detail   ItemDetail
	Mean     float64
	Median   float64
	Mode     float64
	Min      float64
	Max      float64
	Exalted  float64
	Total    int64
	Daily    int64
	Current  int64
	Accepted int64
	Spark    *string
}

// ItemPrice is an item's assembled browse-view payload: current statistics
// plus the decoded trend window. History is nil for inactive leagues, where
// trend data is not served.
type ItemPrice struct {
	ItemPriceRow
	Change  float64
	History []*float64
}
