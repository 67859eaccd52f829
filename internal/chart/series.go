// Package chart reconstructs calendar-complete daily price series from
// sparse, irregularly-sampled per-item history.
//
// Series for leagues of different age and duration must align on a common
// horizontal axis, so the builder runs five ordered phases: leading alignment
// padding, start-gap backfill, observed entries with interior gap-fill,
// trailing-gap backfill, and the live point.
package chart

import (
	"math"
	"time"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// fixedWindowDays is the chart width used for the special flagship leagues,
// which have no meaningful start-to-end duration to align against.
const fixedWindowDays = 120

// dateLabel is the tooltip label layout, e.g. "2 Jan".
const dateLabel = "2 Jan"

// Build reconstructs the renderable series for one item+league.
//
// The now argument anchors elapsed-duration and trailing-gap computations for
// active leagues; passing it explicitly keeps the builder free of side
// effects. The live snapshot is appended as a final "Now" slot only when the
// league is active and the snapshot is present.
//
// Slots emitted by the leading-padding phase have nil labels and nil values;
// gap-fill slots have real date labels and zero values. All value channels
// come out the same length as the label channel.
//
// Precondition: history is in chronological order with monotonically
// increasing timestamps. Out-of-order input is an upstream bug and is not
// compensated for here.
func Build(history []models.PriceSnapshot, league models.League, live *models.PriceSnapshot, now time.Time) models.CalendarSeries {
	var b builder

	var firstDate, lastDate *time.Time
	if len(history) > 0 {
		firstDate = &history[0].Time
		lastDate = &history[len(history)-1].Time
	}

	// Duration is only known for time-boxed leagues.
	var totalDays, elapsedDays *int
	if league.Start != nil && league.End != nil {
		total := daysBetween(*league.Start, *league.End)
		totalDays = &total
		elapsed := total
		if league.Active {
			elapsed = daysBetween(*league.Start, now)
		}
		elapsedDays = &elapsed
	}

	daysMissingStart := 0
	if !league.Special && firstDate != nil && league.Start != nil {
		daysMissingStart = daysBetween(*league.Start, *firstDate)
	}

	daysMissingEnd := 0
	if league.Active {
		if lastDate != nil {
			daysMissingEnd = daysBetween(*lastDate, now)
		}
	} else if lastDate != nil && league.End != nil {
		daysMissingEnd = daysBetween(*lastDate, *league.End)
	}

	padding := 0
	if league.Special {
		padding = fixedWindowDays - len(history)
	} else if totalDays != nil && elapsedDays != nil {
		padding = *totalDays - *elapsedDays
	}

	// Phase 1: leading alignment padding, no tooltip.
	for i := 0; i < padding; i++ {
		b.pushPadding()
	}

	// Phase 2: the league was open before the first snapshot was collected.
	if daysMissingStart > 0 {
		for i := 0; i < daysMissingStart; i++ {
			b.pushZero(league.Start.AddDate(0, 0, i))
		}
	}

	// Phase 3: observed entries, filling interior calendar gaps with zeros.
	for i := range history {
		entry := history[i]
		b.pushSnapshot(entry.Time.Format(dateLabel), entry.Mean, entry.Median, entry.Mode, entry.Daily)

		if i+1 < len(history) {
			gap := daysBetween(entry.Time, history[i+1].Time) - 1
			for j := 0; j < gap; j++ {
				b.pushZero(entry.Time.AddDate(0, 0, j+1))
			}
		}
	}

	// Phase 4: trailing gap up to now, or up to league end once it has ended.
	if daysMissingEnd > 0 && lastDate != nil {
		base := lastDate.AddDate(0, 0, 1)
		for i := 0; i < daysMissingEnd; i++ {
			b.pushZero(base.AddDate(0, 0, i))
		}
	}

	// Phase 5: live point.
	if league.Active && live != nil {
		b.pushSnapshot(models.NowLabel, live.Mean, live.Median, live.Mode, live.Daily)
	}

	return b.series
}

// daysBetween returns the whole calendar days between two instants,
// regardless of order.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

type builder struct {
	series models.CalendarSeries
}

func (b *builder) pushPadding() {
	s := &b.series
	s.Labels = append(s.Labels, nil)
	s.Mean = append(s.Mean, nil)
	s.Median = append(s.Median, nil)
	s.Mode = append(s.Mode, nil)
	s.Daily = append(s.Daily, nil)
}

func (b *builder) pushZero(date time.Time) {
	zero := 0.0
	var daily int64
	label := date.Format(dateLabel)

	s := &b.series
	s.Labels = append(s.Labels, &label)
	s.Mean = append(s.Mean, &zero)
	s.Median = append(s.Median, &zero)
	s.Mode = append(s.Mode, &zero)
	s.Daily = append(s.Daily, &daily)
}

func (b *builder) pushSnapshot(label string, mean, median, mode float64, daily int64) {
	m := round2(mean)
	md := round2(median)
	mo := round2(mode)

	s := &b.series
	s.Labels = append(s.Labels, &label)
	s.Mean = append(s.Mean, &m)
	s.Median = append(s.Median, &md)
	s.Mode = append(s.Mode, &mo)
	s.Daily = append(s.Daily, &daily)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
