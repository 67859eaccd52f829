// Package history encodes and decodes the compact rolling-window
// representation of an item's mean-price history.
//
// The stored form ("spark") is a comma-joined list of up to six prior daily
// means, newest first. Decoding reverses it to chronological order, appends
// the current mean and left-pads the result to a fixed seven-slot window so
// that trend arrays are directly comparable across items.
package history

import (
	"math"
	"strconv"
	"strings"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// retain is the number of prior daily means kept in the stored encoding.
const retain = models.HistoryWindowSize - 1

// Decode expands a stored spark encoding into a trend window around the given
// current mean.
//
// A nil encoding yields six leading nil slots and the current mean. Otherwise
// the stored values are reversed to oldest-first, the current mean appended,
// and the change percent computed against the oldest retained sample. The
// change is 0 whenever the current mean is 0. The window is left-padded with
// nil, never truncated.
//
// Precondition: a non-nil encoding is a comma-joined list of numeric
// literals. Unparseable tokens decode as 0; validating the field belongs to
// the caller.
func Decode(encoded *string, currentMean float64) models.HistoryWindow {
	if encoded == nil {
		window := make([]*float64, models.HistoryWindowSize)
		window[models.HistoryWindowSize-1] = ptr(currentMean)
		return models.HistoryWindow{History: window}
	}

	tokens := strings.Split(*encoded, ",")

	// Stored newest-first; walk backwards to restore chronological order.
	values := make([]float64, 0, len(tokens)+1)
	for i := len(tokens) - 1; i >= 0; i-- {
		v, _ := strconv.ParseFloat(strings.TrimSpace(tokens[i]), 64)
		values = append(values, v)
	}
	values = append(values, currentMean)

	var change float64
	if currentMean != 0 {
		change = round2((1 - values[0]/currentMean) * 100)
	}

	pad := models.HistoryWindowSize - len(values)
	if pad < 0 {
		pad = 0
	}
	window := make([]*float64, 0, pad+len(values))
	for i := 0; i < pad; i++ {
		window = append(window, nil)
	}
	for i := range values {
		window = append(window, ptr(values[i]))
	}

	return models.HistoryWindow{History: window, ChangePercent: change}
}

// Encode packs recent daily means, given oldest-first, into the stored spark
// form: the last `retain` values joined newest-first. Returns nil when there
// is nothing to store.
func Encode(means []float64) *string {
	if len(means) == 0 {
		return nil
	}
	if len(means) > retain {
		means = means[len(means)-retain:]
	}
	parts := make([]string, 0, len(means))
	for i := len(means) - 1; i >= 0; i-- {
		parts = append(parts, strconv.FormatFloat(means[i], 'f', -1, 64))
	}
	s := strings.Join(parts, ",")
	return &s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
