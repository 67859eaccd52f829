// Package browse filters and orders item price rows for the browse view.
//
// The filter is an explicit configuration value and both the predicate and
// the comparators are pure functions of (item, filter); no selection state
// lives in this package.
package browse

import (
	"sort"
	"strings"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// lowConfidenceDaily is the daily-listing count below which an item is
// considered low confidence in an active league.
const lowConfidenceDaily = 5

// Filter holds the complete browse selection. Nil pointer fields mean the
// dimension is unconstrained, except Links and the influence/tier sentinels
// documented on each field.
type Filter struct {
	// LeagueActive enables the low-confidence rule, which only makes sense
	// while new listings are still flowing in.
	LeagueActive      bool
	ShowLowConfidence bool

	// Search is a case-insensitive substring matched against name and type.
	Search string

	// Group is a group name, or "all".
	Group string

	// Rarity matches the item frame exactly when set.
	Rarity *int

	// Links: nil shows only unlinked items, -1 shows everything, a positive
	// value matches the link count exactly.
	Links *int

	// Gem constraints, applied only to categories with gem fields.
	GemLevel     *int
	GemQuality   *int
	GemCorrupted *bool

	// MapTier: 0 shows only untiered maps, a positive value matches exactly.
	MapTier *int

	// Influence: "none" shows uninfluenced bases, "either" shows any
	// influenced base, any other value matches the variation exactly.
	Influence *string

	// ItemLevel matches the base item level when both are known.
	ItemLevel *int
}

// Hidden reports whether an item is excluded by the filter.
func Hidden(item models.ItemPrice, f Filter) bool {
	if !f.ShowLowConfidence && f.LeagueActive && item.Daily < lowConfidenceDaily {
		return true
	}

	if f.Search != "" && !matchesSearch(item.Detail, f.Search) {
		return true
	}

	if f.Group != "all" && f.Group != "" {
		if item.Detail.Group == nil || f.Group != *item.Detail.Group {
			return true
		}
	}

	if f.Rarity != nil && *f.Rarity != item.Detail.Frame {
		return true
	}

	if f.Links == nil {
		if item.Detail.LinkCount != nil {
			return true
		}
	} else if *f.Links > 0 {
		if item.Detail.LinkCount == nil || *item.Detail.LinkCount != *f.Links {
			return true
		}
	}

	cat := item.Detail.Category
	switch {
	case cat.HasGemFields:
		if hiddenGem(item.Detail, f) {
			return true
		}
	case cat.HasMapFields:
		if hiddenMap(item.Detail, f) {
			return true
		}
	case cat.HasBaseFields:
		if hiddenBase(item.Detail, f) {
			return true
		}
	}

	return false
}

func matchesSearch(d models.ItemDetail, search string) bool {
	if strings.Contains(strings.ToLower(d.Name), search) {
		return true
	}
	if d.Type != nil && strings.Contains(strings.ToLower(*d.Type), search) {
		return true
	}
	return false
}

func hiddenGem(d models.ItemDetail, f Filter) bool {
	if f.GemLevel != nil && (d.GemLevel == nil || *d.GemLevel != *f.GemLevel) {
		return true
	}
	if f.GemQuality != nil && (d.GemQuality == nil || *d.GemQuality != *f.GemQuality) {
		return true
	}
	if f.GemCorrupted != nil && (d.GemIsCorrupted == nil || *d.GemIsCorrupted != *f.GemCorrupted) {
		return true
	}
	return false
}

func hiddenMap(d models.ItemDetail, f Filter) bool {
	if f.MapTier == nil {
		return false
	}
	if *f.MapTier == 0 {
		return d.MapTier != nil
	}
	return d.MapTier == nil || *d.MapTier != *f.MapTier
}

func hiddenBase(d models.ItemDetail, f Filter) bool {
	if f.Influence != nil {
		switch *f.Influence {
		case "none":
			if d.Variation != nil {
				return true
			}
		case "either":
			if d.Variation == nil {
				return true
			}
		default:
			if d.Variation == nil || *d.Variation != *f.Influence {
				return true
			}
		}
	}

	if f.ItemLevel != nil && d.BaseItemLevel != nil && *d.BaseItemLevel != *f.ItemLevel {
		return true
	}
	return false
}

// Column selects the sort key for the browse table.
type Column string

const (
	ColumnPrice  Column = "price"
	ColumnChange Column = "change"
	ColumnDaily  Column = "daily"
	ColumnTotal  Column = "total"
	ColumnItem   Column = "item"
)

// Order is the sort direction.
type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

// Sort orders items in place by the given column and direction. Unknown
// columns fall back to price ordering. The sort is stable so equal keys keep
// their storage order.
func Sort(items []models.ItemPrice, col Column, ord Order) {
	less := lessFunc(col)
	if ord == Descending {
		inner := less
		less = func(a, b models.ItemPrice) bool { return inner(b, a) }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func lessFunc(col Column) func(a, b models.ItemPrice) bool {
	switch col {
	case ColumnChange:
		return func(a, b models.ItemPrice) bool { return a.Change < b.Change }
	case ColumnDaily:
		return func(a, b models.ItemPrice) bool { return a.Daily < b.Daily }
	case ColumnTotal:
		return func(a, b models.ItemPrice) bool { return a.Total < b.Total }
	case ColumnItem:
		return func(a, b models.ItemPrice) bool { return a.Detail.Name < b.Detail.Name }
	default:
		return func(a, b models.ItemPrice) bool { return a.Mean < b.Mean }
	}
}
