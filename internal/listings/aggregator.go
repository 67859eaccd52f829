// Package listings groups raw per-account sale listings into per-item
// summaries with deduplicated buyout offers.
package listings

import (
	"math"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// DefaultCurrency is the reference currency a priced listing is assumed to be
// listed in when the priced-against item could not be resolved.
const DefaultCurrency = "Chaos Orb"

// MeanLookup resolves the current mean price of a currency item in the
// listing's league. The second return is false when the item has no tracked
// mean, in which case the conversion factor falls back to 1.
type MeanLookup func(itemID int64) (float64, bool)

// Aggregate groups listings by item and reduces each group to an
// ItemListingSummary.
//
// Only listings carrying a stash signature participate. Within a group the
// effective quantity is sum(stack) + numListings - 1, with the -1 applied
// unconditionally even for a single listing. Priced listings are
// folded into distinct (price, currency, chaos) offers in first-occurrence
// order; occurrence counts are tallied by re-scanning the full ordered triple
// list against each distinct triple. Price and chaos-equivalent are rounded
// to 2 decimals once, when the triple is built, so two listings that differ
// only past the second decimal collapse into one offer.
//
// The sum of offer counts for an item always equals its number of priced
// listings.
func Aggregate(all []models.Listing, referenceMean MeanLookup) map[int64]models.ItemListingSummary {
	groups := make(map[int64][]models.Listing)
	for _, l := range all {
		if l.StashCRC == nil {
			continue
		}
		groups[l.ItemID] = append(groups[l.ItemID], l)
	}

	out := make(map[int64]models.ItemListingSummary, len(groups))
	for itemID, group := range groups {
		out[itemID] = summarize(group, referenceMean)
	}
	return out
}

func summarize(group []models.Listing, referenceMean MeanLookup) models.ItemListingSummary {
	s := models.ItemListingSummary{
		Discovered: group[0].Discovered,
		Updated:    group[0].Updated,
	}

	var stacks int64
	for _, l := range group {
		stacks += l.StackSize
		if l.Discovered.Before(s.Discovered) {
			s.Discovered = l.Discovered
		}
		if l.Updated.After(s.Updated) {
			s.Updated = l.Updated
		}
	}
	s.Count = stacks + int64(len(group)) - 1

	// Ordered triples for priced listings only.
	type triple struct {
		price    float64
		currency string
		chaos    float64
	}
	prices := make([]triple, 0, len(group))
	for _, l := range group {
		if l.Price == nil {
			continue
		}
		currency := DefaultCurrency
		if l.CurrencyName != nil {
			currency = *l.CurrencyName
		}
		rate := 1.0
		if l.CurrencyItemID != nil {
			if mean, ok := referenceMean(*l.CurrencyItemID); ok {
				rate = mean
			}
		}
		prices = append(prices, triple{
			price:    round2(*l.Price),
			currency: currency,
			chaos:    round2(rate * *l.Price),
		})
	}

	var distinct []triple
	for _, t := range prices {
		seen := false
		for _, d := range distinct {
			if d == t {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, t)
		}
	}

	for _, d := range distinct {
		count := 0
		for _, t := range prices {
			if t == d {
				count++
			}
		}
		s.Buyouts = append(s.Buyouts, models.BuyoutOffer{
			Price:    d.price,
			Currency: d.currency,
			Chaos:    d.chaos,
			Count:    count,
		})
	}

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
