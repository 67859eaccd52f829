package models

import "time"

// Listing is one observed sale offer for an item, read fresh per request and
// never mutated. Price and CurrencyItemID are nil for unpriced listings.
// StashCRC is the liveness marker set while the listing was still present in
// the seller's last stash scan; listings without it are not counted.
type Listing struct {
	ItemID         int64
	Account        string
	StackSize      int64
	Price          *float64
	CurrencyItemID *int64
	CurrencyName   *string
	Discovered     time.Time
	Updated        time.Time
	StashCRC       *string
}

// BuyoutOffer is a distinct (price, currency, chaos-equivalent) triple with
// the number of listings that carried it. Equality is exact on the triple
// after the 2-decimal rounding applied at construction; the same nominal price
// under a different reference-currency mean yields a distinct offer.
type BuyoutOffer struct {
	Price    float64
	Currency string
	Chaos    float64
	Count    int
}

// ItemListingSummary aggregates one account's listings of a single item.
//
// Count is the effective quantity sum(stack) + numListings - 1: stacks
// counted fully, minus one unconditionally.
type ItemListingSummary struct {
	Count      int64
	Discovered time.Time
	Updated    time.Time
	Buyouts    []BuyoutOffer
}

// ListingRow pairs a raw listing with the item details needed to render it.
type ListingRow struct {
	Listing Listing
	Detail  ItemDetail
}

// AccountListing is one aggregated item in an account's listing overview.
type AccountListing struct {
	Detail  ItemDetail
	Summary ItemListingSummary
}
