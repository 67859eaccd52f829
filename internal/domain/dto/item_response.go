package dto

import (
	"time"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// ItemAttributes is the static item description embedded in both the browse
// and listings payloads. Attributes that do not apply to the item's category
// are omitted entirely rather than serialized as null.
type ItemAttributes struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Type     *string `json:"type,omitempty"`
	Category string  `json:"category"`
	Group    *string `json:"group,omitempty"`
	Frame    int     `json:"frame"`

	MapSeries *int `json:"mapSeries,omitempty"`
	MapTier   *int `json:"mapTier,omitempty"`

	Influences    []string `json:"influences"`
	BaseIsShaper  *bool    `json:"baseIsShaper,omitempty"`
	BaseIsElder   *bool    `json:"baseIsElder,omitempty"`
	BaseItemLevel *int     `json:"baseItemLevel,omitempty"`

	GemLevel       *int  `json:"gemLevel,omitempty"`
	GemQuality     *int  `json:"gemQuality,omitempty"`
	GemIsCorrupted *bool `json:"gemIsCorrupted,omitempty"`

	EnchantMin *Float `json:"enchantMin,omitempty"`
	EnchantMax *Float `json:"enchantMax,omitempty"`

	StackSize *int `json:"stackSize,omitempty"`
	LinkCount *int `json:"linkCount,omitempty"`

	Variation *string `json:"variation,omitempty"`
	Icon      string  `json:"icon"`
}

// NewItemAttributes maps an ItemDetail onto the wire shape. Base items get
// explicit false influence flags instead of omitted ones, so clients can
// distinguish "not influenced" from "not a base item".
func NewItemAttributes(d models.ItemDetail) ItemAttributes {
	a := ItemAttributes{
		ID:             d.ID,
		Name:           d.Name,
		Type:           d.Type,
		Category:       d.Category.Name,
		Group:          d.Group,
		Frame:          d.Frame,
		MapSeries:      d.MapSeries,
		MapTier:        d.MapTier,
		Influences:     d.Influences,
		BaseIsShaper:   d.BaseIsShaper,
		BaseIsElder:    d.BaseIsElder,
		BaseItemLevel:  d.BaseItemLevel,
		GemLevel:       d.GemLevel,
		GemQuality:     d.GemQuality,
		GemIsCorrupted: d.GemIsCorrupted,
		EnchantMin:     floatPtr(d.EnchantMin),
		EnchantMax:     floatPtr(d.EnchantMax),
		StackSize:      d.StackSize,
		LinkCount:      d.LinkCount,
		Variation:      d.Variation,
		Icon:           d.Icon,
	}

	if a.Influences == nil {
		a.Influences = []string{}
	}

	if d.Category.HasBaseFields {
		f := false
		if a.BaseIsShaper == nil {
			a.BaseIsShaper = &f
		}
		if a.BaseIsElder == nil {
			a.BaseIsElder = &f
		}
	}

	return a
}

// ItemPriceResponse is one row of the GET /api/v1/items payload: item
// attributes merged with current price statistics and, for active leagues,
// the decoded trend window.
type ItemPriceResponse struct {
	ItemAttributes

	Mean     Float `json:"mean"`
	Median   Float `json:"median"`
	Mode     Float `json:"mode"`
	Min      Float `json:"min"`
	Max      Float `json:"max"`
	Exalted  Float `json:"exalted"`
	Total    int64 `json:"total"`
	Daily    int64 `json:"daily"`
	Current  int64 `json:"current"`
	Accepted int64 `json:"accepted"`

	Change  Float    `json:"change"`
	History []*Float `json:"history"`
}

// NewItemPriceResponse maps an assembled ItemPrice onto the wire shape.
// History stays null for inactive leagues; inside the window, absent days are
// explicit nulls, never omitted.
func NewItemPriceResponse(p models.ItemPrice) ItemPriceResponse {
	resp := ItemPriceResponse{
		ItemAttributes: NewItemAttributes(p.Detail),
		Mean:           Float(p.Mean),
		Median:         Float(p.Median),
		Mode:           Float(p.Mode),
		Min:            Float(p.Min),
		Max:            Float(p.Max),
		Exalted:        Float(p.Exalted),
		Total:          p.Total,
		Daily:          p.Daily,
		Current:        p.Current,
		Accepted:       p.Accepted,
		Change:         Float(p.Change),
	}
	if p.History != nil {
		resp.History = floats(p.History)
	}
	return resp
}

// BuyoutResponse is one distinct buyout offer with its occurrence count.
type BuyoutResponse struct {
	Price    Float  `json:"price"`
	Currency string `json:"currency"`
	Chaos    Float  `json:"chaos"`
	Count    int    `json:"count"`
}

// ListingResponse is one row of the GET /api/v1/listings payload: item
// attributes merged with the aggregated listing summary for one account.
type ListingResponse struct {
	ItemAttributes

	Discovered string           `json:"discovered"`
	Updated    string           `json:"updated"`
	Count      int64            `json:"count"`
	Buyout     []BuyoutResponse `json:"buyout"`
}

// listingTimeLayout is the wire timestamp format, always UTC with a literal Z
// suffix.
const listingTimeLayout = "2006-01-02T15:04:05Z"

// NewListingResponse maps a listing summary onto the wire shape.
func NewListingResponse(d models.ItemDetail, s models.ItemListingSummary) ListingResponse {
	resp := ListingResponse{
		ItemAttributes: NewItemAttributes(d),
		Discovered:     s.Discovered.UTC().Format(listingTimeLayout),
		Updated:        s.Updated.UTC().Format(listingTimeLayout),
		Count:          s.Count,
		Buyout:         []BuyoutResponse{},
	}
	for _, b := range s.Buyouts {
		resp.Buyout = append(resp.Buyout, BuyoutResponse{
			Price:    Float(b.Price),
			Currency: b.Currency,
			Chaos:    Float(b.Chaos),
			Count:    b.Count,
		})
	}
	return resp
}

// SeriesResponse is the GET /api/v1/item/history payload: parallel label and
// value channels, all the same length. Null labels mark alignment padding.
type SeriesResponse struct {
	Keys []*string     `json:"keys"`
	Vals SeriesChannel `json:"vals"`
}

// SeriesChannel carries the value channels of a chart series.
type SeriesChannel struct {
	Mean   []*Float `json:"mean"`
	Median []*Float `json:"median"`
	Mode   []*Float `json:"mode"`
	Daily  []*int64 `json:"daily"`
}

// NewSeriesResponse maps a CalendarSeries onto the wire shape.
func NewSeriesResponse(s models.CalendarSeries) SeriesResponse {
	return SeriesResponse{
		Keys: s.Labels,
		Vals: SeriesChannel{
			Mean:   floats(s.Mean),
			Median: floats(s.Median),
			Mode:   floats(s.Mode),
			Daily:  s.Daily,
		},
	}
}

// LeagueResponse is one row of the GET /api/v1/leagues payload.
type LeagueResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Display string  `json:"display"`
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Active  bool    `json:"active"`
	Special bool    `json:"special"`
}

// NewLeagueResponse maps a league onto the wire shape.
func NewLeagueResponse(l models.League) LeagueResponse {
	return LeagueResponse{
		ID:      l.ID,
		Name:    l.Name,
		Display: l.Display,
		Start:   formatTime(l.Start),
		End:     formatTime(l.End),
		Active:  l.Active,
		Special: l.Special,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(listingTimeLayout)
	return &s
}
