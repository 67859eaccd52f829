package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/itemwatch/itemwatch/internal/browse"
	"github.com/itemwatch/itemwatch/internal/domain/dto"
	"github.com/itemwatch/itemwatch/internal/service"
)

// Handler provides HTTP handlers for the price-tracking endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	prices   service.PriceService
	listings service.ListingService
	charts   service.ChartService
}

// NewHandler constructs a new Handler instance.
func NewHandler(prices service.PriceService, listings service.ListingService, charts service.ChartService) *Handler {
	return &Handler{prices: prices, listings: listings, charts: charts}
}

// Query parameter length bounds.
const (
	minLeagueLen   = 3
	maxLeagueLen   = 64
	minCategoryLen = 3
	maxCategoryLen = 32
	minAccountLen  = 3
	maxAccountLen  = 32
)

// GetItems handles GET /api/v1/items requests.
//
// GetItems godoc
// @Summary      Browse item prices
// @Description  Returns current price statistics and trend windows for all items of a category in a league
// @Tags         items
// @Produce      json
// @Param        league     query     string  true   "League name"
// @Param        category   query     string  true   "Item category"
// @Param        search     query     string  false  "Name/type substring filter"
// @Param        group      query     string  false  "Item group, or 'all'"
// @Param        sort       query     string  false  "Sort column: price, change, daily, total, item"
// @Param        order      query     string  false  "Sort order: ascending or descending"
// @Success      200  {array}   dto.ItemPriceResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/items [get]
func (h *Handler) GetItems(c *gin.Context) {
	league := c.Query("league")
	if msg := checkLength("league", league, minLeagueLen, maxLeagueLen); msg != "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, nil))
		return
	}
	category := c.Query("category")
	if msg := checkLength("category", category, minCategoryLen, maxCategoryLen); msg != "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, nil))
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid filter parameter", err))
		return
	}

	col := browse.Column(c.DefaultQuery("sort", string(browse.ColumnPrice)))
	ord := browse.Order(c.DefaultQuery("order", string(browse.Descending)))

	items, err := h.prices.BrowseItems(c.Request.Context(), league, category, filter, col, ord)
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid league", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch items", err))
		return
	}

	resp := make([]dto.ItemPriceResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.NewItemPriceResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// GetListings handles GET /api/v1/listings requests.
//
// GetListings godoc
// @Summary      Get account listings
// @Description  Returns an account's live sale listings aggregated per item with deduplicated buyout offers
// @Tags         listings
// @Produce      json
// @Param        league   query     string  true  "League name"
// @Param        account  query     string  true  "Account name, case-insensitive"
// @Success      200  {array}   dto.ListingResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse    "Bad Request"
// @Failure      500  {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/listings [get]
func (h *Handler) GetListings(c *gin.Context) {
	league := c.Query("league")
	if msg := checkLength("league", league, minLeagueLen, maxLeagueLen); msg != "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, nil))
		return
	}
	account := c.Query("account")
	if msg := checkLength("account", account, minAccountLen, maxAccountLen); msg != "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, nil))
		return
	}

	items, err := h.listings.GetAccountListings(c.Request.Context(), league, account)
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid league", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch listings", err))
		return
	}

	resp := make([]dto.ListingResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.NewListingResponse(item.Detail, item.Summary))
	}
	c.JSON(http.StatusOK, resp)
}

// GetItemSeries handles GET /api/v1/item/history requests.
//
// GetItemSeries godoc
// @Summary      Get item chart series
// @Description  Returns a calendar-complete daily price series for one item in one league
// @Tags         items
// @Produce      json
// @Param        league  query     string  true  "League name"
// @Param        id      query     int     true  "Item id"
// @Success      200  {object}  dto.SeriesResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse   "Bad Request"
// @Failure      500  {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/item/history [get]
func (h *Handler) GetItemSeries(c *gin.Context) {
	league := c.Query("league")
	if msg := checkLength("league", league, minLeagueLen, maxLeagueLen); msg != "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, nil))
		return
	}

	itemID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || itemID < 1 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid item id", nil))
		return
	}

	series, err := h.charts.GetItemSeries(c.Request.Context(), league, itemID)
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid league", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch item history", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewSeriesResponse(*series))
}

// GetLeagues handles GET /api/v1/leagues requests.
//
// GetLeagues godoc
// @Summary      List leagues
// @Description  Returns all tracked leagues with their lifecycle metadata
// @Tags         leagues
// @Produce      json
// @Success      200  {array}   dto.LeagueResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/leagues [get]
func (h *Handler) GetLeagues(c *gin.Context) {
	leagues, err := h.charts.GetLeagues(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch leagues", err))
		return
	}

	resp := make([]dto.LeagueResponse, 0, len(leagues))
	for _, l := range leagues {
		resp = append(resp, dto.NewLeagueResponse(l))
	}
	c.JSON(http.StatusOK, resp)
}

func checkLength(name, value string, min, max int) string {
	switch {
	case value == "":
		return "Missing " + name
	case len(value) < min:
		return capitalize(name) + " too short"
	case len(value) > max:
		return capitalize(name) + " too long"
	default:
		return ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseFilter collects the optional browse filter parameters.
func parseFilter(c *gin.Context) (browse.Filter, error) {
	f := browse.Filter{
		Search: strings.ToLower(strings.TrimSpace(c.Query("search"))),
		Group:  c.DefaultQuery("group", "all"),
	}

	f.ShowLowConfidence = c.Query("lowConfidence") == "true"

	var err error
	if f.Rarity, err = queryIntPtr(c, "rarity"); err != nil {
		return f, err
	}
	if f.Links, err = queryIntPtr(c, "links"); err != nil {
		return f, err
	}
	if f.GemLevel, err = queryIntPtr(c, "gemLvl"); err != nil {
		return f, err
	}
	if f.GemQuality, err = queryIntPtr(c, "gemQuality"); err != nil {
		return f, err
	}
	if f.MapTier, err = queryIntPtr(c, "tier"); err != nil {
		return f, err
	}
	if f.ItemLevel, err = queryIntPtr(c, "ilvl"); err != nil {
		return f, err
	}

	if s := c.Query("gemCorrupted"); s != "" {
		b := s == "true"
		f.GemCorrupted = &b
	}
	if s := c.Query("influence"); s != "" {
		f.Influence = &s
	}

	// A nil Links filter hides every linked item, which only makes sense for
	// the weapon/armour views; the API default is "show everything".
	if f.Links == nil {
		all := -1
		f.Links = &all
	}

	return f, nil
}

func queryIntPtr(c *gin.Context, name string) (*int, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
