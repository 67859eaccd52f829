package storage

import (
	"database/sql"
	"fmt"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// ItemsRepository defines the contract for all price-tracking DB operations.
type ItemsRepository interface {
	GetLeagueByName(name string) (*models.League, error)
	GetLeagues() ([]models.League, error)
	GetItemPrices(leagueID int64, category string) ([]models.ItemPriceRow, error)
	GetItemHistory(leagueID, itemID int64) ([]models.PriceSnapshot, error)
	GetLiveStats(leagueID, itemID int64) (*models.PriceSnapshot, error)
	GetAccountListings(leagueID int64, account string) ([]models.ListingRow, error)
	GetCurrencyMeans(leagueID int64) (map[int64]float64, error)
	GetRecentDailyMeans(leagueID int64, days int) (map[int64][]float64, error)
	UpdateItemSpark(leagueID, itemID int64, spark *string) error
}

type itemsRepository struct {
	db *sql.DB
}

func NewItemsRepository(db *sql.DB) ItemsRepository {
	return &itemsRepository{db: db}
}

// GetLeagueByName returns one league by its unique name, or nil when no such
// league exists. The special flag is decided here, once, from the league id.
func (r *itemsRepository) GetLeagueByName(name string) (*models.League, error) {
	row := r.db.QueryRow(`
		SELECT id, name, display, start_date, end_date, active
		FROM leagues
		WHERE name = $1
	`, name)

	l, err := scanLeague(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query league %q: %w", name, err)
	}
	return l, nil
}

// GetLeagues returns all leagues, oldest first.
func (r *itemsRepository) GetLeagues() ([]models.League, error) {
	rows, err := r.db.Query(`
		SELECT id, name, display, start_date, end_date, active
		FROM leagues
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query leagues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.League
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("scan league: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLeague(s rowScanner) (*models.League, error) {
	var l models.League
	var start, end sql.NullTime

	if err := s.Scan(&l.ID, &l.Name, &l.Display, &start, &end, &l.Active); err != nil {
		return nil, err
	}
	if start.Valid {
		l.Start = &start.Time
	}
	if end.Valid {
		l.End = &end.Time
	}
	l.Special = models.IsSpecialLeagueID(l.ID)
	return &l, nil
}

// itemDetailColumns is the shared column list for item description scans.
// Order must match itemDetailScan.targets.
const itemDetailColumns = `
	i.id, i.name, i.type, i.category, i.group_name, i.frame,
	i.map_series, i.map_tier,
	i.shaper, i.elder, i.crusader, i.redeemer, i.hunter, i.warlord,
	i.base_level, i.enchant_min, i.enchant_max,
	i.gem_level, i.gem_quality, i.gem_corrupted,
	i.stack_size, i.links, i.variation, i.icon`

// influenceNames maps the per-item influence flag columns, in scan order.
var influenceNames = []string{"shaper", "elder", "crusader", "redeemer", "hunter", "warlord"}

type itemDetailScan struct {
	typ          sql.NullString
	group        sql.NullString
	mapSeries    sql.NullInt64
	mapTier      sql.NullInt64
	influences   [6]sql.NullBool
	baseLevel    sql.NullInt64
	enchantMin   sql.NullFloat64
	enchantMax   sql.NullFloat64
	gemLevel     sql.NullInt64
	gemQuality   sql.NullInt64
	gemCorrupted sql.NullBool
	stackSize    sql.NullInt64
	links        sql.NullInt64
	variation    sql.NullString
}

// targets returns the scan destinations in itemDetailColumns order, filling
// the non-nullable fields of d directly.
func (sc *itemDetailScan) targets(d *models.ItemDetail, category *string) []interface{} {
	return []interface{}{
		&d.ID, &d.Name, &sc.typ, category, &sc.group, &d.Frame,
		&sc.mapSeries, &sc.mapTier,
		&sc.influences[0], &sc.influences[1], &sc.influences[2],
		&sc.influences[3], &sc.influences[4], &sc.influences[5],
		&sc.baseLevel, &sc.enchantMin, &sc.enchantMax,
		&sc.gemLevel, &sc.gemQuality, &sc.gemCorrupted,
		&sc.stackSize, &sc.links, &sc.variation, &d.Icon,
	}
}

// apply copies the scanned nullable columns into the detail struct.
func (sc *itemDetailScan) apply(d *models.ItemDetail, category string) {
	d.Category = models.NewCategory(category)

	d.Type = nullStr(sc.typ)
	d.Group = nullStr(sc.group)
	d.MapSeries = nullInt(sc.mapSeries)
	d.MapTier = nullInt(sc.mapTier)
	d.BaseItemLevel = nullInt(sc.baseLevel)
	d.EnchantMin = nullFloat(sc.enchantMin)
	d.EnchantMax = nullFloat(sc.enchantMax)
	d.GemLevel = nullInt(sc.gemLevel)
	d.GemQuality = nullInt(sc.gemQuality)
	d.GemIsCorrupted = nullBool(sc.gemCorrupted)
	d.StackSize = nullInt(sc.stackSize)
	d.LinkCount = nullInt(sc.links)
	d.Variation = nullStr(sc.variation)

	if sc.influences[0].Valid {
		b := sc.influences[0].Bool
		d.BaseIsShaper = &b
	}
	if sc.influences[1].Valid {
		b := sc.influences[1].Bool
		d.BaseIsElder = &b
	}
	for idx, flag := range sc.influences {
		if flag.Valid && flag.Bool {
			d.Influences = append(d.Influences, influenceNames[idx])
		}
	}
}

// GetItemPrices returns the current price statistics for every item of a
// category in a league, most expensive first.
func (r *itemsRepository) GetItemPrices(leagueID int64, category string) ([]models.ItemPriceRow, error) {
	query := `
		SELECT ` + itemDetailColumns + `,
			li.mean, li.median, li.mode, li.min, li.max, li.exalted,
			li.total, li.daily, li.current, li.accepted, li.spark
		FROM league_items AS li
		JOIN items AS i ON i.id = li.item_id
		WHERE li.league_id = $1
		  AND i.category = $2
		ORDER BY li.mean DESC`

	rows, err := r.db.Query(query, leagueID, category)
	if err != nil {
		return nil, fmt.Errorf("query item prices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ItemPriceRow
	for rows.Next() {
		var p models.ItemPriceRow
		var sc itemDetailScan
		var cat string
		var spark sql.NullString

		targets := sc.targets(&p.Detail, &cat)
		targets = append(targets,
			&p.Mean, &p.Median, &p.Mode, &p.Min, &p.Max, &p.Exalted,
			&p.Total, &p.Daily, &p.Current, &p.Accepted, &spark,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan item price: %w", err)
		}
		sc.apply(&p.Detail, cat)
		p.Spark = nullStr(spark)
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetItemHistory returns the daily snapshots of one item in one league,
// oldest first.
func (r *itemsRepository) GetItemHistory(leagueID, itemID int64) ([]models.PriceSnapshot, error) {
	rows, err := r.db.Query(`
		SELECT time, mean, median, mode, daily, total, current, accepted
		FROM league_history_daily
		WHERE league_id = $1 AND item_id = $2
		ORDER BY time
	`, leagueID, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.PriceSnapshot
	for rows.Next() {
		var s models.PriceSnapshot
		if err := rows.Scan(&s.Time, &s.Mean, &s.Median, &s.Mode, &s.Daily, &s.Total, &s.Current, &s.Accepted); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetLiveStats returns an item's current league statistics as a snapshot, or
// nil when the item is not tracked in the league.
func (r *itemsRepository) GetLiveStats(leagueID, itemID int64) (*models.PriceSnapshot, error) {
	var s models.PriceSnapshot
	err := r.db.QueryRow(`
		SELECT mean, median, mode, daily, total, current, accepted
		FROM league_items
		WHERE league_id = $1 AND item_id = $2
	`, leagueID, itemID).Scan(&s.Mean, &s.Median, &s.Mode, &s.Daily, &s.Total, &s.Current, &s.Accepted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query live stats: %w", err)
	}
	return &s, nil
}

// GetAccountListings returns one account's raw listings in a league, in
// insertion order so first-occurrence ordering downstream is stable. Only
// listings still present in the last stash scan are returned.
func (r *itemsRepository) GetAccountListings(leagueID int64, account string) ([]models.ListingRow, error) {
	query := `
		SELECT ` + itemDetailColumns + `,
			a.name, e.stack_size, e.price, e.currency_item_id, ci.name,
			e.discovered, e.updated, e.stash_crc
		FROM league_entries AS e
		JOIN accounts AS a ON a.id = e.account_id
		JOIN items AS i ON i.id = e.item_id
		LEFT JOIN items AS ci ON ci.id = e.currency_item_id
		WHERE e.league_id = $1
		  AND lower(a.name) = lower($2)
		  AND e.stash_crc IS NOT NULL
		ORDER BY e.id`

	rows, err := r.db.Query(query, leagueID, account)
	if err != nil {
		return nil, fmt.Errorf("query account listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ListingRow
	for rows.Next() {
		var lr models.ListingRow
		var sc itemDetailScan
		var cat string
		var price sql.NullFloat64
		var currencyID sql.NullInt64
		var currencyName sql.NullString
		var crc sql.NullString

		targets := sc.targets(&lr.Detail, &cat)
		targets = append(targets,
			&lr.Listing.Account, &lr.Listing.StackSize, &price, &currencyID, &currencyName,
			&lr.Listing.Discovered, &lr.Listing.Updated, &crc,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		sc.apply(&lr.Detail, cat)

		lr.Listing.ItemID = lr.Detail.ID
		lr.Listing.Price = nullFloat(price)
		if currencyID.Valid {
			id := currencyID.Int64
			lr.Listing.CurrencyItemID = &id
		}
		lr.Listing.CurrencyName = nullStr(currencyName)
		lr.Listing.StashCRC = nullStr(crc)
		out = append(out, lr)
	}
	return out, rows.Err()
}

// GetCurrencyMeans returns the current mean of every currency item tracked in
// the league, keyed by item id. Used to convert listing prices into their
// chaos equivalent.
func (r *itemsRepository) GetCurrencyMeans(leagueID int64) (map[int64]float64, error) {
	rows, err := r.db.Query(`
		SELECT li.item_id, li.mean
		FROM league_items AS li
		JOIN items AS i ON i.id = li.item_id
		WHERE li.league_id = $1
		  AND i.category = 'currency'
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("query currency means: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64]float64)
	for rows.Next() {
		var id int64
		var mean float64
		if err := rows.Scan(&id, &mean); err != nil {
			return nil, fmt.Errorf("scan currency mean: %w", err)
		}
		out[id] = mean
	}
	return out, rows.Err()
}

// GetRecentDailyMeans returns up to the given number of most recent daily
// means for every item in the league, keyed by item id. Values are in
// chronological order per item.
func (r *itemsRepository) GetRecentDailyMeans(leagueID int64, days int) (map[int64][]float64, error) {
	rows, err := r.db.Query(`
		SELECT item_id, mean FROM (
			SELECT item_id, mean, time,
			       ROW_NUMBER() OVER (PARTITION BY item_id ORDER BY time DESC) AS rn
			FROM league_history_daily
			WHERE league_id = $1
		) AS recent
		WHERE rn <= $2
		ORDER BY item_id, time
	`, leagueID, days)
	if err != nil {
		return nil, fmt.Errorf("query daily means: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]float64)
	for rows.Next() {
		var id int64
		var mean float64
		if err := rows.Scan(&id, &mean); err != nil {
			return nil, fmt.Errorf("scan daily mean: %w", err)
		}
		out[id] = append(out[id], mean)
	}
	return out, rows.Err()
}

// UpdateItemSpark stores a freshly computed compact history encoding.
func (r *itemsRepository) UpdateItemSpark(leagueID, itemID int64, spark *string) error {
	var value interface{}
	if spark != nil {
		value = *spark
	}
	_, err := r.db.Exec(`
		UPDATE league_items SET spark = $3
		WHERE league_id = $1 AND item_id = $2
	`, leagueID, itemID, value)
	return err
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func nullBool(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	return &b.Bool
}
