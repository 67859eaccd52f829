package storage

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*itemsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &itemsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

var leagueCols = []string{"id", "name", "display", "start_date", "end_date", "active"}

func TestGetLeagueByName_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, name, display, start_date, end_date, active\s+FROM leagues\s+WHERE name = \$1`).
		WithArgs("Season").
		WillReturnRows(sqlmock.NewRows(leagueCols).AddRow(int64(10), "Season", "Season", start, end, true))

	l, err := repo.GetLeagueByName("Season")
	if err != nil || l == nil {
		t.Fatalf("unexpected l=%+v err=%v", l, err)
	}
	if l.ID != 10 || !l.Active || l.Special {
		t.Fatalf("unexpected league: %+v", l)
	}
	if l.Start == nil || !l.Start.Equal(start) || l.End == nil || !l.End.Equal(end) {
		t.Fatalf("unexpected dates: %+v", l)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetLeagueByName_NotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`FROM leagues`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(leagueCols))

	l, err := repo.GetLeagueByName("nope")
	if err != nil || l != nil {
		t.Fatalf("want nil,nil got l=%+v err=%v", l, err)
	}
}

func TestGetLeagues_SpecialFlag(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows(leagueCols).
		AddRow(int64(1), "Standard", "Standard", nil, nil, true).
		AddRow(int64(2), "Hardcore", "Hardcore", nil, nil, true).
		AddRow(int64(10), "Season", "Season", nil, nil, true)

	mock.ExpectQuery(`FROM leagues\s+ORDER BY id`).WillReturnRows(rows)

	out, err := repo.GetLeagues()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 leagues, got %d", len(out))
	}
	// The permanent leagues occupy the low id range.
	if !out[0].Special || !out[1].Special || out[2].Special {
		t.Fatalf("unexpected special flags: %+v", out)
	}
	if out[0].Start != nil || out[0].End != nil {
		t.Fatalf("permanent league should have no dates: %+v", out[0])
	}
}

// itemRowValues returns AddRow arguments matching itemDetailColumns for a
// plain item of the given category, with every optional column NULL.
func itemRowValues(id int64, name, category string) []driver.Value {
	return []driver.Value{
		id, name, nil, category, nil, 5,
		nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, "icon.png",
	}
}

var itemCols = []string{
	"id", "name", "type", "category", "group_name", "frame",
	"map_series", "map_tier",
	"shaper", "elder", "crusader", "redeemer", "hunter", "warlord",
	"base_level", "enchant_min", "enchant_max",
	"gem_level", "gem_quality", "gem_corrupted",
	"stack_size", "links", "variation", "icon",
}

func TestGetItemPrices_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	cols := append(append([]string{}, itemCols...),
		"mean", "median", "mode", "min", "max", "exalted",
		"total", "daily", "current", "accepted", "spark")

	vals := append(itemRowValues(7, "Exalted Orb", "currency"),
		150.5, 150.0, 149.0, 140.0, 160.0, 1.0,
		int64(5000), int64(120), int64(30), int64(400), "149,148")

	mock.ExpectQuery(`FROM league_items AS li\s+JOIN items AS i`).
		WithArgs(int64(10), "currency").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(vals...))

	out, err := repo.GetItemPrices(10, "currency")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}

	row := out[0]
	if row.Detail.ID != 7 || row.Detail.Name != "Exalted Orb" {
		t.Fatalf("unexpected detail: %+v", row.Detail)
	}
	if row.Detail.Category.Name != "currency" || row.Detail.Category.HasGemFields {
		t.Fatalf("unexpected category: %+v", row.Detail.Category)
	}
	if row.Detail.Type != nil || row.Detail.LinkCount != nil {
		t.Fatalf("NULL columns must scan to nil pointers: %+v", row.Detail)
	}
	if row.Mean != 150.5 || row.Daily != 120 {
		t.Fatalf("unexpected stats: %+v", row)
	}
	if row.Spark == nil || *row.Spark != "149,148" {
		t.Fatalf("unexpected spark: %v", row.Spark)
	}
}

func TestGetItemPrices_GemColumns(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	cols := append(append([]string{}, itemCols...),
		"mean", "median", "mode", "min", "max", "exalted",
		"total", "daily", "current", "accepted", "spark")

	vals := []driver.Value{
		int64(9), "Enlighten Support", nil, "gem", nil, 0,
		nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil,
		4, 0, true,
		nil, nil, nil, "gem.png",
		30.0, 30.0, 30.0, 28.0, 32.0, 0.2,
		int64(100), int64(10), int64(3), int64(9), nil,
	}

	mock.ExpectQuery(`FROM league_items AS li`).
		WithArgs(int64(10), "gem").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(vals...))

	out, err := repo.GetItemPrices(10, "gem")
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected out=%+v err=%v", out, err)
	}

	d := out[0].Detail
	if !d.Category.HasGemFields {
		t.Fatalf("expected gem capability, got %+v", d.Category)
	}
	if d.GemLevel == nil || *d.GemLevel != 4 || d.GemQuality == nil || *d.GemQuality != 0 {
		t.Fatalf("unexpected gem fields: %+v", d)
	}
	if d.GemIsCorrupted == nil || !*d.GemIsCorrupted {
		t.Fatalf("expected corrupted gem, got %+v", d)
	}
	if out[0].Spark != nil {
		t.Fatalf("expected nil spark, got %v", *out[0].Spark)
	}
}

func TestGetItemHistory_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d1 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"time", "mean", "median", "mode", "daily", "total", "current", "accepted"}).
		AddRow(d1, 10.0, 9.5, 9.0, int64(50), int64(900), int64(20), int64(700)).
		AddRow(d2, 11.0, 10.5, 10.0, int64(60), int64(960), int64(25), int64(720))

	mock.ExpectQuery(`FROM league_history_daily\s+WHERE league_id = \$1 AND item_id = \$2`).
		WithArgs(int64(10), int64(7)).
		WillReturnRows(rows)

	out, err := repo.GetItemHistory(10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(out))
	}
	if !out[0].Time.Equal(d1) || out[0].Mean != 10 || out[1].Daily != 60 {
		t.Fatalf("unexpected snapshots: %+v", out)
	}
}

func TestGetLiveStats_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM league_items")).
		WithArgs(int64(10), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"mean", "median", "mode", "daily", "total", "current", "accepted"}).
			AddRow(10.0, 9.5, 9.0, int64(50), int64(900), int64(20), int64(700)))

	s, err := repo.GetLiveStats(10, 7)
	if err != nil || s == nil {
		t.Fatalf("unexpected s=%+v err=%v", s, err)
	}
	if s.Mean != 10 || s.Accepted != 700 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestGetLiveStats_NotTracked(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM league_items")).
		WithArgs(int64(10), int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"mean", "median", "mode", "daily", "total", "current", "accepted"}))

	s, err := repo.GetLiveStats(10, 404)
	if err != nil || s != nil {
		t.Fatalf("want nil,nil got s=%+v err=%v", s, err)
	}
}

func TestGetAccountListings_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	cols := append(append([]string{}, itemCols...),
		"account", "stack_size", "price", "currency_item_id", "currency_name",
		"discovered", "updated", "stash_crc")

	disc := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	upd := disc.Add(time.Hour)

	vals := append(itemRowValues(7, "Divine Orb", "currency"),
		"Trader", int64(3), 200.0, int64(42), "Exalted Orb",
		disc, upd, "a1b2c3")

	mock.ExpectQuery(`FROM league_entries AS e`).
		WithArgs(int64(10), "Trader").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(vals...))

	out, err := repo.GetAccountListings(10, "Trader")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(out))
	}

	l := out[0].Listing
	if l.ItemID != 7 || l.Account != "Trader" || l.StackSize != 3 {
		t.Fatalf("unexpected listing: %+v", l)
	}
	if l.Price == nil || *l.Price != 200 {
		t.Fatalf("unexpected price: %v", l.Price)
	}
	if l.CurrencyItemID == nil || *l.CurrencyItemID != 42 || l.CurrencyName == nil || *l.CurrencyName != "Exalted Orb" {
		t.Fatalf("unexpected currency: %+v", l)
	}
	if l.StashCRC == nil || *l.StashCRC != "a1b2c3" {
		t.Fatalf("unexpected stash crc: %v", l.StashCRC)
	}
}

func TestGetCurrencyMeans_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"item_id", "mean"}).
		AddRow(int64(42), 150.5).
		AddRow(int64(43), 0.5)

	mock.ExpectQuery(`i\.category = 'currency'`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	out, err := repo.GetCurrencyMeans(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[42] != 150.5 || out[43] != 0.5 {
		t.Fatalf("unexpected means: %v", out)
	}
}

func TestGetRecentDailyMeans_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"item_id", "mean"}).
		AddRow(int64(7), 9.0).
		AddRow(int64(7), 10.0).
		AddRow(int64(8), 0.1)

	mock.ExpectQuery(`ROW_NUMBER\(\) OVER \(PARTITION BY item_id ORDER BY time DESC\)`).
		WithArgs(int64(10), 6).
		WillReturnRows(rows)

	out, err := repo.GetRecentDailyMeans(10, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out[7]) != 2 || out[7][0] != 9 || out[7][1] != 10 {
		t.Fatalf("means must stay chronological per item: %v", out[7])
	}
	if len(out[8]) != 1 || out[8][0] != 0.1 {
		t.Fatalf("unexpected means for item 8: %v", out[8])
	}
}

func TestUpdateItemSpark_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	spark := "3,2,1"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE league_items SET spark = $3")).
		WithArgs(int64(10), int64(7), spark).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateItemSpark(10, 7, &spark); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Nil clears the stored encoding.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE league_items SET spark = $3")).
		WithArgs(int64(10), int64(8), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateItemSpark(10, 8, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
