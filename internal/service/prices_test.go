package service

import (
	"context"
	"errors"
	"testing"

	"github.com/itemwatch/itemwatch/internal/browse"
	"github.com/itemwatch/itemwatch/internal/domain/models"
)

// stubRepo implements storage.ItemsRepository with canned data per method.
type stubRepo struct {
	league       *models.League
	leagues      []models.League
	prices       []models.ItemPriceRow
	history      []models.PriceSnapshot
	live         *models.PriceSnapshot
	listingRows  []models.ListingRow
	means        map[int64]float64
	recentMeans  map[int64][]float64
	sparkUpdates map[int64]*string
	err          error
}

func (s *stubRepo) GetLeagueByName(string) (*models.League, error) {
	return s.league, s.err
}

func (s *stubRepo) GetLeagues() ([]models.League, error) {
	return s.leagues, s.err
}

func (s *stubRepo) GetItemPrices(int64, string) ([]models.ItemPriceRow, error) {
	return s.prices, s.err
}

func (s *stubRepo) GetItemHistory(int64, int64) ([]models.PriceSnapshot, error) {
	return s.history, s.err
}

func (s *stubRepo) GetLiveStats(int64, int64) (*models.PriceSnapshot, error) {
	return s.live, s.err
}

func (s *stubRepo) GetAccountListings(int64, string) ([]models.ListingRow, error) {
	return s.listingRows, s.err
}

func (s *stubRepo) GetCurrencyMeans(int64) (map[int64]float64, error) {
	return s.means, s.err
}

func (s *stubRepo) GetRecentDailyMeans(int64, int) (map[int64][]float64, error) {
	return s.recentMeans, s.err
}

func (s *stubRepo) UpdateItemSpark(_, itemID int64, spark *string) error {
	if s.err != nil {
		return s.err
	}
	if s.sparkUpdates == nil {
		s.sparkUpdates = make(map[int64]*string)
	}
	s.sparkUpdates[itemID] = spark
	return nil
}

func activeLeague() *models.League {
	return &models.League{ID: 10, Name: "Season", Display: "Season", Active: true}
}

func priceRow(id int64, name string, mean float64, daily int64, spark *string) models.ItemPriceRow {
	return models.ItemPriceRow{
		Detail: models.ItemDetail{
			ID:       id,
			Name:     name,
			Category: models.NewCategory("currency"),
		},
		Mean:  mean,
		Daily: daily,
		Spark: spark,
	}
}

func browseAll() browse.Filter {
	links := -1
	return browse.Filter{ShowLowConfidence: true, Links: &links}
}

func TestBrowseItems_UnknownLeague(t *testing.T) {
	svc := NewPriceService(&stubRepo{})

	_, err := svc.BrowseItems(context.Background(), "nope", "currency", browseAll(), browse.ColumnPrice, browse.Descending)
	if !errors.Is(err, ErrLeagueNotFound) {
		t.Fatalf("expected ErrLeagueNotFound, got %v", err)
	}
}

func TestBrowseItems_RepoError(t *testing.T) {
	svc := NewPriceService(&stubRepo{err: errors.New("boom")})

	if _, err := svc.BrowseItems(context.Background(), "Season", "currency", browseAll(), browse.ColumnPrice, browse.Descending); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBrowseItems_DecodesTrendForActiveLeague(t *testing.T) {
	spark := "4,2" // two prior means, newest first
	repo := &stubRepo{
		league: activeLeague(),
		prices: []models.ItemPriceRow{priceRow(1, "Exalted Orb", 8, 50, &spark)},
	}
	svc := NewPriceService(repo)

	items, err := svc.BrowseItems(context.Background(), "Season", "currency", browseAll(), browse.ColumnPrice, browse.Descending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	it := items[0]
	if len(it.History) != models.HistoryWindowSize {
		t.Fatalf("expected %d history slots, got %d", models.HistoryWindowSize, len(it.History))
	}
	if last := it.History[len(it.History)-1]; last == nil || *last != 8 {
		t.Fatalf("last history slot should be current mean, got %v", last)
	}
	if it.Change != 75 { // (1 - 2/8) * 100
		t.Fatalf("change: want 75, got %v", it.Change)
	}
}

func TestBrowseItems_NoTrendForFinishedLeague(t *testing.T) {
	spark := "4,2"
	league := activeLeague()
	league.Active = false
	repo := &stubRepo{
		league: league,
		prices: []models.ItemPriceRow{priceRow(1, "Exalted Orb", 8, 0, &spark)},
	}
	svc := NewPriceService(repo)

	items, err := svc.BrowseItems(context.Background(), "Season", "currency", browseAll(), browse.ColumnPrice, browse.Descending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].History != nil || items[0].Change != 0 {
		t.Fatalf("finished league must not serve trend data, got %+v", items[0])
	}
}

func TestBrowseItems_FiltersLowConfidence(t *testing.T) {
	repo := &stubRepo{
		league: activeLeague(),
		prices: []models.ItemPriceRow{
			priceRow(1, "Busy", 5, 100, nil),
			priceRow(2, "Quiet", 9, 2, nil),
		},
	}
	svc := NewPriceService(repo)

	f := browseAll()
	f.ShowLowConfidence = false

	items, err := svc.BrowseItems(context.Background(), "Season", "currency", f, browse.ColumnPrice, browse.Descending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Detail.Name != "Busy" {
		t.Fatalf("expected only the busy item, got %+v", items)
	}
}

func TestBrowseItems_SortsByColumn(t *testing.T) {
	repo := &stubRepo{
		league: activeLeague(),
		prices: []models.ItemPriceRow{
			priceRow(1, "Cheap", 1, 50, nil),
			priceRow(2, "Dear", 100, 50, nil),
			priceRow(3, "Middle", 10, 50, nil),
		},
	}
	svc := NewPriceService(repo)

	items, err := svc.BrowseItems(context.Background(), "Season", "currency", browseAll(), browse.ColumnPrice, browse.Descending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.Detail.Name)
	}
	want := []string{"Dear", "Middle", "Cheap"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: want %v, got %v", want, got)
		}
	}
}
