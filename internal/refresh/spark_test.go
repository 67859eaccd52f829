package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/itemwatch/itemwatch/internal/domain/models"
)

type fakeRepo struct {
	mu sync.Mutex

	leagues []models.League
	means   map[int64]map[int64][]float64 // leagueID -> itemID -> daily means

	leaguesErr error
	updateErr  error

	updates map[int64]map[int64]*string // leagueID -> itemID -> stored spark
}

func (f *fakeRepo) GetLeagueByName(string) (*models.League, error) { return nil, nil }

func (f *fakeRepo) GetLeagues() ([]models.League, error) {
	return f.leagues, f.leaguesErr
}

func (f *fakeRepo) GetItemPrices(int64, string) ([]models.ItemPriceRow, error) { return nil, nil }

func (f *fakeRepo) GetItemHistory(int64, int64) ([]models.PriceSnapshot, error) { return nil, nil }

func (f *fakeRepo) GetLiveStats(int64, int64) (*models.PriceSnapshot, error) { return nil, nil }

func (f *fakeRepo) GetAccountListings(int64, string) ([]models.ListingRow, error) { return nil, nil }

func (f *fakeRepo) GetCurrencyMeans(int64) (map[int64]float64, error) { return nil, nil }

func (f *fakeRepo) GetRecentDailyMeans(leagueID int64, _ int) (map[int64][]float64, error) {
	return f.means[leagueID], nil
}

func (f *fakeRepo) UpdateItemSpark(leagueID, itemID int64, spark *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[int64]map[int64]*string)
	}
	if f.updates[leagueID] == nil {
		f.updates[leagueID] = make(map[int64]*string)
	}
	f.updates[leagueID][itemID] = spark
	return nil
}

func TestSparks_RefreshesActiveLeaguesOnly(t *testing.T) {
	repo := &fakeRepo{
		leagues: []models.League{
			{ID: 1, Name: "Standard", Active: true},
			{ID: 2, Name: "Old Season"},
			{ID: 3, Name: "Season", Active: true},
		},
		means: map[int64]map[int64][]float64{
			1: {11: {1, 2, 3}},
			2: {21: {9, 9}},
			3: {31: {4, 5}, 32: nil},
		},
	}

	if err := Sparks(context.Background(), repo, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := repo.updates[2]; ok {
		t.Fatalf("inactive league must not be refreshed")
	}

	got := repo.updates[1][11]
	if got == nil || *got != "3,2,1" {
		t.Fatalf("league 1 item 11: want %q, got %v", "3,2,1", got)
	}
	if got := repo.updates[3][31]; got == nil || *got != "5,4" {
		t.Fatalf("league 3 item 31: want %q, got %v", "5,4", got)
	}
	// An item without recent means clears its stored encoding.
	if got, ok := repo.updates[3][32]; !ok || got != nil {
		t.Fatalf("league 3 item 32: want stored nil, got %v (present=%v)", got, ok)
	}
}

func TestSparks_NoActiveLeagues(t *testing.T) {
	repo := &fakeRepo{
		leagues: []models.League{{ID: 2, Name: "Old Season"}},
	}

	if err := Sparks(context.Background(), repo, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("expected no updates, got %v", repo.updates)
	}
}

func TestSparks_LeagueLoadError(t *testing.T) {
	repo := &fakeRepo{leaguesErr: errors.New("db down")}

	if err := Sparks(context.Background(), repo, 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSparks_UpdateErrorPropagates(t *testing.T) {
	repo := &fakeRepo{
		leagues:   []models.League{{ID: 1, Name: "Standard", Active: true}},
		means:     map[int64]map[int64][]float64{1: {11: {1, 2}}},
		updateErr: errors.New("write failed"),
	}

	if err := Sparks(context.Background(), repo, 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSparks_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &fakeRepo{
		leagues: []models.League{{ID: 1, Name: "Standard", Active: true}},
		means:   map[int64]map[int64][]float64{1: {11: {1, 2}}},
	}

	if err := Sparks(ctx, repo, 1); err == nil {
		t.Fatalf("expected context error")
	}
}
