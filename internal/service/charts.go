package service

import (
	"context"
	"fmt"
	"time"

	"github.com/itemwatch/itemwatch/internal/chart"
	"github.com/itemwatch/itemwatch/internal/domain/models"
	"github.com/itemwatch/itemwatch/internal/storage"
)

// ChartService reconstructs an item's calendar-complete price series.
type ChartService interface {
	GetItemSeries(ctx context.Context, leagueName string, itemID int64) (*models.CalendarSeries, error)
	GetLeagues(ctx context.Context) ([]models.League, error)
}

type chartService struct {
	repo storage.ItemsRepository

	// now is an indirection for tests; defaults to time.Now.
	now func() time.Time
}

func NewChartService(repo storage.ItemsRepository) ChartService {
	return &chartService{repo: repo, now: time.Now}
}

// GetItemSeries loads an item's sparse daily history and reconstructs the
// renderable series, appending the league's live statistics as the "Now"
// point while the league is active.
func (s *chartService) GetItemSeries(_ context.Context, leagueName string, itemID int64) (*models.CalendarSeries, error) {
	league, err := s.repo.GetLeagueByName(leagueName)
	if err != nil {
		return nil, fmt.Errorf("load league: %w", err)
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}

	snapshots, err := s.repo.GetItemHistory(league.ID, itemID)
	if err != nil {
		return nil, fmt.Errorf("load item history: %w", err)
	}

	var live *models.PriceSnapshot
	if league.Active {
		live, err = s.repo.GetLiveStats(league.ID, itemID)
		if err != nil {
			return nil, fmt.Errorf("load live stats: %w", err)
		}
	}

	series := chart.Build(snapshots, *league, live, s.now())
	return &series, nil
}

// GetLeagues returns all known leagues.
func (s *chartService) GetLeagues(_ context.Context) ([]models.League, error) {
	leagues, err := s.repo.GetLeagues()
	if err != nil {
		return nil, fmt.Errorf("load leagues: %w", err)
	}
	return leagues, nil
}
