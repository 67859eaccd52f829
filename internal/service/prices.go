package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/itemwatch/itemwatch/internal/browse"
	"github.com/itemwatch/itemwatch/internal/domain/models"
	"github.com/itemwatch/itemwatch/internal/history"
	"github.com/itemwatch/itemwatch/internal/storage"
)

// ErrLeagueNotFound is returned when the named league does not exist.
var ErrLeagueNotFound = errors.New("league not found")

// PriceService assembles the browse view: current price rows with decoded
// trend windows, filtered and ordered.
type PriceService interface {
	BrowseItems(ctx context.Context, leagueName, category string, f browse.Filter, col browse.Column, ord browse.Order) ([]models.ItemPrice, error)
}

type priceService struct {
	repo storage.ItemsRepository
}

func NewPriceService(repo storage.ItemsRepository) PriceService {
	return &priceService{repo: repo}
}

// BrowseItems loads the league's items for one category, decodes each item's
// compact history into a trend window (active leagues only; ended leagues
// serve no trend data), then applies the browse filter and sort.
func (s *priceService) BrowseItems(_ context.Context, leagueName, category string, f browse.Filter, col browse.Column, ord browse.Order) ([]models.ItemPrice, error) {
	league, err := s.repo.GetLeagueByName(leagueName)
	if err != nil {
		return nil, fmt.Errorf("load league: %w", err)
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}

	rows, err := s.repo.GetItemPrices(league.ID, category)
	if err != nil {
		return nil, fmt.Errorf("load item prices: %w", err)
	}

	f.LeagueActive = league.Active

	items := make([]models.ItemPrice, 0, len(rows))
	for _, row := range rows {
		item := models.ItemPrice{ItemPriceRow: row}
		if league.Active {
			window := history.Decode(row.Spark, row.Mean)
			item.History = window.History
			item.Change = window.ChangePercent
		}
		if browse.Hidden(item, f) {
			continue
		}
		items = append(items, item)
	}

	browse.Sort(items, col, ord)
	return items, nil
}
