package service

import (
	"context"
	"fmt"

	"github.com/itemwatch/itemwatch/internal/domain/models"
	"github.com/itemwatch/itemwatch/internal/listings"
	"github.com/itemwatch/itemwatch/internal/storage"
)

// ListingService aggregates one account's live sale listings per item.
type ListingService interface {
	GetAccountListings(ctx context.Context, leagueName, account string) ([]models.AccountListing, error)
}

type listingService struct {
	repo storage.ItemsRepository
}

func NewListingService(repo storage.ItemsRepository) ListingService {
	return &listingService{repo: repo}
}

// GetAccountListings loads the account's raw listings and the league's
// currency means, then folds the listings into per-item summaries. Output is
// ordered by each item's first appearance in the listing stream, matching the
// order the offers were observed in.
func (s *listingService) GetAccountListings(_ context.Context, leagueName, account string) ([]models.AccountListing, error) {
	league, err := s.repo.GetLeagueByName(leagueName)
	if err != nil {
		return nil, fmt.Errorf("load league: %w", err)
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}

	rows, err := s.repo.GetAccountListings(league.ID, account)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}

	means, err := s.repo.GetCurrencyMeans(league.ID)
	if err != nil {
		return nil, fmt.Errorf("load currency means: %w", err)
	}
	lookup := func(itemID int64) (float64, bool) {
		mean, ok := means[itemID]
		return mean, ok
	}

	raw := make([]models.Listing, 0, len(rows))
	details := make(map[int64]models.ItemDetail, len(rows))
	var order []int64
	for _, row := range rows {
		raw = append(raw, row.Listing)
		if _, seen := details[row.Listing.ItemID]; !seen {
			details[row.Listing.ItemID] = row.Detail
			order = append(order, row.Listing.ItemID)
		}
	}

	summaries := listings.Aggregate(raw, lookup)

	out := make([]models.AccountListing, 0, len(summaries))
	for _, itemID := range order {
		summary, ok := summaries[itemID]
		if !ok {
			continue
		}
		out = append(out, models.AccountListing{
			Detail:  details[itemID],
			Summary: summary,
		})
	}
	return out, nil
}
