// Package refresh recomputes the compact history encodings stored per
// item+league, one league at a time.
package refresh

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itemwatch/itemwatch/internal/domain/models"
	"github.com/itemwatch/itemwatch/internal/history"
	"github.com/itemwatch/itemwatch/internal/logger"
	"github.com/itemwatch/itemwatch/internal/storage"
)

// retainDays is how many of the most recent daily means feed one encoding.
const retainDays = models.HistoryWindowSize - 1

const maxParallelLeagues = 4

// Sparks re-encodes the rolling mean history of every item in every active
// league. Leagues are processed concurrently; the first failure cancels the
// remaining ones.
//
// Parameters:
//   - parallel: league-level concurrency (0 = auto up to CPU, capped at 4).
func Sparks(ctx context.Context, repo storage.ItemsRepository, parallel int) error {
	leagues, err := repo.GetLeagues()
	if err != nil {
		return fmt.Errorf("load leagues: %w", err)
	}

	var active []models.League
	for _, l := range leagues {
		if l.Active {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		logger.L().Info().Msg("no active leagues, nothing to refresh")
		return nil
	}

	maxParallel := maxParallelLeagues
	if parallel > 0 {
		if parallel > maxParallelLeagues {
			parallel = maxParallelLeagues
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("leagues", len(active)).Int("max_parallel", maxParallel).Msg("spark refresh start")

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for _, l := range active {
		league := l
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()

			n, err := refreshLeague(gctx, repo, league)
			if err != nil {
				logger.L().Error().Str("league", league.Name).Err(err).Msg("league refresh failed")
				return fmt.Errorf("league %s: %w", league.Name, err)
			}

			logger.L().Info().
				Str("league", league.Name).
				Int("items", n).
				Dur("elapsed", time.Since(start)).
				Msg("league refreshed")
			return nil
		})
	}

	return g.Wait()
}

func refreshLeague(ctx context.Context, repo storage.ItemsRepository, league models.League) (int, error) {
	means, err := repo.GetRecentDailyMeans(league.ID, retainDays)
	if err != nil {
		return 0, fmt.Errorf("load daily means: %w", err)
	}

	updated := 0
	for itemID, itemMeans := range means {
		select {
		case <-ctx.Done():
			return updated, ctx.Err()
		default:
		}

		spark := history.Encode(itemMeans)
		if err := repo.UpdateItemSpark(league.ID, itemID, spark); err != nil {
			return updated, fmt.Errorf("update spark for item %d: %w", itemID, err)
		}
		updated++
	}
	return updated, nil
}
