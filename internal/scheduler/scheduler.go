package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sbilibin2017/coinwatch/internal/models"
	"github.com/sbilibin2017/coinwatch/internal/registry"
	"github.com/sbilibin2017/coinwatch/internal/transformer"
)

// MarketFetcher performs one upstream read per cycle.
type MarketFetcher interface {
	// Fetch returns the decoded market records and the request duration.
	Fetch(ctx context.Context) ([]models.CoinMarket, time.Duration, error)
}

// Scheduler drives the fetch-transform-publish loop. Cycles run strictly
// sequentially; the configured interval is idle time between cycles, so the
// total period is cycle duration plus interval. Cycle failures are absorbed
// into the availability series and never stop the loop.
type Scheduler struct {
	fetcher  MarketFetcher
	registry *registry.Registry
	interval time.Duration
	log      *zap.Logger
}

// New creates a Scheduler writing into the given registry.
func New(fetcher MarketFetcher, reg *registry.Registry, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		registry: reg,
		interval: interval,
		log:      log,
	}
}

// Start runs the loop until the context is cancelled. The first cycle runs
// immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	for {
		s.RunCycle(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// RunCycle performs exactly one fetch-transform-publish iteration. All
// updates of the cycle reach the registry as one atomic batch; on fetch
// failure only the process-level availability, duration and count series
// change.
func (s *Scheduler) RunCycle(ctx context.Context) {
	records, elapsed, err := s.fetcher.Fetch(ctx)

	batch := []models.Sample{
		models.ProcessSample(models.SeriesRequestDuration, elapsed.Seconds()),
	}

	if err != nil {
		s.log.Error("market data fetch failed",
			zap.Error(err),
			zap.Duration("duration", elapsed),
		)
		batch = append(batch,
			models.ProcessSample(models.SeriesUp, 0),
			models.ProcessSample(models.SeriesCoinsScraped, 0),
		)
	} else {
		s.log.Debug("market data fetched",
			zap.Int("records", len(records)),
			zap.Duration("duration", elapsed),
		)
		batch = append(batch, models.ProcessSample(models.SeriesUp, 1))
		batch = append(batch, transformer.Transform(records)...)
	}

	s.registry.Apply(batch)
}
