package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sbilibin2017/coinwatch/internal/models"
)

// ErrUpstreamStatus reports a non-success HTTP status from the markets endpoint.
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

// Fetcher issues one batched read of the CoinGecko markets endpoint per
// collection cycle. It never retries: the scheduler's fixed interval is the
// retry cadence.
type Fetcher struct {
	client     *resty.Client
	coins      []string
	vsCurrency string
}

// New creates a Fetcher for the given tracked coin list. The client carries
// the base URL and the hard request timeout.
func New(client *resty.Client, coins []string) *Fetcher {
	return &Fetcher{
		client:     client,
		coins:      coins,
		vsCurrency: "usd",
	}
}

// Fetch requests market data for all tracked coins in a single call and
// returns the decoded records together with the elapsed request duration.
// Transport failures, non-success statuses and body decode failures all come
// back as errors with no records; none of them is fatal to the caller.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.CoinMarket, time.Duration, error) {
	var markets []models.CoinMarket

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency":             f.vsCurrency,
			"ids":                     strings.Join(f.coins, ","),
			"order":                   "market_cap_desc",
			"per_page":                strconv.Itoa(len(f.coins)),
			"page":                    "1",
			"sparkline":               "false",
			"price_change_percentage": "24h,7d",
		}).
		SetResult(&markets).
		ForceContentType("application/json").
		Get("/coins/markets")
	elapsed := time.Since(start)

	if err != nil {
		return nil, elapsed, fmt.Errorf("fetch markets: %w", err)
	}
	if resp.IsError() {
		return nil, elapsed, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status())
	}
	return markets, elapsed, nil
}
