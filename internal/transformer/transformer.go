package transformer

import (
	"time"

	"github.com/sbilibin2017/coinwatch/internal/models"
)

// Transform maps a fetched batch of market records into the sample set of one
// collection cycle. The batch always contains the process-level scraped-count
// series; per-asset samples are emitted only for fields present in the
// upstream record, so absent or null fields never overwrite earlier values.
func Transform(records []models.CoinMarket) []models.Sample {
	samples := make([]models.Sample, 0, len(records)*17+1)
	samples = append(samples, models.ProcessSample(models.SeriesCoinsScraped, float64(len(records))))

	for _, rec := range records {
		samples = append(samples, recordSamples(rec)...)
	}
	return samples
}

// recordSamples converts a single market record into per-asset samples.
func recordSamples(rec models.CoinMarket) []models.Sample {
	fields := []struct {
		name  string
		value *float64
	}{
		{models.SeriesPriceUSD, rec.CurrentPrice},
		{models.SeriesPriceChange24h, rec.PriceChange24h},
		{models.SeriesPriceChange7d, rec.PriceChange7dAny()},
		{models.SeriesMarketCapUSD, rec.MarketCap},
		{models.SeriesTotalVolumeUSD, rec.TotalVolume},
		{models.SeriesCirculating, rec.CirculatingSupply},
		{models.SeriesTotalSupply, rec.TotalSupply},
		{models.SeriesMarketCapRank, rec.MarketCapRank},
		{models.SeriesHigh24hUSD, rec.High24h},
		{models.SeriesLow24hUSD, rec.Low24h},
		{models.SeriesATHUSD, rec.ATH},
		{models.SeriesATHChangePercent, rec.ATHChangePercent},
	}

	samples := make([]models.Sample, 0, len(fields)+3)
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		samples = append(samples, models.AssetSample(f.name, rec.ID, rec.Symbol, *f.value))
	}

	// Derived ratios require a present numerator and a non-zero denominator.
	if rec.MarketCap != nil && *rec.MarketCap != 0 {
		if rec.CurrentPrice != nil {
			samples = append(samples, models.AssetSample(
				models.SeriesPriceToMcapRatio, rec.ID, rec.Symbol, *rec.CurrentPrice / *rec.MarketCap))
		}
		if rec.TotalVolume != nil {
			samples = append(samples, models.AssetSample(
				models.SeriesVolToMcapRatio, rec.ID, rec.Symbol, *rec.TotalVolume / *rec.MarketCap))
		}
	}

	if ts, ok := ParseTimestamp(rec.LastUpdated); ok {
		samples = append(samples, models.AssetSample(
			models.SeriesLastUpdated, rec.ID, rec.Symbol, float64(ts)))
	}

	return samples
}

// timestampLayouts are the two shapes CoinGecko emits, tried in order.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
}

// ParseTimestamp normalizes an ISO-8601 timestamp string to Unix seconds.
// Unknown shapes fall through to a general RFC3339 parse; an unparseable
// string reports ok=false so the series is left untouched for this cycle.
func ParseTimestamp(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), true
		}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}
