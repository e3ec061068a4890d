package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/coinwatch/internal/models"
)

func ptrFloat64(v float64) *float64 {
	return &v
}

func sampleMap(samples []models.Sample) map[models.SeriesKey]float64 {
	out := make(map[models.SeriesKey]float64, len(samples))
	for _, s := range samples {
		out[s.Key] = s.Value
	}
	return out
}

func TestTransform_FullRecord(t *testing.T) {
	records := []models.CoinMarket{
		{
			ID:                      "bitcoin",
			Symbol:                  "btc",
			CurrentPrice:            ptrFloat64(50000),
			PriceChange24h:          ptrFloat64(1.5),
			PriceChange7dInCurrency: ptrFloat64(-2.25),
			MarketCap:               ptrFloat64(1e12),
			TotalVolume:             ptrFloat64(3e10),
			CirculatingSupply:       ptrFloat64(19_500_000),
			TotalSupply:             ptrFloat64(21_000_000),
			MarketCapRank:           ptrFloat64(1),
			High24h:                 ptrFloat64(51000),
			Low24h:                  ptrFloat64(49000),
			ATH:                     ptrFloat64(69000),
			ATHChangePercent:        ptrFloat64(-27.5),
			LastUpdated:             "2024-01-01T00:00:00.123Z",
		},
	}

	got := sampleMap(Transform(records))

	assert.Equal(t, float64(1), got[models.SeriesKey{Name: models.SeriesCoinsScraped}])

	key := func(name string) models.SeriesKey {
		return models.SeriesKey{Name: name, Coin: "bitcoin", Symbol: "btc"}
	}
	assert.Equal(t, 50000.0, got[key(models.SeriesPriceUSD)])
	assert.Equal(t, 1.5, got[key(models.SeriesPriceChange24h)])
	assert.Equal(t, -2.25, got[key(models.SeriesPriceChange7d)])
	assert.Equal(t, 1e12, got[key(models.SeriesMarketCapUSD)])
	assert.Equal(t, 3e10, got[key(models.SeriesTotalVolumeUSD)])
	assert.Equal(t, 19_500_000.0, got[key(models.SeriesCirculating)])
	assert.Equal(t, 21_000_000.0, got[key(models.SeriesTotalSupply)])
	assert.Equal(t, 1.0, got[key(models.SeriesMarketCapRank)])
	assert.Equal(t, 51000.0, got[key(models.SeriesHigh24hUSD)])
	assert.Equal(t, 49000.0, got[key(models.SeriesLow24hUSD)])
	assert.Equal(t, 69000.0, got[key(models.SeriesATHUSD)])
	assert.Equal(t, -27.5, got[key(models.SeriesATHChangePercent)])

	assert.InEpsilon(t, 50000.0/1e12, got[key(models.SeriesPriceToMcapRatio)], 1e-9)
	assert.InEpsilon(t, 3e10/1e12, got[key(models.SeriesVolToMcapRatio)], 1e-9)

	assert.Equal(t, float64(1704067200), got[key(models.SeriesLastUpdated)])
}

func TestTransform_SkipsAbsentFields(t *testing.T) {
	records := []models.CoinMarket{
		{
			ID:           "dogecoin",
			Symbol:       "doge",
			CurrentPrice: ptrFloat64(0.1),
		},
	}

	got := sampleMap(Transform(records))

	// Only the scraped count, the price and nothing else.
	require.Len(t, got, 2)
	assert.Equal(t, 0.1, got[models.SeriesKey{Name: models.SeriesPriceUSD, Coin: "dogecoin", Symbol: "doge"}])
}

func TestTransform_RecordWithOnlyIdentity(t *testing.T) {
	records := []models.CoinMarket{{ID: "cardano", Symbol: "ada"}}

	got := Transform(records)

	// The record is not rejected; it just produces no per-asset samples.
	require.Len(t, got, 1)
	assert.Equal(t, models.SeriesCoinsScraped, got[0].Key.Name)
	assert.Equal(t, float64(1), got[0].Value)
}

func TestTransform_RatioGuards(t *testing.T) {
	tests := []struct {
		name   string
		record models.CoinMarket
	}{
		{
			name: "missing market cap",
			record: models.CoinMarket{
				ID: "x", Symbol: "x",
				CurrentPrice: ptrFloat64(10),
				TotalVolume:  ptrFloat64(5),
			},
		},
		{
			name: "zero market cap",
			record: models.CoinMarket{
				ID: "x", Symbol: "x",
				CurrentPrice: ptrFloat64(10),
				TotalVolume:  ptrFloat64(5),
				MarketCap:    ptrFloat64(0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleMap(Transform([]models.CoinMarket{tt.record}))

			_, hasPriceRatio := got[models.SeriesKey{Name: models.SeriesPriceToMcapRatio, Coin: "x", Symbol: "x"}]
			_, hasVolRatio := got[models.SeriesKey{Name: models.SeriesVolToMcapRatio, Coin: "x", Symbol: "x"}]
			assert.False(t, hasPriceRatio)
			assert.False(t, hasVolRatio)
		})
	}
}

func TestTransform_PriceChange7dFallback(t *testing.T) {
	records := []models.CoinMarket{
		{
			ID: "litecoin", Symbol: "ltc",
			PriceChange7d: ptrFloat64(4.2),
		},
	}

	got := sampleMap(Transform(records))
	assert.Equal(t, 4.2, got[models.SeriesKey{Name: models.SeriesPriceChange7d, Coin: "litecoin", Symbol: "ltc"}])
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{
			name:   "fractional seconds",
			input:  "2024-01-01T00:00:00.123Z",
			want:   1704067200,
			wantOK: true,
		},
		{
			name:   "whole seconds",
			input:  "2024-01-01T00:00:00Z",
			want:   1704067200,
			wantOK: true,
		},
		{
			name:   "offset form falls back to general parser",
			input:  "2024-01-01T00:00:00+00:00",
			want:   1704067200,
			wantOK: true,
		},
		{
			name:   "unparseable",
			input:  "not-a-date",
			wantOK: false,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
