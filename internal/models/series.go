package models

// Per-asset gauge series names. Each carries the {coin, symbol} label pair.
const (
	SeriesPriceUSD         = "external_coin_price_usd"
	SeriesPriceChange24h   = "external_coin_price_change_24h_percent"
	SeriesPriceChange7d    = "external_coin_price_change_7d_percent"
	SeriesMarketCapUSD     = "external_coin_market_cap_usd"
	SeriesTotalVolumeUSD   = "external_coin_total_volume_usd"
	SeriesCirculating      = "external_coin_circulating_supply"
	SeriesTotalSupply      = "external_coin_total_supply"
	SeriesMarketCapRank    = "external_coin_market_cap_rank"
	SeriesHigh24hUSD       = "external_coin_high_24h_usd"
	SeriesLow24hUSD        = "external_coin_low_24h_usd"
	SeriesATHUSD           = "external_coin_ath_usd"
	SeriesATHChangePercent = "external_coin_ath_change_percent"
	SeriesLastUpdated      = "external_coin_last_updated_timestamp"
	SeriesPriceToMcapRatio = "external_coin_price_to_market_cap_ratio"
	SeriesVolToMcapRatio   = "external_coin_volume_to_market_cap_ratio"
)

// Process-level series names. No labels.
const (
	SeriesUp              = "custom_exporter_up"
	SeriesRequestDuration = "custom_exporter_request_duration_seconds"
	SeriesCoinsScraped    = "custom_exporter_coins_scraped_total"
)

// SeriesKey identifies one metric series: a name plus its label values.
// Process-level series leave Coin and Symbol empty.
type SeriesKey struct {
	Name   string // Metric name.
	Coin   string // Asset slug label value, empty for process-level series.
	Symbol string // Ticker symbol label value, empty for process-level series.
}

// Sample is one (series, value) pair produced by a collection cycle.
type Sample struct {
	Key   SeriesKey
	Value float64
}

// AssetSample builds a per-asset sample labeled with the asset's slug and symbol.
func AssetSample(name, coin, symbol string, value float64) Sample {
	return Sample{Key: SeriesKey{Name: name, Coin: coin, Symbol: symbol}, Value: value}
}

// ProcessSample builds an unlabeled process-level sample.
func ProcessSample(name string, value float64) Sample {
	return Sample{Key: SeriesKey{Name: name}, Value: value}
}
