package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sbilibin2017/coinwatch/internal/models"
	"github.com/sbilibin2017/coinwatch/internal/registry"
)

// assetLabels is the label pair carried by every per-asset series.
var assetLabels = []string{"coin", "symbol"}

// seriesDesc ties a series name to its Prometheus descriptor.
type seriesDesc struct {
	desc    *prometheus.Desc
	labeled bool
}

func assetDesc(name, help string) seriesDesc {
	return seriesDesc{desc: prometheus.NewDesc(name, help, assetLabels, nil), labeled: true}
}

func processDesc(name, help string) seriesDesc {
	return seriesDesc{desc: prometheus.NewDesc(name, help, nil, nil)}
}

// descs maps every series the exporter can produce to its descriptor.
// Series absent from the registry are simply not emitted.
var descs = map[string]seriesDesc{
	models.SeriesPriceUSD:         assetDesc(models.SeriesPriceUSD, "Current coin price in USD"),
	models.SeriesPriceChange24h:   assetDesc(models.SeriesPriceChange24h, "Price change in last 24h (percent)"),
	models.SeriesPriceChange7d:    assetDesc(models.SeriesPriceChange7d, "Price change in last 7d (percent)"),
	models.SeriesMarketCapUSD:     assetDesc(models.SeriesMarketCapUSD, "Coin market cap in USD"),
	models.SeriesTotalVolumeUSD:   assetDesc(models.SeriesTotalVolumeUSD, "24h total volume in USD"),
	models.SeriesCirculating:      assetDesc(models.SeriesCirculating, "Circulating supply"),
	models.SeriesTotalSupply:      assetDesc(models.SeriesTotalSupply, "Total supply (CoinGecko)"),
	models.SeriesMarketCapRank:    assetDesc(models.SeriesMarketCapRank, "Market cap rank"),
	models.SeriesHigh24hUSD:       assetDesc(models.SeriesHigh24hUSD, "24h high price in USD"),
	models.SeriesLow24hUSD:        assetDesc(models.SeriesLow24hUSD, "24h low price in USD"),
	models.SeriesATHUSD:           assetDesc(models.SeriesATHUSD, "All-time high price in USD"),
	models.SeriesATHChangePercent: assetDesc(models.SeriesATHChangePercent, "ATH change percent"),
	models.SeriesLastUpdated:      assetDesc(models.SeriesLastUpdated, "Last updated timestamp (Unix)"),
	models.SeriesPriceToMcapRatio: assetDesc(models.SeriesPriceToMcapRatio, "Price / MarketCap ratio"),
	models.SeriesVolToMcapRatio:   assetDesc(models.SeriesVolToMcapRatio, "Volume / MarketCap ratio"),
	models.SeriesUp:               processDesc(models.SeriesUp, "1 if the last scrape succeeded"),
	models.SeriesRequestDuration:  processDesc(models.SeriesRequestDuration, "Duration of last external API request in seconds"),
	models.SeriesCoinsScraped:     processDesc(models.SeriesCoinsScraped, "Number of coins scraped during last update"),
}

// RegistryCollector exposes the series registry as Prometheus gauges. Metrics
// are materialized from a registry snapshot on every scrape, so each scrape
// sees a complete, single-cycle-consistent view regardless of the polling
// cadence.
type RegistryCollector struct {
	registry *registry.Registry
}

// New creates a collector reading from the given registry.
func New(reg *registry.Registry) *RegistryCollector {
	return &RegistryCollector{registry: reg}
}

// Describe implements prometheus.Collector.
func (c *RegistryCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range descs {
		ch <- d.desc
	}
}

// Collect implements prometheus.Collector.
func (c *RegistryCollector) Collect(ch chan<- prometheus.Metric) {
	for key, value := range c.registry.Snapshot() {
		d, ok := descs[key.Name]
		if !ok {
			continue
		}
		if d.labeled {
			ch <- prometheus.MustNewConstMetric(d.desc, prometheus.GaugeValue, value, key.Coin, key.Symbol)
		} else {
			ch <- prometheus.MustNewConstMetric(d.desc, prometheus.GaugeValue, value)
		}
	}
}
