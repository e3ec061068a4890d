package models

// CoinMarket represents one asset record returned by the CoinGecko
// /coins/markets endpoint. Every numeric field is optional: the API omits or
// nulls fields it has no data for, so each is decoded into a pointer and a
// nil pointer means "do not touch the previously exposed value".
type CoinMarket struct {
	ID                      string   `json:"id"`                                     // Asset slug, e.g. "bitcoin".
	Symbol                  string   `json:"symbol"`                                 // Ticker symbol, e.g. "btc".
	CurrentPrice            *float64 `json:"current_price"`                          // Current price in the reference currency.
	PriceChange24h          *float64 `json:"price_change_percentage_24h"`            // 24h change, percent.
	PriceChange7dInCurrency *float64 `json:"price_change_percentage_7d_in_currency"` // 7d change, percent (per-currency variant).
	PriceChange7d           *float64 `json:"price_change_percentage_7d"`             // 7d change, percent (legacy variant).
	MarketCap               *float64 `json:"market_cap"`                             // Market capitalization.
	TotalVolume             *float64 `json:"total_volume"`                           // 24h trading volume.
	CirculatingSupply       *float64 `json:"circulating_supply"`                     // Circulating supply.
	TotalSupply             *float64 `json:"total_supply"`                           // Total supply.
	MarketCapRank           *float64 `json:"market_cap_rank"`                        // Rank by market cap.
	High24h                 *float64 `json:"high_24h"`                               // 24h high.
	Low24h                  *float64 `json:"low_24h"`                                // 24h low.
	ATH                     *float64 `json:"ath"`                                    // All-time-high price.
	ATHChangePercent        *float64 `json:"ath_change_percentage"`                  // Change from ATH, percent.
	LastUpdated             string   `json:"last_updated"`                           // ISO-8601 timestamp string.
}

// PriceChange7dAny returns the 7d percentage change, preferring the
// in-currency field the markets endpoint uses when percentage windows are
// requested explicitly.
func (c *CoinMarket) PriceChange7dAny() *float64 {
	if c.PriceChange7dInCurrency != nil {
		return c.PriceChange7dInCurrency
	}
	return c.PriceChange7d
}
