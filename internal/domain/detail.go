package domain

// Timeframes lists the performance suffixes shown on the detail page, in display order.
var Timeframes = []string{"1h", "24h", "7d", "14d", "30d", "60d", "200d", "1y"}

// CoinDetail is the full metadata and market-data record for one asset.
// Corresponds to the /coins/{id} response.
type CoinDetail struct {
	ID            string
	Name          string
	Symbol        string
	MarketCapRank *int
	Image         CoinImage
	Description   string // English description, may contain HTML
	Links         CoinLinks
	Categories    []string
	GenesisDate   string // YYYY-MM-DD, empty when unknown
	MarketData    MarketData
}

// CoinImage holds logo URLs in the sizes upstream provides.
type CoinImage struct {
	Thumb string
	Small string
	Large string
}

// CoinLinks holds official and community links.
type CoinLinks struct {
	Homepage          []string
	TwitterScreenName string
	FacebookUsername  string
	SubredditURL      string
}

// MarketData holds per-currency market figures. Maps are keyed by currency code.
type MarketData struct {
	CurrentPrice             map[string]float64
	MarketCap                map[string]float64
	TotalVolume              map[string]float64
	ATH                      map[string]float64
	ATHDate                  map[string]string
	ATL                      map[string]float64
	ATLDate                  map[string]string
	PriceChangePercentage24h *float64
	CirculatingSupply        *float64

	// Performance is keyed by timeframe suffix (see Timeframes), then by currency code.
	Performance map[string]map[string]float64
}

// Value looks up a per-currency figure. ok is false when the currency is absent.
func Value(m map[string]float64, code string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[code]
	return v, ok
}

// PerformanceFor returns the percentage change for a timeframe in a currency.
func (m MarketData) PerformanceFor(timeframe, code string) (float64, bool) {
	byCurrency, ok := m.Performance[timeframe]
	if !ok {
		return 0, false
	}
	return Value(byCurrency, code)
}
