package domain

// CoinSummary is a per-asset market snapshot denominated in one currency.
// Corresponds to one element of the /coins/markets response.
type CoinSummary struct {
	ID                       string   // upstream coin identifier, e.g. "bitcoin"
	Name                     string   // display name
	Symbol                   string   // ticker symbol (lowercase upstream)
	Image                    string   // logo URL
	MarketCapRank            *int     // nullable for unranked coins
	CurrentPrice             *float64 // price in the selected currency
	MarketCap                *float64 // market cap in the selected currency
	TotalVolume              *float64 // 24h volume in the selected currency
	High24h                  *float64
	Low24h                   *float64
	PriceChange24h           *float64
	PriceChangePercentage24h *float64
	CirculatingSupply        *float64
}
