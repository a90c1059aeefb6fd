package coingecko

import "crypto-tracker/internal/domain"

// marketsItem is one element of the raw /coins/markets response.
type marketsItem struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	High24h                  *float64 `json:"high_24h"`
	Low24h                   *float64 `json:"low_24h"`
	PriceChange24h           *float64 `json:"price_change_24h"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	CirculatingSupply        *float64 `json:"circulating_supply"`
}

func (m marketsItem) toDomain() domain.CoinSummary {
	return domain.CoinSummary{
		ID:                       m.ID,
		Name:                     m.Name,
		Symbol:                   m.Symbol,
		Image:                    m.Image,
		MarketCapRank:            m.MarketCapRank,
		CurrentPrice:             m.CurrentPrice,
		MarketCap:                m.MarketCap,
		TotalVolume:              m.TotalVolume,
		High24h:                  m.High24h,
		Low24h:                   m.Low24h,
		PriceChange24h:           m.PriceChange24h,
		PriceChangePercentage24h: m.PriceChangePercentage24h,
		CirculatingSupply:        m.CirculatingSupply,
	}
}

// coinDetailResult is the raw /coins/{id} response, reduced to the fields rendered.
type coinDetailResult struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	MarketCapRank *int      `json:"market_cap_rank"`
	GenesisDate   *string   `json:"genesis_date"`
	Categories    []*string `json:"categories"`
	Description   struct {
		En string `json:"en"`
	} `json:"description"`
	Links *struct {
		Homepage          []string `json:"homepage"`
		TwitterScreenName *string  `json:"twitter_screen_name"`
		FacebookUsername  *string  `json:"facebook_username"`
		SubredditURL      *string  `json:"subreddit_url"`
	} `json:"links"`
	Image *struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	MarketData *coinMarketData `json:"market_data"`
}

// coinMarketData keeps per-currency values as pointers because the API sends
// null for currencies it has no figure for.
type coinMarketData struct {
	CurrentPrice             map[string]*float64 `json:"current_price"`
	MarketCap                map[string]*float64 `json:"market_cap"`
	TotalVolume              map[string]*float64 `json:"total_volume"`
	ATH                      map[string]*float64 `json:"ath"`
	ATHDate                  map[string]*string  `json:"ath_date"`
	ATL                      map[string]*float64 `json:"atl"`
	ATLDate                  map[string]*string  `json:"atl_date"`
	PriceChangePercentage24h *float64            `json:"price_change_percentage_24h"`
	CirculatingSupply        *float64            `json:"circulating_supply"`

	Change1h   map[string]*float64 `json:"price_change_percentage_1h_in_currency"`
	Change24h  map[string]*float64 `json:"price_change_percentage_24h_in_currency"`
	Change7d   map[string]*float64 `json:"price_change_percentage_7d_in_currency"`
	Change14d  map[string]*float64 `json:"price_change_percentage_14d_in_currency"`
	Change30d  map[string]*float64 `json:"price_change_percentage_30d_in_currency"`
	Change60d  map[string]*float64 `json:"price_change_percentage_60d_in_currency"`
	Change200d map[string]*float64 `json:"price_change_percentage_200d_in_currency"`
	Change1y   map[string]*float64 `json:"price_change_percentage_1y_in_currency"`
}

func (r *coinDetailResult) toDomain() *domain.CoinDetail {
	d := &domain.CoinDetail{
		ID:            r.ID,
		Name:          r.Name,
		Symbol:        r.Symbol,
		MarketCapRank: r.MarketCapRank,
		Description:   r.Description.En,
	}

	if r.GenesisDate != nil {
		d.GenesisDate = *r.GenesisDate
	}

	for _, c := range r.Categories {
		if c != nil && *c != "" {
			d.Categories = append(d.Categories, *c)
		}
	}

	if r.Image != nil {
		d.Image = domain.CoinImage{Thumb: r.Image.Thumb, Small: r.Image.Small, Large: r.Image.Large}
	}

	if r.Links != nil {
		for _, h := range r.Links.Homepage {
			if h != "" {
				d.Links.Homepage = append(d.Links.Homepage, h)
			}
		}
		d.Links.TwitterScreenName = deref(r.Links.TwitterScreenName)
		d.Links.FacebookUsername = deref(r.Links.FacebookUsername)
		d.Links.SubredditURL = deref(r.Links.SubredditURL)
	}

	if md := r.MarketData; md != nil {
		d.MarketData = domain.MarketData{
			CurrentPrice:             present(md.CurrentPrice),
			MarketCap:                present(md.MarketCap),
			TotalVolume:              present(md.TotalVolume),
			ATH:                      present(md.ATH),
			ATHDate:                  presentStrings(md.ATHDate),
			ATL:                      present(md.ATL),
			ATLDate:                  presentStrings(md.ATLDate),
			PriceChangePercentage24h: md.PriceChangePercentage24h,
			CirculatingSupply:        md.CirculatingSupply,
			Performance:              make(map[string]map[string]float64),
		}
		byTimeframe := map[string]map[string]*float64{
			"1h":   md.Change1h,
			"24h":  md.Change24h,
			"7d":   md.Change7d,
			"14d":  md.Change14d,
			"30d":  md.Change30d,
			"60d":  md.Change60d,
			"200d": md.Change200d,
			"1y":   md.Change1y,
		}
		for tf, values := range byTimeframe {
			if values != nil {
				d.MarketData.Performance[tf] = present(values)
			}
		}
	}

	return d
}

// present drops null entries so lookups report the currency as missing.
func present(m map[string]*float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

func presentStrings(m map[string]*string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// marketChartResult is the raw /coins/{id}/market_chart response.
// Each point is a [timestamp_ms, value] pair.
type marketChartResult struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

func (r *marketChartResult) toDomain() *domain.ChartSeries {
	return &domain.ChartSeries{
		Prices:       toPoints(r.Prices),
		MarketCaps:   toPoints(r.MarketCaps),
		TotalVolumes: toPoints(r.TotalVolumes),
	}
}

func toPoints(raw [][]float64) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			continue
		}
		points = append(points, domain.ChartPoint{
			TimestampMs: int64(pair[0]),
			Value:       pair[1],
		})
	}
	return points
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
