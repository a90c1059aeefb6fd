package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-tracker/internal/domain"
)

func buildBitcoin(t *testing.T, days int) *Page {
	t.Helper()
	series := &domain.ChartSeries{
		Prices: []domain.ChartPoint{{TimestampMs: 1, Value: 60000}, {TimestampMs: 2, Value: 61000}},
	}
	return Build(Request{ID: "bitcoin", Currency: usd, Days: days}, bitcoin(), series)
}

func TestBuild_Header(t *testing.T) {
	p := buildBitcoin(t, 30)

	assert.Equal(t, Header{
		Name:   "Bitcoin",
		Symbol: "BTC",
		Image:  "https://img/btc-large.png",
		Rank:   "#1",
		Price:  "$61.00K",
		Change: "1.23",
		Up:     false,
	}, p.Header)
}

func TestBuild_Chart(t *testing.T) {
	p := buildBitcoin(t, 1)

	assert.Equal(t, "$ Price Chart (24H)", p.Chart.Title)
	require.False(t, p.Chart.Area.Empty())
	assert.Equal(t, "$60.00K", p.Chart.Low)
	assert.Equal(t, "$61.00K", p.Chart.High)

	var labels []string
	var selected []int
	for _, o := range p.Chart.Options {
		labels = append(labels, o.Label)
		if o.Selected {
			selected = append(selected, o.Days)
		}
	}
	assert.Equal(t, []string{"24H", "7D", "14D", "30D", "90D", "180D", "1Y"}, labels)
	assert.Equal(t, []int{1}, selected)
}

func TestBuild_Stats(t *testing.T) {
	p := buildBitcoin(t, 30)
	require.Len(t, p.Stats, 4)

	assert.Equal(t, Stat{Title: "Market Cap", Value: "$1.20T", Note: "19.70M BTC circulating"}, p.Stats[0])
	assert.Equal(t, Stat{Title: "24h Volume", Value: "$34.50B", Note: "↓ 1.23% today", Trend: TrendDown}, p.Stats[1])
	assert.Equal(t, Stat{Title: "All Time High", Value: "$73.74K", Note: "Mar 14, 2024, 07:10 AM"}, p.Stats[2])
	assert.Equal(t, Stat{Title: "All Time Low", Value: "$67.81", Note: "Jul 6, 2013, 12:00 AM"}, p.Stats[3])
}

func TestBuild_StatsRisingVolumeNote(t *testing.T) {
	coin := bitcoin()
	coin.MarketData.PriceChangePercentage24h = f64(2.5)
	p := Build(Request{ID: "bitcoin", Currency: usd, Days: 30}, coin, nil)

	assert.Equal(t, "↑ 2.50% today", p.Stats[1].Note)
	assert.Equal(t, TrendUp, p.Stats[1].Trend)
	assert.True(t, p.Header.Up)
	assert.True(t, p.Chart.Area.Empty())
}

func TestBuild_MissingCurrencyRendersNA(t *testing.T) {
	p := Build(Request{ID: "bitcoin", Currency: domain.Currency{Code: "jpy", Symbol: "¥"}, Days: 30}, bitcoin(), nil)

	assert.Equal(t, "N/A", p.Header.Price)
	assert.Equal(t, "N/A", p.Stats[0].Value)
	assert.Equal(t, "N/A", p.Stats[2].Note)
}

func TestBuild_About(t *testing.T) {
	p := buildBitcoin(t, 30)

	assert.Equal(t, "About Bitcoin", p.About.Title)
	assert.Equal(t, "Bitcoin is the first cryptocurrency.", p.About.Summary)
	assert.Equal(t, []Link{
		{Label: "bitcoin.org", URL: "https://www.bitcoin.org"},
		{Label: "bitcoin.com/", URL: "http://bitcoin.com/"},
	}, p.About.Homepages)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, NoDescription, Summary(""))
	assert.Equal(t, NoDescription, Summary("<p> </p>"))
	assert.Equal(t, "One sentence only.", Summary("One sentence only."))
	assert.Equal(t, "No period.", Summary("No period"))
	assert.Equal(t, "Tom & Jerry.", Summary("Tom &amp; Jerry. Second."))
}

func TestDisplayURL(t *testing.T) {
	assert.Equal(t, "example.com", DisplayURL("https://www.example.com"))
	assert.Equal(t, "example.com/path", DisplayURL("http://example.com/path"))
	assert.Equal(t, "ftp://www.example.com", DisplayURL("ftp://www.example.com"))
}

func TestBuild_Performance(t *testing.T) {
	p := buildBitcoin(t, 30)
	require.Len(t, p.Performance, len(domain.Timeframes))

	assert.Equal(t, PerformanceCell{Timeframe: "1h", Percent: "0.50", Positive: true}, p.Performance[0])
	assert.Equal(t, PerformanceCell{Timeframe: "24h", Percent: "-1.23", Positive: false}, p.Performance[1])
	assert.Equal(t, PerformanceCell{Timeframe: "1y", Percent: "0.00", Positive: false}, p.Performance[7])
}

func TestBuild_MetadataAndCommunity(t *testing.T) {
	p := buildBitcoin(t, 30)

	assert.Equal(t, []string{"Cryptocurrency", "Layer 1 (L1)"}, p.Categories)
	assert.Equal(t, "2009-01-03", p.GenesisDate)
	assert.Equal(t, []Link{
		{Label: "Twitter", URL: "https://twitter.com/bitcoin"},
		{Label: "Reddit", URL: "https://www.reddit.com/r/Bitcoin/"},
	}, p.Community)

	coin := bitcoin()
	coin.GenesisDate = ""
	coin.Links = domain.CoinLinks{}
	coin.MarketCapRank = nil
	p = Build(Request{ID: "bitcoin", Currency: usd, Days: 30}, coin, nil)
	assert.Equal(t, NoGenesisDate, p.GenesisDate)
	assert.Empty(t, p.Community)
	assert.Empty(t, p.About.Homepages)
	assert.Equal(t, "N/A", p.Header.Rank)
}
