package detail

import (
	"html"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	strip "github.com/grokify/html-strip-tags-go"

	"crypto-tracker/internal/chart"
	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/format"
)

// Placeholders for missing content.
const (
	NoDescription = "No description available for this cryptocurrency."
	NoGenesisDate = "Not available"
)

var schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)

// Page is everything the detail template renders. When Error is set the other
// sections are empty.
type Page struct {
	Request Request
	Status  int
	Error   string

	Header      Header
	Chart       Chart
	Stats       []Stat
	About       About
	Performance []PerformanceCell
	Categories  []string
	GenesisDate string
	Community   []Link
}

// Header is the coin title block.
type Header struct {
	Name   string
	Symbol string // upper-case ticker
	Image  string
	Rank   string
	Price  string
	Change string // absolute 24h change, two decimals
	Up     bool
}

// Chart is the price chart panel.
type Chart struct {
	Title   string
	Label   string
	Area    *chart.Area
	Low     string
	High    string
	Options []WindowOption
}

// WindowOption is one entry of the lookback selector.
type WindowOption struct {
	Days     int
	Label    string
	Selected bool
}

// Trend marks a delta as rising or falling.
type Trend string

const (
	TrendNone Trend = ""
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Stat is one of the market stat cards.
type Stat struct {
	Title string
	Value string
	Note  string
	Trend Trend
}

// About is the description panel.
type About struct {
	Title     string
	Summary   string
	Homepages []Link
}

// Link is an outbound link with its display text.
type Link struct {
	Label string
	URL   string
}

// PerformanceCell is one timeframe of the price performance grid.
type PerformanceCell struct {
	Timeframe string
	Percent   string
	Positive  bool
}

// Build assembles the page for a fetched coin and series.
func Build(req Request, coin *domain.CoinDetail, series *domain.ChartSeries) *Page {
	cur := req.Currency
	md := coin.MarketData
	symbol := strings.ToUpper(coin.Symbol)

	p := &Page{
		Request: req,
		Status:  http.StatusOK,
		Header: Header{
			Name:   coin.Name,
			Symbol: symbol,
			Image:  coin.Image.Large,
			Rank:   rank(coin.MarketCapRank),
			Price:  format.LookupMoney(cur.Symbol, md.CurrentPrice, cur.Code),
			Change: format.AbsPercent(md.PriceChangePercentage24h),
			Up:     format.Positive(md.PriceChangePercentage24h),
		},
		Chart:       buildChart(req, series),
		Stats:       buildStats(cur, symbol, md),
		About:       buildAbout(coin),
		Performance: buildPerformance(cur, md),
		Categories:  append([]string(nil), coin.Categories...),
		GenesisDate: coin.GenesisDate,
		Community:   community(coin.Links),
	}
	if p.GenesisDate == "" {
		p.GenesisDate = NoGenesisDate
	}
	return p
}

func rank(r *int) string {
	if r == nil {
		return format.NotAvailable
	}
	return "#" + strconv.Itoa(*r)
}

func buildChart(req Request, series *domain.ChartSeries) Chart {
	label := domain.WindowLabel(req.Days)
	c := Chart{
		Title: req.Currency.Symbol + " Price Chart (" + label + ")",
		Label: label,
	}

	var prices []domain.ChartPoint
	if series != nil {
		prices = series.Prices
	}
	c.Area = chart.Build(prices, chart.DefaultWidth, chart.DefaultHeight)
	if !c.Area.Empty() {
		c.Low = format.Money(req.Currency.Symbol, c.Area.Min, format.DefaultDecimals)
		c.High = format.Money(req.Currency.Symbol, c.Area.Max, format.DefaultDecimals)
	}

	for _, d := range domain.WindowOptions {
		c.Options = append(c.Options, WindowOption{
			Days:     d,
			Label:    domain.WindowOptionLabel(d),
			Selected: d == req.Days,
		})
	}
	return c
}

func buildStats(cur domain.Currency, symbol string, md domain.MarketData) []Stat {
	today := Stat{
		Title: "24h Volume",
		Value: format.LookupMoney(cur.Symbol, md.TotalVolume, cur.Code),
	}
	if format.Positive(md.PriceChangePercentage24h) {
		today.Note = "↑ " + format.Percent(md.PriceChangePercentage24h) + "% today"
		today.Trend = TrendUp
	} else {
		today.Note = "↓ " + format.AbsPercent(md.PriceChangePercentage24h) + "% today"
		today.Trend = TrendDown
	}

	return []Stat{
		{
			Title: "Market Cap",
			Value: format.LookupMoney(cur.Symbol, md.MarketCap, cur.Code),
			Note:  format.OptionalNumber(md.CirculatingSupply, format.DefaultDecimals) + " " + symbol + " circulating",
		},
		today,
		{
			Title: "All Time High",
			Value: format.LookupMoney(cur.Symbol, md.ATH, cur.Code),
			Note:  format.Date(md.ATHDate[cur.Code]),
		},
		{
			Title: "All Time Low",
			Value: format.LookupMoney(cur.Symbol, md.ATL, cur.Code),
			Note:  format.Date(md.ATLDate[cur.Code]),
		},
	}
}

func buildAbout(coin *domain.CoinDetail) About {
	a := About{
		Title:   "About " + coin.Name,
		Summary: Summary(coin.Description),
	}
	for _, h := range coin.Links.Homepage {
		if h == "" {
			continue
		}
		a.Homepages = append(a.Homepages, Link{Label: DisplayURL(h), URL: h})
	}
	return a
}

// Summary returns the first sentence of an HTML description, or NoDescription.
func Summary(description string) string {
	text := strings.TrimSpace(html.UnescapeString(strip.StripTags(description)))
	if text == "" {
		return NoDescription
	}
	first, _, _ := strings.Cut(text, ". ")
	first = strings.TrimSpace(first)
	if strings.HasSuffix(first, ".") {
		return first
	}
	return first + "."
}

// DisplayURL drops the scheme and a leading "www." from u.
func DisplayURL(u string) string {
	return schemePrefix.ReplaceAllString(u, "")
}

func buildPerformance(cur domain.Currency, md domain.MarketData) []PerformanceCell {
	cells := make([]PerformanceCell, 0, len(domain.Timeframes))
	for _, tf := range domain.Timeframes {
		cell := PerformanceCell{Timeframe: tf, Percent: "0.00"}
		if v, ok := md.PerformanceFor(tf, cur.Code); ok {
			cell.Percent = format.Percent(&v)
			cell.Positive = v > 0
		}
		cells = append(cells, cell)
	}
	return cells
}

func community(l domain.CoinLinks) []Link {
	var out []Link
	if l.TwitterScreenName != "" {
		out = append(out, Link{Label: "Twitter", URL: "https://twitter.com/" + l.TwitterScreenName})
	}
	if l.FacebookUsername != "" {
		out = append(out, Link{Label: "Facebook", URL: "https://facebook.com/" + l.FacebookUsername})
	}
	if l.SubredditURL != "" {
		out = append(out, Link{Label: "Reddit", URL: l.SubredditURL})
	}
	return out
}
