package web

import (
	"strconv"
	"strings"

	"crypto-tracker/internal/auth"
	"crypto-tracker/internal/detail"
	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/format"
	"crypto-tracker/internal/market"
	"crypto-tracker/internal/session"
)

// layoutData is shared by every page.
type layoutData struct {
	Title      string
	Return     string
	Currency   domain.Currency
	Currencies []domain.Currency
	Search     searchBox
	Auth       auth.State
	Fields     []loginField

	List   *listPage
	Detail *detail.Page
	Error  string
}

type searchBox struct {
	Value       string
	Suggestions []suggestion
}

type suggestion struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Image  string `json:"image"`
}

type loginField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
	Hint  string
}

type listPage struct {
	Loaded     bool
	SearchTerm string
	Rows       []coinRow
}

type coinRow struct {
	ID        string
	Rank      string
	Name      string
	Symbol    string
	Image     string
	Price     string
	Change    string
	Up        bool
	MarketCap string
	Volume    string
}

func (s *Server) layout(sess *session.Session, title, ret string) layoutData {
	state := sess.Auth.State()
	return layoutData{
		Title:      title,
		Return:     ret,
		Currency:   sess.Market.Currency(),
		Currencies: s.currencies,
		Search: searchBox{
			Value:       sess.Navbar.Value(),
			Suggestions: toSuggestions(sess.Navbar.Suggestions()),
		},
		Auth:   state,
		Fields: loginFields(state),
	}
}

func loginFields(state auth.State) []loginField {
	return []loginField{
		{Name: auth.FieldName, Label: "Full Name", Type: "text", Value: state.Form.Name, Error: state.Errors[auth.FieldName]},
		{Name: auth.FieldEmail, Label: "Email", Type: "email", Value: state.Form.Email, Error: state.Errors[auth.FieldEmail]},
		{Name: auth.FieldPhone, Label: "Phone Number", Type: "tel", Value: state.Form.Phone, Error: state.Errors[auth.FieldPhone],
			Hint: "e.g. 123-456-7890 or +1 234 567 8900"},
		{Name: auth.FieldPassword, Label: "Password", Type: "password", Error: state.Errors[auth.FieldPassword]},
	}
}

func toSuggestions(coins []domain.CoinSummary) []suggestion {
	out := make([]suggestion, 0, len(coins))
	for _, c := range coins {
		out = append(out, suggestion{ID: c.ID, Name: c.Name, Symbol: strings.ToUpper(c.Symbol), Image: c.Image})
	}
	return out
}

func newListPage(snap market.Snapshot) *listPage {
	cur := snap.Currency
	rows := make([]coinRow, 0, len(snap.Filtered))
	for _, c := range snap.Filtered {
		row := coinRow{
			ID:        c.ID,
			Rank:      format.NotAvailable,
			Name:      c.Name,
			Symbol:    strings.ToUpper(c.Symbol),
			Image:     c.Image,
			Price:     format.OptionalMoney(cur.Symbol, c.CurrentPrice, format.DefaultDecimals),
			Change:    format.Percent(c.PriceChangePercentage24h),
			Up:        format.Positive(c.PriceChangePercentage24h),
			MarketCap: format.OptionalMoney(cur.Symbol, c.MarketCap, format.DefaultDecimals),
			Volume:    format.OptionalMoney(cur.Symbol, c.TotalVolume, format.DefaultDecimals),
		}
		if c.MarketCapRank != nil {
			row.Rank = strconv.Itoa(*c.MarketCapRank)
		}
		rows = append(rows, row)
	}
	return &listPage{Loaded: snap.Loaded, SearchTerm: snap.SearchTerm, Rows: rows}
}
