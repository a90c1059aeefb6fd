package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/format"
	"crypto-tracker/internal/market"
)

// DefaultMarketsLimit caps the markets table.
const DefaultMarketsLimit = 20

// marketEntry is one coin row for display.
type marketEntry struct {
	Rank      string `json:"rank"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Price     string `json:"price"`
	Change24h string `json:"change_24h"`
	MarketCap string `json:"market_cap"`
}

func (a *app) marketsCmd() *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "markets",
		Short: "List coins by market cap",
		Long:  `List the first page of coins by market cap, optionally filtered by name.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := a.selectedCurrency()
			if err != nil {
				return err
			}

			p := market.NewProvider(market.ProviderOptions{Client: a.client, Currency: cur, Logger: a.logger})
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.SetSearchTerm(search)

			snap := p.Snapshot()
			shown := snap.Filtered
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}

			entries := make([]marketEntry, 0, len(shown))
			for _, c := range shown {
				entries = append(entries, toMarketEntry(cur, c))
			}

			if a.jsonOut {
				return printJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No coins matching %q\n", search)
				return nil
			}
			if err := printMarketsTable(cmd, entries); err != nil {
				return err
			}
			printer.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d coins (%s)\n", len(entries), len(snap.Filtered), strings.ToUpper(cur.Code))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only show coins whose name contains this text")
	cmd.Flags().IntVar(&limit, "limit", DefaultMarketsLimit, "Maximum rows to print (0 for all)")
	return cmd
}

func toMarketEntry(cur domain.Currency, c domain.CoinSummary) marketEntry {
	e := marketEntry{
		Rank:      "-",
		ID:        c.ID,
		Name:      c.Name,
		Symbol:    strings.ToUpper(c.Symbol),
		Price:     format.OptionalMoney(cur.Symbol, c.CurrentPrice, format.DefaultDecimals),
		Change24h: format.Percent(c.PriceChangePercentage24h) + "%",
		MarketCap: format.OptionalMoney(cur.Symbol, c.MarketCap, format.DefaultDecimals),
	}
	if c.MarketCapRank != nil {
		e.Rank = strconv.Itoa(*c.MarketCapRank)
	}
	return e
}

func printMarketsTable(cmd *cobra.Command, entries []marketEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSYMBOL\tPRICE\t24H\tMARKET CAP")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Rank, e.Name, e.Symbol, e.Price, e.Change24h, e.MarketCap)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
