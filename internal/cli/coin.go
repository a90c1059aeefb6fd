package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crypto-tracker/internal/detail"
	"crypto-tracker/internal/domain"
)

func (a *app) coinCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "coin <id>",
		Short: "Show one coin in detail",
		Long:  `Fetch a coin's metadata and price history and print the same sections as the detail page.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := a.selectedCurrency()
			if err != nil {
				return err
			}
			if !domain.ValidWindow(days) {
				return fmt.Errorf("--days must be between %d and %d", domain.MinWindowDays, domain.MaxWindowDays)
			}

			view := detail.NewView(a.client, a.logger)
			page, err := view.Load(cmd.Context(), detail.Request{ID: args[0], Currency: cur, Days: days})
			if err != nil {
				return err
			}
			if page.Error != "" {
				return errors.New(page.Error)
			}

			if a.jsonOut {
				return printJSON(cmd, page)
			}
			return printCoin(cmd, page)
		},
	}

	cmd.Flags().IntVar(&days, "days", domain.DefaultWindowDays, "Price history window in days (1-365)")
	return cmd
}

func printCoin(cmd *cobra.Command, p *detail.Page) error {
	out := cmd.OutOrStdout()
	h := p.Header

	arrow := "▼"
	if h.Up {
		arrow = "▲"
	}
	fmt.Fprintf(out, "%s (%s)\n", h.Name, h.Symbol)
	fmt.Fprintf(out, "Rank: %s • %s %s %s%%\n\n", h.Rank, h.Price, arrow, h.Change)

	fmt.Fprintln(out, p.Chart.Title)
	if p.Chart.Area.Empty() {
		fmt.Fprintln(out, "No chart data")
	} else {
		fmt.Fprintf(out, "Low %s · High %s over %d points\n", p.Chart.Low, p.Chart.High, p.Chart.Area.Points)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, s := range p.Stats {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Title, s.Value, s.Note)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n%s\n", p.About.Title, p.About.Summary)
	for _, l := range p.About.Homepages {
		fmt.Fprintf(out, "  %s\n", l.Label)
	}

	fmt.Fprintln(out, "\nPrice Performance")
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, c := range p.Performance {
		fmt.Fprintf(w, "%s\t%s%%\n", c.Timeframe, c.Percent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(p.Categories) > 0 {
		fmt.Fprintf(out, "\nCategories: %s\n", strings.Join(p.Categories, ", "))
	}
	fmt.Fprintf(out, "Genesis Date: %s\n", p.GenesisDate)
	for _, l := range p.Community {
		fmt.Fprintf(out, "%s: %s\n", l.Label, l.URL)
	}
	return nil
}
