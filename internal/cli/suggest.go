package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crypto-tracker/internal/market"
	"crypto-tracker/internal/navbar"
)

func (a *app) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <input>",
		Short: "Suggest coin names for a partial input",
		Long:  `Print up to five coin names containing the input, in market cap order.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := a.selectedCurrency()
			if err != nil {
				return err
			}

			p := market.NewProvider(market.ProviderOptions{Client: a.client, Currency: cur, Logger: a.logger})
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}

			suggestions := navbar.New(p).Input(args[0])
			if a.jsonOut {
				names := make([]string, 0, len(suggestions))
				for _, c := range suggestions {
					names = append(names, c.Name)
				}
				return printJSON(cmd, names)
			}
			if len(suggestions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No coins matching %q\n", args[0])
				return nil
			}
			for _, c := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", c.Name, strings.ToUpper(c.Symbol))
			}
			return nil
		},
	}
}
