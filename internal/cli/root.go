// Package cli implements the tracker terminal client.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"crypto-tracker/internal/coingecko"
	"crypto-tracker/internal/config"
	"crypto-tracker/internal/domain"
)

var printer = message.NewPrinter(language.English)

// Options wires the commands to their collaborators.
type Options struct {
	// Client overrides the HTTP client built from config. Tests pass a stub.
	Client coingecko.Client
	Out    io.Writer
	Err    io.Writer
}

// app holds state shared by the subcommands of one root command.
type app struct {
	opts       Options
	configPath string
	currency   string
	jsonOut    bool
	verbose    bool

	cfg    *config.Config
	client coingecko.Client
	logger *log.Logger
}

// NewRootCommand builds the tracker command tree.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Browse CoinGecko market data from the terminal",
		Long:          `tracker lists coins by market cap, shows one coin in detail and suggests coin names.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.currency, "currency", "", "Quote currency code (default from config)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log upstream activity to stderr")

	root.AddCommand(a.marketsCmd(), a.coinCmd(), a.suggestCmd())
	return root
}

// Execute runs the command tree against the live API.
func Execute(ctx context.Context) error {
	return NewRootCommand(Options{}).ExecuteContext(ctx)
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logOut := io.Discard
	if a.verbose {
		logOut = os.Stderr
		if a.opts.Err != nil {
			logOut = a.opts.Err
		}
	}
	a.logger = log.New(logOut, "[tracker] ", log.LstdFlags)

	a.client = a.opts.Client
	if a.client == nil {
		a.client = coingecko.NewHTTPClient(cfg.CoinGecko.BaseURL,
			coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
			coingecko.WithTimeout(cfg.CoinGecko.Timeout),
			coingecko.WithMaxRetries(cfg.CoinGecko.MaxRetries),
		)
	}
	return nil
}

// selectedCurrency resolves --currency, falling back to the configured default.
func (a *app) selectedCurrency() (domain.Currency, error) {
	if a.currency == "" {
		return a.cfg.DefaultCurrency, nil
	}
	cur, ok := domain.LookupCurrency(a.currency)
	if !ok {
		return domain.Currency{}, fmt.Errorf("unknown currency %q", a.currency)
	}
	return cur, nil
}
