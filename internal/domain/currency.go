package domain

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed currencies.yaml
var currencyCatalog []byte

// Currency is the display unit all market values are denominated in.
type Currency struct {
	Code   string `yaml:"code"`   // upstream vs_currency code, lowercase
	Symbol string `yaml:"symbol"` // prefix used when rendering money
	Name   string `yaml:"name"`
}

// DefaultCurrency is selected for new sessions.
var DefaultCurrency = Currency{Code: "usd", Symbol: "$", Name: "US Dollar"}

var (
	currencies     []Currency
	currenciesOnce sync.Once
	currenciesErr  error
)

// Currencies returns the selectable currencies in catalog order.
func Currencies() ([]Currency, error) {
	currenciesOnce.Do(func() {
		var doc struct {
			Currencies []Currency `yaml:"currencies"`
		}
		if err := yaml.Unmarshal(currencyCatalog, &doc); err != nil {
			currenciesErr = fmt.Errorf("parse currency catalog: %w", err)
			return
		}
		currencies = doc.Currencies
	})
	if currenciesErr != nil {
		return nil, currenciesErr
	}
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out, nil
}

// LookupCurrency finds a catalog currency by code (case-insensitive).
func LookupCurrency(code string) (Currency, bool) {
	all, err := Currencies()
	if err != nil {
		return Currency{}, false
	}
	code = strings.ToLower(strings.TrimSpace(code))
	for _, c := range all {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
