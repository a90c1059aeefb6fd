// Package navbar holds the search box state of the navigation bar.
package navbar

import (
	"sync"

	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/market"
)

// Store is the part of the market provider the navbar reads and writes.
type Store interface {
	Coins() []domain.CoinSummary
	SetSearchTerm(term string)
}

// Navbar tracks the raw search input and its autocomplete suggestions.
type Navbar struct {
	store Store

	mu          sync.Mutex
	input       string
	suggestions []domain.CoinSummary
}

// New creates a navbar over store.
func New(store Store) *Navbar {
	return &Navbar{store: store}
}

// Input records a keystroke. Clearing the box also clears the committed
// search term so the table shows every coin again.
func (n *Navbar) Input(value string) []domain.CoinSummary {
	if value == "" {
		n.mu.Lock()
		n.input = ""
		n.suggestions = nil
		n.mu.Unlock()
		n.store.SetSearchTerm("")
		return nil
	}

	suggestions := market.Suggest(n.store.Coins(), value, market.SuggestionLimit)

	n.mu.Lock()
	n.input = value
	n.suggestions = suggestions
	n.mu.Unlock()
	return copyCoins(suggestions)
}

// Submit commits the current input as the search term.
func (n *Navbar) Submit() string {
	n.mu.Lock()
	term := n.input
	n.suggestions = nil
	n.mu.Unlock()

	n.store.SetSearchTerm(term)
	return term
}

// Pick copies a suggestion into the input. The search term is left alone
// until the next Submit.
func (n *Navbar) Pick(name string) {
	n.mu.Lock()
	n.input = name
	n.suggestions = nil
	n.mu.Unlock()
}

// Value returns the raw input.
func (n *Navbar) Value() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.input
}

// Suggestions returns the open suggestions, if any.
func (n *Navbar) Suggestions() []domain.CoinSummary {
	n.mu.Lock()
	defer n.mu.Unlock()
	return copyCoins(n.suggestions)
}

func copyCoins(in []domain.CoinSummary) []domain.CoinSummary {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.CoinSummary, len(in))
	copy(out, in)
	return out
}
