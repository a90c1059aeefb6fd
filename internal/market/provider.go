// Package market holds the shared coin list for one browser session: the full
// list for the selected currency, the search term and the filtered view.
package market

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/latest"
	"crypto-tracker/internal/observability"
)

// Lister fetches the market list for a currency.
type Lister interface {
	Markets(ctx context.Context, vsCurrency string) ([]domain.CoinSummary, error)
}

// Snapshot is an immutable view of the provider state.
type Snapshot struct {
	Currency   domain.Currency
	SearchTerm string
	Coins      []domain.CoinSummary // full list for Currency
	Filtered   []domain.CoinSummary // Coins filtered by SearchTerm
	Loaded     bool                 // at least one list has been applied
	Generation latest.Token         // request generation of the applied list
}

// Listener receives a snapshot after every state change.
type Listener func(Snapshot)

// ProviderOptions configures a Provider.
type ProviderOptions struct {
	Client   Lister
	Currency domain.Currency // initial currency; zero value selects domain.DefaultCurrency
	Logger   *log.Logger
}

// Provider is an observable store over the coin list, currency and search term.
// Each field has a single writer method; reads return copies.
type Provider struct {
	client Lister
	logger *log.Logger
	guard  latest.Guard

	mu        sync.RWMutex
	currency  domain.Currency
	term      string
	coins     []domain.CoinSummary
	filtered  []domain.CoinSummary
	loaded    bool
	applied   latest.Token
	listeners map[int]Listener
	nextID    int
}

// NewProvider creates a provider. Call Load to fetch the initial list.
func NewProvider(opts ProviderOptions) *Provider {
	cur := opts.Currency
	if cur.Code == "" {
		cur = domain.DefaultCurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Provider{
		client:    opts.Client,
		logger:    logger,
		currency:  cur,
		listeners: make(map[int]Listener),
	}
}

// Load fetches the list for the current currency.
func (p *Provider) Load(ctx context.Context) error {
	p.mu.Lock()
	cur := p.currency
	ctx, tok := p.guard.Begin(ctx)
	p.mu.Unlock()

	return p.refresh(ctx, tok, cur)
}

// SetCurrency selects a new currency and replaces the coin list with the one
// fetched for it. On failure the previous list stays in place.
func (p *Provider) SetCurrency(ctx context.Context, c domain.Currency) error {
	p.mu.Lock()
	p.currency = c
	ctx, tok := p.guard.Begin(ctx)
	p.mu.Unlock()
	p.notify()

	return p.refresh(ctx, tok, c)
}

// SetSearchTerm stores term and recomputes the filtered list.
func (p *Provider) SetSearchTerm(term string) {
	p.mu.Lock()
	p.term = term
	p.filtered = FilterByName(p.coins, term)
	p.mu.Unlock()
	p.notify()
}

// refresh issues the market request of generation tok for c. The currency and
// the token are taken together under p.mu, so only the latest request may
// apply its result; superseded requests are cancelled and their responses
// dropped.
func (p *Provider) refresh(ctx context.Context, tok latest.Token, c domain.Currency) error {
	defer p.guard.Done(tok)

	coins, err := p.client.Markets(ctx, c.Code)
	if !p.guard.Current(tok) {
		observability.RecordStaleResponse("market")
		p.logger.Printf("Discarding stale %s list (generation %d)", c.Code, tok)
		return nil
	}

	observability.RecordMarketRefresh(c.Code, len(coins), err)
	if err != nil {
		p.logger.Printf("Failed to fetch %s market list: %v", c.Code, err)
		return fmt.Errorf("fetch %s market list: %w", c.Code, err)
	}

	p.mu.Lock()
	if !p.guard.Current(tok) || p.currency.Code != c.Code {
		p.mu.Unlock()
		observability.RecordStaleResponse("market")
		return nil
	}
	p.coins = coins
	p.filtered = FilterByName(coins, p.term)
	p.loaded = true
	p.applied = tok
	p.mu.Unlock()

	p.notify()
	return nil
}

// Snapshot returns the current state.
func (p *Provider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

func (p *Provider) snapshotLocked() Snapshot {
	coins := make([]domain.CoinSummary, len(p.coins))
	copy(coins, p.coins)
	filtered := make([]domain.CoinSummary, len(p.filtered))
	copy(filtered, p.filtered)
	return Snapshot{
		Currency:   p.currency,
		SearchTerm: p.term,
		Coins:      coins,
		Filtered:   filtered,
		Loaded:     p.loaded,
		Generation: p.applied,
	}
}

// Coins returns the unfiltered list.
func (p *Provider) Coins() []domain.CoinSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.CoinSummary, len(p.coins))
	copy(out, p.coins)
	return out
}

// Filtered returns the list filtered by the search term.
func (p *Provider) Filtered() []domain.CoinSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.CoinSummary, len(p.filtered))
	copy(out, p.filtered)
	return out
}

// Currency returns the selected currency.
func (p *Provider) Currency() domain.Currency {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currency
}

// SearchTerm returns the committed search term.
func (p *Provider) SearchTerm() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.term
}

// Loaded reports whether a list has been applied.
func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Subscribe registers fn for state changes and returns a func that removes it.
// Listeners run synchronously on the goroutine that changed the state.
func (p *Provider) Subscribe(fn Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *Provider) notify() {
	p.mu.RLock()
	snap := p.snapshotLocked()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn(snap)
	}
	observability.RecordNotification(len(listeners))
}
