package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-tracker/internal/coingecko/stub"
	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/idhash"
	"crypto-tracker/internal/market"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newStore(t *testing.T, ttl time.Duration) (*Store, *fakeClock, *stub.Client) {
	t.Helper()
	client := stub.NewClient()
	client.SetMarkets("usd", []domain.CoinSummary{{ID: "bitcoin", Name: "Bitcoin"}})
	clock := &fakeClock{now: time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)}
	s := NewStore(Dependencies{Markets: client, Details: client}, WithTTL(ttl), WithClock(clock.Now))
	return s, clock, client
}

func TestStore_CreateAndGet(t *testing.T) {
	s, _, _ := newStore(t, time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx)
	require.NoError(t, err)
	assert.True(t, idhash.ValidSessionID(sess.ID))
	require.NotNil(t, sess.Market)
	require.NotNil(t, sess.Navbar)
	require.NotNil(t, sess.Auth)
	require.NotNil(t, sess.Detail)
	assert.Equal(t, domain.DefaultCurrency, sess.Market.Currency())
	assert.False(t, sess.Market.Loaded())

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s, _, _ := newStore(t, time.Minute)
	ctx := context.Background()

	a, err := s.Create(ctx)
	require.NoError(t, err)
	b, err := s.Create(ctx)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Market.Load(ctx))
	a.Market.SetSearchTerm("bit")

	assert.Empty(t, b.Market.SearchTerm())
	assert.False(t, b.Market.Loaded())
}

func TestStore_GetErrors(t *testing.T) {
	s, _, _ := newStore(t, time.Minute)
	ctx := context.Background()

	_, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Get(ctx, "not-base58!")
	assert.ErrorIs(t, err, ErrInvalidInput)

	id, err := idhash.NewSessionID()
	require.NoError(t, err)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ExpiredOnGet(t *testing.T) {
	s, clock, _ := newStore(t, time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx)
	require.NoError(t, err)

	clock.Advance(50 * time.Second)
	_, err = s.Get(ctx, sess.ID)
	require.NoError(t, err, "get refreshes last seen")

	clock.Advance(50 * time.Second)
	_, err = s.Get(ctx, sess.ID)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	s, clock, _ := newStore(t, time.Minute)
	ctx := context.Background()

	idle, err := s.Create(ctx)
	require.NoError(t, err)
	clock.Advance(45 * time.Second)
	active, err := s.Create(ctx)
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, active.ID)
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	s, _, _ := newStore(t, time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx)
	require.NoError(t, err)
	s.Delete(ctx, sess.ID)
	s.Delete(ctx, sess.ID)

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RunSweeperStopsOnCancel(t *testing.T) {
	s, _, _ := newStore(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestStore_UsesProviderOptions(t *testing.T) {
	client := stub.NewClient()
	eur := domain.Currency{Code: "eur", Symbol: "€"}
	s := NewStore(Dependencies{
		Markets: client,
		Details: client,
		Options: market.ProviderOptions{Currency: eur},
	})

	sess, err := s.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, eur, sess.Market.Currency())
}
