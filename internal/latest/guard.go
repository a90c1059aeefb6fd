// Package latest tracks request generations so that only the response to the
// most recent request is applied.
package latest

import (
	"context"
	"sync"
)

// Token identifies one request generation.
type Token uint64

// Guard hands out generation tokens. Beginning a new generation cancels the
// context of the previous one.
type Guard struct {
	mu     sync.Mutex
	gen    Token
	cancel context.CancelFunc
}

// Begin starts a new generation derived from parent. The previous generation's
// context is cancelled. The returned context must be released with Done.
func (g *Guard) Begin(parent context.Context) (context.Context, Token) {
	ctx, cancel := context.WithCancel(parent)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.gen++
	g.cancel = cancel
	return ctx, g.gen
}

// Current reports whether t is still the latest generation.
func (g *Guard) Current(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t == g.gen
}

// Done releases the context of generation t. Releasing a superseded
// generation is a no-op because Begin already cancelled it.
func (g *Guard) Done(t Token) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t == g.gen && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// Generation returns the latest token handed out.
func (g *Guard) Generation() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}
