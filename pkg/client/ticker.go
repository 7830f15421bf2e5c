package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghost2804/finhub/pkg/models/market"
)

// DefaultPollInterval is used when a Ticker is built without one.
const DefaultPollInterval = 5 * time.Second

// Ticker is the market ticker client: a cancellable poll loop that keeps a
// surface synchronized with the latest quote snapshot. The previous render
// survives any failed poll, and a slow response can never overwrite a newer
// snapshot.
type Ticker struct {
	api      QuoteAPI
	sfc      Surface
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	seq     uint64 // last issued fetch token
	applied uint64 // highest token whose snapshot rendered

	wg sync.WaitGroup
}

// NewTicker polls api every interval and renders into sfc.
func NewTicker(api QuoteAPI, sfc Surface, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Ticker{api: api, sfc: sfc, interval: interval}
}

// Start begins polling. There is no immediate tick: the surface stays as it
// was until the first interval boundary.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return errors.New("ticker: already started")
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.run(ctx)

	logger().Infow("ticker started", "interval", t.interval)
	return nil
}

// Stop cancels the loop and waits for in-flight fetches to settle. Stopping
// a ticker that never started is a no-op.
func (t *Ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger().Infow("ticker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Ticker) run(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Fetches are not coalesced: a slow one may still be in
			// flight when the next boundary hits. The token decides
			// which snapshot wins.
			t.wg.Add(1)
			go func(token uint64) {
				defer t.wg.Done()
				t.tick(ctx, token)
			}(t.nextToken())
		}
	}
}

func (t *Ticker) nextToken() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	return t.seq
}

// tick fetches one snapshot, bounded by the poll interval so a hung server
// cannot wedge the loop. A failed fetch only logs; the previous render
// stays.
func (t *Ticker) tick(ctx context.Context, token uint64) {
	ctx, cancel := context.WithTimeout(ctx, t.interval)
	defer cancel()

	snap, err := t.api.Quotes(ctx)
	if err != nil {
		logger().Infow("poll quotes fail", "token", token, "err", err)
		return
	}
	t.apply(token, snap)
}

// apply renders snap wholesale: clear, then one row per symbol in sorted
// order. A token at or below the last applied one is stale and dropped.
func (t *Ticker) apply(token uint64, snap market.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token <= t.applied {
		logger().Debugw("stale snapshot dropped", "token", token, "applied", t.applied)
		return
	}
	t.applied = token

	t.sfc.Clear()
	for _, symbol := range snap.Symbols() {
		q := snap[symbol]
		t.sfc.Push(q.Direction(), quoteRow(symbol, q))
	}
}
