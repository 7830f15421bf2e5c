package quotes

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ghost2804/finhub/pkg/models/market"
)

const fetchConcurrency = 8

// Service assembles watchlist snapshots from the EODHD feed, with a short
// TTL cache in front so the poll endpoints don't hammer the upstream.
type Service struct {
	cli      *Client
	cacheTTL time.Duration

	mu        sync.Mutex
	cacheKey  string
	cached    market.Snapshot
	fetchedAt time.Time
}

// NewService wraps cli with snapshot assembly and caching.
func NewService(cli *Client, cacheTTL time.Duration) *Service {
	return &Service{cli: cli, cacheTTL: cacheTTL}
}

// Snapshot fetches the latest quote for every symbol and returns them as one
// map. Symbols with no data are skipped rather than failing the whole batch.
func (s *Service) Snapshot(ctx context.Context, symbols []string) (market.Snapshot, error) {
	key := strings.Join(symbols, ",")

	s.mu.Lock()
	if s.cached != nil && s.cacheKey == key && time.Since(s.fetchedAt) < s.cacheTTL {
		snap := s.cached
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	snap := make(market.Snapshot, len(symbols))
	var snapMu sync.Mutex

	sem := make(chan struct{}, fetchConcurrency)
	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			quote, err := s.fetchQuote(ctx, symbol)
			if err != nil {
				logger().Warnw("fetch quote fail", "symbol", symbol, "err", err)
				return
			}
			snapMu.Lock()
			snap[symbol] = quote
			snapMu.Unlock()
		}(symbol)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cacheKey = key
	s.cached = snap
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return snap, nil
}

// fetchQuote pulls the last week of daily bars and derives price and change
// from the two most recent closes.
func (s *Service) fetchQuote(ctx context.Context, symbol string) (market.Quote, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -7)
	candles, err := s.cli.EOD(ctx, symbol, from, to)
	if err != nil {
		return market.Quote{}, err
	}
	quote, ok := quoteFromCandles(symbol, candles)
	if !ok {
		return market.Quote{}, errNoData
	}
	return quote, nil
}

// History returns up to days of daily bars for symbol, oldest first.
func (s *Service) History(ctx context.Context, symbol string, days int) ([]market.Candle, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	candles, err := s.cli.EOD(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Date < candles[j].Date })
	return candles, nil
}

// Fundamentals returns the fundamentals document for symbol.
func (s *Service) Fundamentals(ctx context.Context, symbol string) (Fundamentals, error) {
	return s.cli.GetFundamentals(ctx, symbol)
}

// Quote returns the delayed live quote for a single symbol.
func (s *Service) Quote(ctx context.Context, symbol string) (market.Quote, error) {
	rt, err := s.cli.RealTime(ctx, symbol)
	if err != nil {
		return market.Quote{}, err
	}
	if rt.PreviousClose == 0 {
		return market.Quote{}, errNoData
	}
	return market.Quote{
		Name:          DisplayName(symbol),
		Price:         round2(rt.Close),
		Change:        round2(rt.Change),
		ChangePercent: round2(rt.ChangePercent),
	}, nil
}

// quoteFromCandles derives a display quote from daily bars: the latest close
// is the price, the change compares it against the close before it.
func quoteFromCandles(symbol string, candles []market.Candle) (market.Quote, bool) {
	if len(candles) < 2 {
		return market.Quote{}, false
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Date < candles[j].Date })
	latest := candles[len(candles)-1].Close
	previous := candles[len(candles)-2].Close
	if previous == 0 {
		return market.Quote{}, false
	}
	change := latest - previous
	return market.Quote{
		Name:          DisplayName(symbol),
		Price:         round2(latest),
		Change:        round2(change),
		ChangePercent: round2(change / previous * 100),
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
