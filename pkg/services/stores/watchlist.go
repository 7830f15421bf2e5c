package stores

import (
	"context"
	"sort"
	"strings"
)

const watchlistKey = "watchlist-symbols"

// DefaultSymbols seed the watchlist on first use: the US large caps plus the
// NSE names the dashboard tracks.
var DefaultSymbols = []string{
	"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA",
	"RELIANCE.NSE", "TCS.NSE", "HDFCBANK.NSE", "INFY.NSE", "ICICIBANK.NSE",
}

// Watchlist is the set of symbols the ticker endpoints serve.
type Watchlist interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, symbol string) error
	Remove(ctx context.Context, symbol string) error
}

type watchlist struct {
	rc RedisClient
}

func (s *watchlist) List(ctx context.Context) ([]string, error) {
	symbols, err := s.rc.SMembers(ctx, watchlistKey).Result()
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		if err = s.seed(ctx); err != nil {
			logger().Infow("seed watchlist fail", "err", err)
			return append([]string{}, DefaultSymbols...), nil
		}
		symbols = append(symbols, DefaultSymbols...)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (s *watchlist) Add(ctx context.Context, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil
	}
	return s.rc.SAdd(ctx, watchlistKey, symbol).Err()
}

func (s *watchlist) Remove(ctx context.Context, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil
	}
	return s.rc.SRem(ctx, watchlistKey, symbol).Err()
}

func (s *watchlist) seed(ctx context.Context) error {
	members := make([]any, 0, len(DefaultSymbols))
	for _, symbol := range DefaultSymbols {
		members = append(members, symbol)
	}
	return s.rc.SAdd(ctx, watchlistKey, members...).Err()
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
