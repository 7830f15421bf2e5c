// Package news serves market headlines and turns article pages into
// readable markdown.
package news

import (
	"context"
	"net/http"
	"time"

	"github.com/ghost2804/finhub/pkg/services/quotes"
)

const defaultLimit = 10

// Headline is a news list entry, without the article body.
type Headline struct {
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Link    string   `json:"link"`
	Symbols []string `json:"symbols,omitempty"`
}

// Source provides raw news items for a symbol.
type Source interface {
	News(ctx context.Context, symbol string, limit int) ([]quotes.NewsItem, error)
}

type Service struct {
	src Source
	cli *http.Client
}

func New(src Source) *Service {
	return &Service{
		src: src,
		cli: &http.Client{Timeout: 20 * time.Second},
	}
}

// Headlines lists recent news for a symbol, newest first as delivered
// by the provider.
func (s *Service) Headlines(ctx context.Context, symbol string, limit int) ([]Headline, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	items, err := s.src.News(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Headline, 0, len(items))
	for _, it := range items {
		out = append(out, Headline{
			Date:    it.Date,
			Title:   it.Title,
			Link:    it.Link,
			Symbols: it.Symbols,
		})
	}
	logger().Debugw("headlines", "symbol", symbol, "count", len(out))
	return out, nil
}
