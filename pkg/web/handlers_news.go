package web

import (
	"errors"
	"net/http"

	"github.com/spf13/cast"
	qbind "github.com/wgarunap/url-query-binder"

	"github.com/ghost2804/finhub/pkg/services/news"
)

type newsQuery struct {
	Symbol string `query:"s"`
	Limit  string `query:"limit"`
}

func (s *server) getNews(w http.ResponseWriter, r *http.Request) {
	var q newsQuery
	qb := qbind.NewQueryBinder()
	qb.SetTag("query")
	if err := qb.Bind(&q, r.URL); err != nil {
		apiFail(w, r, 400, err)
		return
	}
	symbol := q.Symbol
	if symbol == "" {
		symbol = "AAPL"
	}

	items, err := s.news.Headlines(r.Context(), symbol, cast.ToInt(q.Limit))
	if err != nil {
		logger().Infow("fetch news fail", "symbol", symbol, "err", err)
		apiFail(w, r, 502, "Unable to fetch news")
		return
	}
	apiOk(w, r, items, len(items))
}

type readQuery struct {
	URL string `query:"url"`
}

func (s *server) getNewsRead(w http.ResponseWriter, r *http.Request) {
	var q readQuery
	qb := qbind.NewQueryBinder()
	qb.SetTag("query")
	if err := qb.Bind(&q, r.URL); err != nil {
		apiFail(w, r, 400, err)
		return
	}

	art, err := s.news.Read(r.Context(), q.URL)
	if err != nil {
		if errors.Is(err, news.ErrBadURL) {
			apiFail(w, r, 400, err)
			return
		}
		logger().Infow("read article fail", "url", q.URL, "err", err)
		apiFail(w, r, 502, "Unable to read article")
		return
	}
	apiOk(w, r, art)
}
