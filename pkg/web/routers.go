package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ghost2804/finhub/pkg/settings"
)

type M = render.M

func (s *server) strapRouter() {

	s.ar.Get("/ping", handlerPing)

	// pages
	s.ar.Get("/", s.pageHome)
	s.ar.Get("/finance", s.pageFinance)
	s.ar.Get("/budget", s.pageBudget)
	s.ar.Get("/stocknews", s.pageStockNews)
	s.ar.Get("/bank-analysis", s.pageBankAnalysis)
	s.ar.Get("/smart-budget", s.pageSmartBudget)
	s.ar.Get("/chatbot", s.pageChatbot)

	// chat endpoints polled by the session chat client
	s.ar.Get("/chat-history", s.getChatHistory)
	s.ar.Group(func(r chi.Router) {
		r.Use(s.chatLimiter())
		r.Post("/chat", s.postChat)
		r.Post("/chat-sse", s.postChat)
	})

	s.ar.Route("/api", func(r chi.Router) {
		r.Get("/welcome", s.getWelcome)
		r.Get("/stocks", s.getStocks)
		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", s.getWatchlist)
			r.Post("/", s.postWatchlist)
			r.Delete("/{symbol}", s.deleteWatchlist)
		})
		r.Get("/banks", s.getBankNames)
		r.Get("/banks/overview", s.getBankSector)
		r.Get("/banks/warnings", s.getBankWarnings)
		r.Get("/bank/{bank}", s.getBank)
		r.Post("/create-budget", s.postCreateBudget)
		r.Get("/savings-tips/{profile}", s.getSavingsTips)
		r.Get("/news", s.getNews)
		r.Get("/news/read", s.getNewsRead)
		r.Post("/calc/{tool}", s.postCalc)
	})

	if s.cfg.DocHandler != nil {
		s.ar.Handle("/static/*", http.StripPrefix("/static/", s.cfg.DocHandler))
	}
	s.ar.NotFound(s.pageNotFound)
}

// chatLimiter guards the chat endpoints per client IP.
func (s *server) chatLimiter() func(next http.Handler) http.Handler {
	rate, err := limiter.NewRateFromFormatted(settings.Current.ChatRateLimit)
	if err != nil {
		logger().Warnw("parse chat rate limit fail", "value", settings.Current.ChatRateLimit, "err", err)
		return func(next http.Handler) http.Handler { return next }
	}
	mw := mhttp.NewMiddleware(limiter.New(memory.NewStore(), rate, limiter.WithTrustForwardHeader(true)))
	return mw.Handler
}

func handlerPing(w http.ResponseWriter, r *http.Request) {
	render.Data(w, r, []byte("Pong\n"))
}

func apiFail(w http.ResponseWriter, r *http.Request, status int, err interface{}) {
	msg := http.StatusText(status)
	switch ret := err.(type) {
	case error:
		msg = ret.Error()
	case fmt.Stringer:
		msg = ret.String()
	case string:
		msg = ret
	case []byte:
		msg = string(ret)
	}
	render.Status(r, status)
	render.JSON(w, r, M{
		"status": status,
		"error":  msg,
	})
}

type RespDone struct {
	Status int `json:"status"`
	Data   any `json:"data,omitempty"`
	Count  int `json:"count,omitempty"`
}

func apiOk(w http.ResponseWriter, r *http.Request, args ...any) {
	res := &RespDone{}
	if len(args) > 0 && args[0] != nil {
		res.Data = args[0]
		if len(args) > 1 {
			if c, ok := args[1].(int); ok {
				res.Count = c
			}
		}
	}

	render.JSON(w, r, res)
}
