package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ghost2804/finhub/pkg/models/chat"
	"github.com/ghost2804/finhub/pkg/models/market"
	"github.com/ghost2804/finhub/pkg/services/advisor"
	"github.com/ghost2804/finhub/pkg/services/banks"
	"github.com/ghost2804/finhub/pkg/services/news"
	"github.com/ghost2804/finhub/pkg/services/quotes"
	"github.com/ghost2804/finhub/pkg/services/stores"
	"github.com/ghost2804/finhub/pkg/settings"
)

type Service interface {
	Serve(ctx context.Context) error
	Stop(ctx context.Context) error
}

type Config struct {
	Addr  string
	Debug bool

	// DocHandler serves the embedded static assets under /static/.
	DocHandler http.Handler
}

// narrow views over the services, so handlers test against fakes

type marketData interface {
	Snapshot(ctx context.Context, symbols []string) (market.Snapshot, error)
}

type bankAnalyzer interface {
	BankData(ctx context.Context, bank string) (banks.StockData, error)
	HealthScore(data banks.StockData) banks.HealthAnalysis
	SectorOverview(ctx context.Context) (banks.SectorOverview, error)
	EarlyWarnings(ctx context.Context) (banks.WarningReport, error)
}

type newsReader interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]news.Headline, error)
	Read(ctx context.Context, pageURL string) (*news.Article, error)
}

type chatAdvisor interface {
	Ask(ctx context.Context, hist chat.HistoryItems, question string) (string, error)
}

type deps struct {
	sto    stores.Storage
	mkt    marketData
	banks  bankAnalyzer
	news   newsReader
	adv    chatAdvisor
	preset chat.Preset
}

type server struct {
	addr string
	cfg  Config

	sto    stores.Storage
	mkt    marketData
	banks  bankAnalyzer
	news   newsReader
	adv    chatAdvisor
	preset chat.Preset

	ar *chi.Mux     // app router
	hs *http.Server // http server
}

// New return new web server
func New(cfg Config) Service {
	preset, err := stores.LoadPreset()
	if err == nil {
		logger().Infow("loaded preset", "messages", len(preset.Messages))
	}

	qcli := quotes.New(settings.Current.EodhdToken)
	qsvc := quotes.NewService(qcli, settings.Current.QuoteCacheTTL)

	d := deps{
		sto:    stores.Sgt(),
		mkt:    qsvc,
		banks:  banks.NewAnalyzer(qsvc),
		news:   news.New(qcli),
		preset: preset,
	}
	if adv, err := advisor.New(context.Background(), preset, qsvc); err != nil {
		logger().Warnw("init advisor fail", "err", err)
	} else {
		d.adv = adv
	}

	return newServer(cfg, d)
}

func newServer(cfg Config, d deps) *server {
	ar := chi.NewMux()
	if cfg.Debug {
		ar.Use(middleware.Logger)
	}

	s := &server{
		addr: cfg.Addr, ar: ar,
		cfg:    cfg,
		sto:    d.sto,
		mkt:    d.mkt,
		banks:  d.banks,
		news:   d.news,
		adv:    d.adv,
		preset: d.preset,
	}
	ar.Use(s.recoverer, middleware.RealIP)
	s.strapRouter()

	s.hs = &http.Server{
		Addr:    s.addr,
		Handler: s.ar,
	}

	if cfg.Debug {
		logger().Infow("routes:")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			route = strings.Replace(route, "/*/", "/", -1)
			fmt.Fprintf(os.Stderr, "DEBUG: %-6s %-24s --> %s (%d mw)\n", method, route, nameOfFunction(handler), len(middlewares))
			return nil
		}

		if err := chi.Walk(ar, walkFunc); err != nil {
			logger().Infow("router walk fail", "err", err)
		}
	}
	return s
}

func (s *server) Serve(ctx context.Context) error {
	// Run HTTP server
	runErrChan := make(chan error)
	t := time.AfterFunc(time.Millisecond*200, func() {
		runErrChan <- s.hs.ListenAndServe()
	})

	defer t.Stop()
	logger().Infow("Listen on", "addr", s.hs.Addr)

	// Wait
	for {
		select {
		case runErr := <-runErrChan:
			if runErr != nil {
				logger().Infow("run http server failed",
					"err", runErr,
				)
				return runErr
			}
		case <-ctx.Done():
			logger().Info("http server has been stopped")
			return ctx.Err()
		}
	}
}

func (s *server) Stop(ctx context.Context) error {
	if err := s.hs.Shutdown(ctx); err != nil {
		logger().Fatalw("Server Shutdown", "err", err)
		return err
	}
	return nil
}
