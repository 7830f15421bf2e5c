package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/marcsv/go-binder/binder"

	"github.com/ghost2804/finhub/pkg/services/banks"
)

// getStocks serves the full watchlist snapshot the ticker client polls.
// The wire shape is the bare symbol→quote map.
func (s *server) getStocks(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.sto.Watchlist().List(r.Context())
	if err != nil {
		logger().Infow("list watchlist fail", "err", err)
		apiFail(w, r, 500, "Unable to fetch stock data")
		return
	}
	snap, err := s.mkt.Snapshot(r.Context(), symbols)
	if err != nil {
		logger().Infow("snapshot fail", "err", err)
		apiFail(w, r, 502, "Unable to fetch stock data")
		return
	}
	render.JSON(w, r, snap)
}

func (s *server) getWatchlist(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.sto.Watchlist().List(r.Context())
	if err != nil {
		apiFail(w, r, 500, err)
		return
	}
	apiOk(w, r, symbols, len(symbols))
}

type watchRequest struct {
	Symbol string `json:"symbol"`
}

func (s *server) postWatchlist(w http.ResponseWriter, r *http.Request) {
	var param watchRequest
	if err := binder.BindBody(r, &param); err != nil {
		apiFail(w, r, 400, err)
		return
	}
	if param.Symbol == "" {
		apiFail(w, r, 400, "symbol is required")
		return
	}
	if err := s.sto.Watchlist().Add(r.Context(), param.Symbol); err != nil {
		apiFail(w, r, 500, err)
		return
	}
	symbols, _ := s.sto.Watchlist().List(r.Context())
	apiOk(w, r, symbols, len(symbols))
}

func (s *server) deleteWatchlist(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if err := s.sto.Watchlist().Remove(r.Context(), symbol); err != nil {
		apiFail(w, r, 500, err)
		return
	}
	apiOk(w, r)
}

func (s *server) getBankNames(w http.ResponseWriter, r *http.Request) {
	names := banks.Names()
	apiOk(w, r, names, len(names))
}

func (s *server) getBank(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "bank")
	data, err := s.banks.BankData(r.Context(), name)
	if err != nil {
		if errors.Is(err, banks.ErrUnknownBank) {
			apiFail(w, r, 404, err)
			return
		}
		logger().Infow("bank data fail", "bank", name, "err", err)
		apiFail(w, r, 500, "Failed to fetch bank data")
		return
	}
	render.JSON(w, r, M{
		"bank_data":       data,
		"health_analysis": s.banks.HealthScore(data),
	})
}

func (s *server) getBankSector(w http.ResponseWriter, r *http.Request) {
	overview, err := s.banks.SectorOverview(r.Context())
	if err != nil {
		apiFail(w, r, 502, "Unable to fetch banking sector data")
		return
	}
	render.JSON(w, r, overview)
}

func (s *server) getBankWarnings(w http.ResponseWriter, r *http.Request) {
	report, err := s.banks.EarlyWarnings(r.Context())
	if err != nil {
		apiFail(w, r, 502, "Unable to fetch banking sector data")
		return
	}
	render.JSON(w, r, report)
}
