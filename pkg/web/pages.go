package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates
var tmplFS embed.FS

var pageTpl = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
}).ParseFS(tmplFS, "templates/*.html"))

func (s *server) renderPage(w http.ResponseWriter, status int, name string, data M) {
	if data == nil {
		data = M{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTpl.ExecuteTemplate(w, name, data); err != nil {
		logger().Infow("render page fail", "name", name, "err", err)
	}
}

// recoverer turns handler panics into the styled 500 page.
func (s *server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
				logger().Errorw("handler panic", "path", r.URL.Path, "err", rvr)
				s.pageServerError(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *server) pageHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, 200, "home.html", M{"Title": "Finance Hub"})
}

func (s *server) pageFinance(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, 200, "finance.html", M{"Title": "Financial Tools"})
}

func (s *server) pageBudget(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, 200, "budget.html", M{"Title": "Budget Tracker"})
}

func (s *server) pageStockNews(w http.ResponseWriter, r *http.Request) {
	data := M{"Title": "Stock News"}
	symbols, err := s.sto.Watchlist().List(r.Context())
	if err == nil {
		var snap any
		snap, err = s.mkt.Snapshot(r.Context(), symbols)
		data["Stocks"] = snap
	}
	if err != nil {
		logger().Infow("stocknews data fail", "err", err)
		data["Error"] = "Unable to fetch stock data"
	}
	s.renderPage(w, 200, "stocknews.html", data)
}

func (s *server) pageBankAnalysis(w http.ResponseWriter, r *http.Request) {
	data := M{"Title": "Bank Health Analysis"}
	overview, err := s.banks.SectorOverview(r.Context())
	if err != nil {
		logger().Infow("sector overview fail", "err", err)
		data["Error"] = "Unable to fetch data"
	} else {
		data["Overview"] = overview
		if warnings, werr := s.banks.EarlyWarnings(r.Context()); werr == nil {
			data["Warnings"] = warnings
		}
	}
	s.renderPage(w, 200, "bank_analysis.html", data)
}

func (s *server) pageSmartBudget(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, 200, "smart_budget.html", M{"Title": "Smart Budget Planner"})
}

func (s *server) pageChatbot(w http.ResponseWriter, r *http.Request) {
	data := M{"Title": "Finance Advisor"}
	if s.preset.Welcome != nil {
		data["Welcome"] = s.preset.Welcome.Content
	}
	s.renderPage(w, 200, "chatbot.html", data)
}

func (s *server) pageNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusNotFound, "404.html", M{"Title": "Page Not Found"})
}

func (s *server) pageServerError(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusInternalServerError, "500.html", M{"Title": "Something Went Wrong"})
}
