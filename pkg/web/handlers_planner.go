package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/marcsv/go-binder/binder"

	"github.com/ghost2804/finhub/pkg/fincalc"
	"github.com/ghost2804/finhub/pkg/services/planner"
)

func (s *server) postCreateBudget(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := binder.BindBody(r, &raw); err != nil || len(raw) == 0 {
		apiFail(w, r, 400, "No data provided")
		return
	}

	plan, err := planner.CreateBudget(planner.ParseInput(raw))
	if err != nil {
		if errors.Is(err, planner.ErrInvalidIncome) {
			apiFail(w, r, 400, "Invalid monthly income")
			return
		}
		logger().Infow("create budget fail", "err", err)
		apiFail(w, r, 500, "Failed to create budget plan")
		return
	}
	render.JSON(w, r, plan)
}

func (s *server) getSavingsTips(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")
	render.JSON(w, r, M{"tips": planner.SavingsTips(profile)})
}

type calcRequest struct {
	Principal float64            `json:"principal"`
	Rate      float64            `json:"rate"`
	Months    int                `json:"months"`
	Years     float64            `json:"years"`
	Frequency int                `json:"frequency"`
	Income    float64            `json:"income"`
	Expenses  map[string]float64 `json:"expenses"`
	Current   float64            `json:"current"`
	Monthly   float64            `json:"monthly"`
}

func (s *server) postCalc(w http.ResponseWriter, r *http.Request) {
	var param calcRequest
	if err := binder.BindBody(r, &param); err != nil {
		apiFail(w, r, 400, err)
		return
	}

	var res any
	var err error
	switch tool := chi.URLParam(r, "tool"); tool {
	case "emi":
		res, err = fincalc.EMI(param.Principal, param.Rate, param.Months)
	case "compound":
		freq := param.Frequency
		if freq <= 0 {
			freq = 1
		}
		res, err = fincalc.Compound(param.Principal, param.Rate, param.Years, freq)
	case "budget":
		res, err = fincalc.BudgetSplit(param.Income, param.Expenses)
	case "retirement":
		res, err = fincalc.Retirement(param.Current, param.Monthly, param.Rate, int(param.Years))
	default:
		apiFail(w, r, 404, "unknown calculator: "+tool)
		return
	}
	if err != nil {
		apiFail(w, r, 400, err)
		return
	}
	apiOk(w, r, res)
}
