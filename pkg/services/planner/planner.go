// Package planner builds personalized budget plans: allocation by risk
// profile and age, savings challenges, and a financial health score.
package planner

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var ErrInvalidIncome = errors.New("invalid monthly income")

var hundred = decimal.NewFromInt(100)

// BudgetInput carries the profile a plan is built from.
type BudgetInput struct {
	MonthlyIncome   float64            `json:"monthly_income"`
	CurrentExpenses map[string]float64 `json:"current_expenses"`
	FinancialGoals  []string           `json:"financial_goals"`
	RiskTolerance   string             `json:"risk_tolerance"`
	Age             int                `json:"age"`
}

// ParseInput coerces a loosely typed request body into a BudgetInput.
// Form posts may deliver numbers as strings.
func ParseInput(raw map[string]any) BudgetInput {
	in := BudgetInput{
		MonthlyIncome:   cast.ToFloat64(raw["monthly_income"]),
		FinancialGoals:  cast.ToStringSlice(raw["financial_goals"]),
		RiskTolerance:   cast.ToString(raw["risk_tolerance"]),
		Age:             cast.ToInt(raw["age"]),
		CurrentExpenses: map[string]float64{},
	}
	if in.RiskTolerance == "" {
		in.RiskTolerance = "moderate"
	}
	if in.Age == 0 {
		in.Age = 30
	}
	for k, v := range cast.ToStringMap(raw["current_expenses"]) {
		in.CurrentExpenses[k] = cast.ToFloat64(v)
	}
	return in
}

// Allocation is one budget category with its sub-category breakdown.
type Allocation struct {
	Amount     float64            `json:"amount"`
	Percentage float64            `json:"percentage"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// Recommendation is a personalized piece of financial advice.
type Recommendation struct {
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	Recommendation string   `json:"recommendation"`
	ActionItems    []string `json:"action_items"`
}

// Plan is a complete personalized budget.
type Plan struct {
	Budget          map[string]Allocation `json:"budget_plan"`
	Recommendations []Recommendation      `json:"recommendations"`
	Challenges      []Challenge           `json:"savings_challenges"`
	Health          HealthScore           `json:"financial_health_score"`
	CreatedDate     string                `json:"created_date"`
}

// CreateBudget builds a plan for the given profile.
func CreateBudget(in BudgetInput) (*Plan, error) {
	if in.MonthlyIncome <= 0 {
		return nil, ErrInvalidIncome
	}
	logger().Infow("create budget", "income", in.MonthlyIncome, "risk", in.RiskTolerance, "age", in.Age)
	return &Plan{
		Budget:          allocate(in),
		Recommendations: recommend(in),
		Challenges:      Challenges(in.MonthlyIncome),
		Health:          HealthCheck(in),
		CreatedDate:     time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

// allocate splits income across the three top-level categories.
// Conservative profiles reserve more for essentials, under-30s more
// for goals, and discretionary takes the remainder.
func allocate(in BudgetInput) map[string]Allocation {
	income := decimal.NewFromFloat(in.MonthlyIncome)

	essentialPct := int64(50)
	if in.RiskTolerance == "conservative" {
		essentialPct = 55
	}
	essential := income.Mul(decimal.NewFromInt(essentialPct)).Div(hundred)

	goalsPct := int64(20)
	if in.Age < 30 {
		goalsPct = 25
	}
	goals := income.Mul(decimal.NewFromInt(goalsPct)).Div(hundred)

	disc := income.Sub(essential).Sub(goals)
	discPct := decimal.Zero
	if !income.IsZero() {
		discPct = disc.Div(income).Mul(hundred)
	}

	return map[string]Allocation{
		"essential_expenses": {
			Amount:     round2dec(essential),
			Percentage: float64(essentialPct),
			Breakdown: map[string]float64{
				"housing":   share(essential, 0.55),
				"utilities": share(essential, 0.18),
				"groceries": share(essential, 0.27),
			},
		},
		"financial_goals": {
			Amount:     round2dec(goals),
			Percentage: float64(goalsPct),
			Breakdown: map[string]float64{
				"emergency_fund": share(goals, 0.4),
				"savings":        share(goals, 0.3),
				"investments":    share(goals, 0.3),
			},
		},
		"discretionary": {
			Amount:     round2dec(disc),
			Percentage: round2dec(discPct),
			Breakdown: map[string]float64{
				"entertainment": share(disc, 0.33),
				"dining_out":    share(disc, 0.27),
				"shopping":      share(disc, 0.23),
				"hobbies":       share(disc, 0.17),
			},
		},
	}
}

func recommend(in BudgetInput) []Recommendation {
	income := in.MonthlyIncome

	recs := []Recommendation{{
		Category:       "Emergency Fund",
		Priority:       "High",
		Recommendation: fmt.Sprintf("Build an emergency fund of %s (6 months of income)", formatINR(income*6)),
		ActionItems: []string{
			"Set up automatic monthly transfers",
			"Keep in high-yield savings account",
			"Only use for true emergencies",
		},
	}}

	if in.CurrentExpenses["debt_payments"] > income*0.2 {
		recs = append(recs, Recommendation{
			Category:       "Debt Management",
			Priority:       "High",
			Recommendation: "Focus on paying off high-interest debt first",
			ActionItems: []string{
				"List all debts by interest rate",
				"Pay minimum on all, extra on highest rate",
				"Consider debt consolidation if beneficial",
			},
		})
	}

	if in.Age < 40 {
		recs = append(recs, Recommendation{
			Category:       "Investments",
			Priority:       "Medium",
			Recommendation: "Start investing early for compound growth",
			ActionItems: []string{
				"Consider SIP in mutual funds",
				"Diversify across asset classes",
				"Start with index funds for beginners",
			},
		})
	}

	rate := 0.0
	if income > 0 {
		rate = in.CurrentExpenses["savings"] / income * 100
	}
	if rate < 20 {
		recs = append(recs, Recommendation{
			Category:       "Savings",
			Priority:       "Medium",
			Recommendation: fmt.Sprintf("Increase savings rate from %.1f%% to 20%%", rate),
			ActionItems: []string{
				"Review discretionary spending",
				"Look for ways to reduce fixed expenses",
				"Automate savings transfers",
			},
		})
	}

	recs = append(recs, Recommendation{
		Category:       "Insurance",
		Priority:       "Medium",
		Recommendation: "Ensure adequate insurance coverage",
		ActionItems: []string{
			"Health insurance: ₹5-10 lakhs coverage",
			"Term life insurance: 10x annual income",
			"Consider disability insurance",
		},
	})

	return recs
}

func formatINR(v float64) string {
	return money.New(int64(math.Round(v*100)), money.INR).Display()
}

func share(base decimal.Decimal, frac float64) float64 {
	return base.Mul(decimal.NewFromFloat(frac)).Round(2).InexactFloat64()
}

func round2dec(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
