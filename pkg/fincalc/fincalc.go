// Package fincalc holds the calculator arithmetic behind the financial
// tools page: loan EMI, compound interest, budget split and retirement
// projection.
package fincalc

import (
	"errors"
	"math"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrNegativeRate      = errors.New("rate must not be negative")
	ErrNonPositiveTerm   = errors.New("term must be positive")
)

// EMIResult is an amortized loan summary.
type EMIResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// EMI computes the equated monthly installment for a loan at a yearly
// percentage rate over the given number of months.
func EMI(principal, annualRate float64, months int) (EMIResult, error) {
	if principal <= 0 {
		return EMIResult{}, ErrNonPositiveAmount
	}
	if annualRate < 0 {
		return EMIResult{}, ErrNegativeRate
	}
	if months <= 0 {
		return EMIResult{}, ErrNonPositiveTerm
	}

	var emi float64
	if annualRate == 0 {
		emi = principal / float64(months)
	} else {
		r := annualRate / 12 / 100
		f := math.Pow(1+r, float64(months))
		emi = principal * r * f / (f - 1)
	}
	total := emi * float64(months)
	return EMIResult{
		MonthlyPayment: round2(emi),
		TotalPayment:   round2(total),
		TotalInterest:  round2(total - principal),
	}, nil
}

// CompoundResult is a compound interest projection.
type CompoundResult struct {
	Principal float64 `json:"principal"`
	Amount    float64 `json:"amount"`
	Interest  float64 `json:"interest"`
}

// Compound grows principal at a yearly percentage rate, compounded the
// given number of times per year.
func Compound(principal, annualRate, years float64, compoundsPerYear int) (CompoundResult, error) {
	if principal <= 0 {
		return CompoundResult{}, ErrNonPositiveAmount
	}
	if annualRate < 0 {
		return CompoundResult{}, ErrNegativeRate
	}
	if years <= 0 || compoundsPerYear <= 0 {
		return CompoundResult{}, ErrNonPositiveTerm
	}

	n := float64(compoundsPerYear)
	amount := principal * math.Pow(1+annualRate/100/n, n*years)
	return CompoundResult{
		Principal: round2(principal),
		Amount:    round2(amount),
		Interest:  round2(amount - principal),
	}, nil
}

// BudgetResult splits income against a set of monthly expenses.
type BudgetResult struct {
	Income        float64            `json:"income"`
	TotalExpenses float64            `json:"total_expenses"`
	Remaining     float64            `json:"remaining"`
	SavingsRate   float64            `json:"savings_rate"`
	Expenses      map[string]float64 `json:"expenses"`
}

// BudgetSplit totals the expenses and reports what is left of income.
// Remaining may go negative when the budget overspends.
func BudgetSplit(income float64, expenses map[string]float64) (BudgetResult, error) {
	if income <= 0 {
		return BudgetResult{}, ErrNonPositiveAmount
	}
	total := 0.0
	for _, v := range expenses {
		total += v
	}
	remaining := income - total
	return BudgetResult{
		Income:        round2(income),
		TotalExpenses: round2(total),
		Remaining:     round2(remaining),
		SavingsRate:   round2(remaining / income * 100),
		Expenses:      expenses,
	}, nil
}

// RetirementResult is a monthly-contribution retirement projection.
type RetirementResult struct {
	Corpus        float64 `json:"corpus"`
	TotalInvested float64 `json:"total_invested"`
	Growth        float64 `json:"growth"`
}

// Retirement projects a corpus from current savings plus a monthly
// contribution, both growing at a yearly percentage rate.
func Retirement(current, monthly, annualRate float64, years int) (RetirementResult, error) {
	if current < 0 || monthly < 0 {
		return RetirementResult{}, ErrNegativeAmount
	}
	if annualRate < 0 {
		return RetirementResult{}, ErrNegativeRate
	}
	if years <= 0 {
		return RetirementResult{}, ErrNonPositiveTerm
	}

	months := float64(years * 12)
	invested := current + monthly*months

	var corpus float64
	if annualRate == 0 {
		corpus = invested
	} else {
		i := annualRate / 12 / 100
		f := math.Pow(1+i, months)
		corpus = current*f + monthly*(f-1)/i
	}
	return RetirementResult{
		Corpus:        round2(corpus),
		TotalInvested: round2(invested),
		Growth:        round2(corpus - invested),
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
