package planner

import "fmt"

// HealthScore grades a profile on income, savings, debt, goals and
// emergency cover, out of 100.
type HealthScore struct {
	Score          int      `json:"score"`
	MaxScore       int      `json:"max_score"`
	Status         string   `json:"status"`
	StatusColor    string   `json:"status_color"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// HealthCheck scores the profile's overall financial health.
func HealthCheck(in BudgetInput) HealthScore {
	score := 0
	factors := []string{}

	income := in.MonthlyIncome

	// income level, 20 points
	switch {
	case income > 50000:
		score += 20
		factors = append(factors, "✅ High income level")
	case income > 30000:
		score += 15
		factors = append(factors, "✅ Good income level")
	case income > 15000:
		score += 10
		factors = append(factors, "⚠️ Moderate income level")
	default:
		factors = append(factors, "❌ Low income level")
	}

	// savings rate, 25 points
	rate := 0.0
	if income > 0 {
		rate = in.CurrentExpenses["savings"] / income * 100
	}
	switch {
	case rate >= 20:
		score += 25
		factors = append(factors, fmt.Sprintf("✅ Excellent savings rate: %.1f%%", rate))
	case rate >= 15:
		score += 20
		factors = append(factors, fmt.Sprintf("✅ Good savings rate: %.1f%%", rate))
	case rate >= 10:
		score += 15
		factors = append(factors, fmt.Sprintf("⚠️ Moderate savings rate: %.1f%%", rate))
	default:
		factors = append(factors, fmt.Sprintf("❌ Low savings rate: %.1f%%", rate))
	}

	// debt load, 20 points
	debtRatio := 0.0
	if income > 0 {
		debtRatio = in.CurrentExpenses["debt_payments"] / income * 100
	}
	switch {
	case debtRatio <= 10:
		score += 20
		factors = append(factors, fmt.Sprintf("✅ Excellent debt management: %.1f%%", debtRatio))
	case debtRatio <= 20:
		score += 15
		factors = append(factors, fmt.Sprintf("✅ Good debt management: %.1f%%", debtRatio))
	case debtRatio <= 30:
		score += 10
		factors = append(factors, fmt.Sprintf("⚠️ Moderate debt load: %.1f%%", debtRatio))
	default:
		factors = append(factors, fmt.Sprintf("❌ High debt load: %.1f%%", debtRatio))
	}

	// goals set, 20 points
	switch {
	case len(in.FinancialGoals) >= 3:
		score += 20
		factors = append(factors, "✅ Multiple financial goals set")
	case len(in.FinancialGoals) >= 1:
		score += 15
		factors = append(factors, "✅ Some financial goals set")
	default:
		factors = append(factors, "❌ No financial goals identified")
	}

	// emergency cover in months of income, 15 points
	months := 0.0
	if income > 0 {
		months = in.CurrentExpenses["emergency_fund"] / income
	}
	switch {
	case months >= 6:
		score += 15
		factors = append(factors, fmt.Sprintf("✅ Strong emergency fund: %.1f months", months))
	case months >= 3:
		score += 10
		factors = append(factors, fmt.Sprintf("✅ Adequate emergency fund: %.1f months", months))
	default:
		factors = append(factors, fmt.Sprintf("❌ Insufficient emergency fund: %.1f months", months))
	}

	status, color := healthStatusOf(score)
	return HealthScore{
		Score:          score,
		MaxScore:       100,
		Status:         status,
		StatusColor:    color,
		Factors:        factors,
		Recommendation: healthRecommendationOf(score),
	}
}

func healthStatusOf(score int) (string, string) {
	switch {
	case score >= 80:
		return "Excellent", "green"
	case score >= 60:
		return "Good", "blue"
	case score >= 40:
		return "Fair", "orange"
	default:
		return "Poor", "red"
	}
}

func healthRecommendationOf(score int) string {
	switch {
	case score >= 80:
		return "Excellent financial health! Focus on wealth building and advanced strategies."
	case score >= 60:
		return "Good financial health. Continue building emergency fund and increasing savings."
	case score >= 40:
		return "Fair financial health. Prioritize debt reduction and emergency fund building."
	default:
		return "Poor financial health. Focus on basic budgeting and debt management first."
	}
}
