package planner

// WeekSaving is one step of the 52-week challenge.
type WeekSaving struct {
	Week       int `json:"week"`
	Amount     int `json:"amount"`
	Cumulative int `json:"cumulative"`
}

// Challenge is a savings game sized to the user's income.
type Challenge struct {
	ID               string       `json:"challenge_id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	TotalSavings     float64      `json:"total_savings,omitempty"`
	PotentialSavings float64      `json:"potential_savings,omitempty"`
	Duration         string       `json:"duration"`
	WeeklyBreakdown  []WeekSaving `json:"weekly_breakdown,omitempty"`
	Rules            []string     `json:"rules,omitempty"`
	HowItWorks       []string     `json:"how_it_works,omitempty"`
	Difficulty       string       `json:"difficulty"`
	SuitableFor      string       `json:"suitable_for"`
}

// Challenges returns the savings challenges, with the income-based
// ones sized to the given monthly income.
func Challenges(income float64) []Challenge {
	return []Challenge{
		{
			ID:              "52_week",
			Name:            "52-Week Savings Challenge",
			Description:     "Save ₹1 in week 1, ₹2 in week 2, and so on",
			TotalSavings:    1378,
			Duration:        "52 weeks",
			WeeklyBreakdown: weekBreakdown(),
			Difficulty:      "Easy",
			SuitableFor:     "Beginners",
		},
		{
			ID:               "no_spend",
			Name:             "30-Day No-Spend Challenge",
			Description:      "Avoid non-essential spending for 30 days",
			PotentialSavings: round2(income * 0.25),
			Duration:         "30 days",
			Rules: []string{
				"Only spend on essential items",
				"No dining out or entertainment",
				"No impulse purchases",
				"Track all spending",
			},
			Difficulty:  "Hard",
			SuitableFor: "Advanced",
		},
		{
			ID:               "round_up",
			Name:             "Round-Up Challenge",
			Description:      "Round up all purchases to nearest ₹10 and save the difference",
			PotentialSavings: round2(income * 0.05),
			Duration:         "Ongoing",
			HowItWorks: []string{
				"Purchase: ₹247 → Save ₹3",
				"Purchase: ₹1,156 → Save ₹4",
				"Automate with banking apps",
			},
			Difficulty:  "Easy",
			SuitableFor: "Everyone",
		},
	}
}

func weekBreakdown() []WeekSaving {
	out := make([]WeekSaving, 0, 52)
	total := 0
	for week := 1; week <= 52; week++ {
		total += week
		out = append(out, WeekSaving{Week: week, Amount: week, Cumulative: total})
	}
	return out
}
