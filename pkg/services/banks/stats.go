package banks

import "math"

// tradingDaysPerYear scales daily return deviation to an annual figure.
const tradingDaysPerYear = 252

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stddev is the sample standard deviation.
func stddev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// annualizedVolatility derives the volatility percentage from a close series.
func annualizedVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return stddev(returns) * math.Sqrt(tradingDaysPerYear) * 100
}

// tailMean averages the last window values, or all of them when the series
// is shorter than the window.
func tailMean(vals []float64, window int) float64 {
	if len(vals) == 0 {
		return 0
	}
	if len(vals) > window {
		vals = vals[len(vals)-window:]
	}
	return mean(vals)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
