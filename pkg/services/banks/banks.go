// Package banks scores the health of the large Indian banks from their
// market behavior: price trend, volatility, valuation and trading volume.
package banks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ghost2804/finhub/pkg/models/market"
	"github.com/ghost2804/finhub/pkg/services/quotes"
)

// ErrUnknownBank marks a bank name outside the tracked set.
var ErrUnknownBank = errors.New("banks: unknown bank")

// IndianBanks maps the tracked banks to their NSE symbols.
var IndianBanks = map[string]string{
	"HDFC Bank":            "HDFCBANK.NSE",
	"ICICI Bank":           "ICICIBANK.NSE",
	"State Bank of India":  "SBIN.NSE",
	"Kotak Mahindra Bank":  "KOTAKBANK.NSE",
	"Axis Bank":            "AXISBANK.NSE",
	"Bank of Baroda":       "BANKBARODA.NSE",
	"Punjab National Bank": "PNB.NSE",
	"Canara Bank":          "CANBK.NSE",
	"Union Bank":           "UNIONBANK.NSE",
	"IDBI Bank":            "IDBI.NSE",
}

// MarketData is what the analyzer needs from the quote feed.
type MarketData interface {
	History(ctx context.Context, symbol string, days int) ([]market.Candle, error)
	Fundamentals(ctx context.Context, symbol string) (quotes.Fundamentals, error)
}

// StockData is one bank's market profile over the trailing year.
type StockData struct {
	BankName       string  `json:"bank_name"`
	Symbol         string  `json:"symbol"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	Volatility     float64 `json:"volatility"`
	MA20           float64 `json:"ma_20"`
	MA50           float64 `json:"ma_50"`
	MarketCap      float64 `json:"market_cap"`
	Volume         int64   `json:"volume"`
	AvgVolume      int64   `json:"avg_volume"`
	High52W        float64 `json:"high_52w"`
	Low52W         float64 `json:"low_52w"`
	PERatio        float64 `json:"pe_ratio"`
	PBRatio        float64 `json:"pb_ratio"`
	DividendYield  float64 `json:"dividend_yield"`
}

// HealthAnalysis is the scored assessment derived from StockData.
type HealthAnalysis struct {
	HealthScore    float64  `json:"health_score"`
	MaxScore       float64  `json:"max_score"`
	Status         string   `json:"status"`
	StatusColor    string   `json:"status_color"`
	Analysis       []string `json:"analysis"`
	Recommendation string   `json:"recommendation"`
}

// BankReport bundles the raw data with its analysis.
type BankReport struct {
	StockData      StockData      `json:"stock_data"`
	HealthAnalysis HealthAnalysis `json:"health_analysis"`
}

// SectorOverview aggregates every tracked bank.
type SectorOverview struct {
	Banks              map[string]BankReport `json:"sector_overview"`
	AverageSectorScore float64               `json:"average_sector_score"`
	SectorSentiment    string                `json:"sector_sentiment"`
	SentimentColor     string                `json:"sentiment_color"`
	TotalBanksAnalyzed int                   `json:"total_banks_analyzed"`
	AnalysisDate       string                `json:"analysis_date"`
}

// Warning is one early stress indicator for the sector.
type Warning struct {
	Level          string `json:"level"`
	Indicator      string `json:"indicator"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// WarningReport is the early-warning view over the sector.
type WarningReport struct {
	Warnings          []Warning `json:"warnings"`
	SectorHealthScore float64   `json:"sector_health_score"`
	AnalysisDate      string    `json:"analysis_date"`
}

// Analyzer computes bank health from market data.
type Analyzer struct {
	src MarketData
}

// NewAnalyzer returns an Analyzer over src.
func NewAnalyzer(src MarketData) *Analyzer {
	return &Analyzer{src: src}
}

// Names lists the tracked banks in stable order.
func Names() []string {
	names := make([]string, 0, len(IndianBanks))
	for name := range IndianBanks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BankData fetches one bank's trailing-year profile.
func (a *Analyzer) BankData(ctx context.Context, bankName string) (StockData, error) {
	symbol, ok := IndianBanks[bankName]
	if !ok {
		return StockData{}, fmt.Errorf("%w: %s", ErrUnknownBank, bankName)
	}

	candles, err := a.src.History(ctx, symbol, 365)
	if err != nil {
		return StockData{}, err
	}
	if len(candles) < 2 {
		return StockData{}, fmt.Errorf("banks: no data for %s", bankName)
	}

	closes := make([]float64, 0, len(candles))
	volumes := make([]float64, 0, len(candles))
	high52, low52 := math.Inf(-1), math.Inf(1)
	for _, c := range candles {
		closes = append(closes, c.Close)
		volumes = append(volumes, float64(c.Volume))
		if c.High > high52 {
			high52 = c.High
		}
		if c.Low < low52 {
			low52 = c.Low
		}
	}

	current := closes[len(closes)-1]
	previous := closes[len(closes)-2]
	change := current - previous
	changePct := 0.0
	if previous != 0 {
		changePct = change / previous * 100
	}

	data := StockData{
		BankName:       bankName,
		Symbol:         symbol,
		CurrentPrice:   round2(current),
		PriceChange:    round2(change),
		PriceChangePct: round2(changePct),
		Volatility:     round2(annualizedVolatility(closes)),
		MA20:           round2(tailMean(closes, 20)),
		MA50:           round2(tailMean(closes, 50)),
		Volume:         candles[len(candles)-1].Volume,
		AvgVolume:      int64(tailMean(volumes, 20)),
		High52W:        high52,
		Low52W:         low52,
	}

	fund, err := a.src.Fundamentals(ctx, symbol)
	if err != nil {
		// the market profile is still usable without valuation figures
		logger().Infow("fetch fundamentals fail", "bank", bankName, "err", err)
		return data, nil
	}
	data.MarketCap = fund.Highlights.MarketCapitalization
	data.PERatio = fund.Highlights.PERatio
	data.PBRatio = fund.Valuation.PriceBookMRQ
	data.DividendYield = round2(fund.Highlights.DividendYield * 100)

	return data, nil
}

// HealthScore grades a bank on price trend, volatility, moving averages,
// valuation, dividend, volume and market position, 100 points total.
func (a *Analyzer) HealthScore(data StockData) HealthAnalysis {
	var score float64
	var analysis []string

	// price performance, 20 points
	if data.PriceChangePct > 0 {
		score += math.Min(20, math.Abs(data.PriceChangePct)*2)
		analysis = append(analysis, fmt.Sprintf("✅ Positive price performance: %.2f%%", data.PriceChangePct))
	} else {
		analysis = append(analysis, fmt.Sprintf("⚠️ Negative price performance: %.2f%%", data.PriceChangePct))
	}

	// volatility, 15 points
	switch {
	case data.Volatility < 20:
		score += 15
		analysis = append(analysis, fmt.Sprintf("✅ Low volatility: %.2f%%", data.Volatility))
	case data.Volatility < 30:
		score += 10
		analysis = append(analysis, fmt.Sprintf("⚠️ Moderate volatility: %.2f%%", data.Volatility))
	default:
		analysis = append(analysis, fmt.Sprintf("❌ High volatility: %.2f%%", data.Volatility))
	}

	// moving averages, 15 points
	switch {
	case data.CurrentPrice > data.MA20 && data.MA20 > data.MA50:
		score += 15
		analysis = append(analysis, "✅ Strong uptrend: Price above both moving averages")
	case data.CurrentPrice > data.MA20:
		score += 10
		analysis = append(analysis, "⚠️ Moderate trend: Price above 20-day MA")
	default:
		analysis = append(analysis, "❌ Downtrend: Price below moving averages")
	}

	// valuation, 20 points
	if data.PERatio > 0 {
		switch {
		case data.PERatio >= 10 && data.PERatio <= 20:
			score += 10
			analysis = append(analysis, fmt.Sprintf("✅ Reasonable P/E ratio: %.2f", data.PERatio))
		case data.PERatio < 10:
			score += 15
			analysis = append(analysis, fmt.Sprintf("✅ Undervalued P/E ratio: %.2f", data.PERatio))
		default:
			analysis = append(analysis, fmt.Sprintf("⚠️ High P/E ratio: %.2f", data.PERatio))
		}
	}
	if data.PBRatio > 0 {
		if data.PBRatio <= 2 {
			score += 10
			analysis = append(analysis, fmt.Sprintf("✅ Good P/B ratio: %.2f", data.PBRatio))
		} else {
			analysis = append(analysis, fmt.Sprintf("⚠️ High P/B ratio: %.2f", data.PBRatio))
		}
	}

	// dividend, 10 points
	switch {
	case data.DividendYield > 3:
		score += 10
		analysis = append(analysis, fmt.Sprintf("✅ High dividend yield: %.2f%%", data.DividendYield))
	case data.DividendYield > 1:
		score += 5
		analysis = append(analysis, fmt.Sprintf("⚠️ Moderate dividend yield: %.2f%%", data.DividendYield))
	default:
		analysis = append(analysis, fmt.Sprintf("❌ Low dividend yield: %.2f%%", data.DividendYield))
	}

	// volume, 10 points
	switch {
	case float64(data.Volume) > float64(data.AvgVolume)*1.5:
		score += 10
		analysis = append(analysis, "✅ High trading volume indicates strong interest")
	case data.Volume > data.AvgVolume:
		score += 5
		analysis = append(analysis, "⚠️ Above average trading volume")
	default:
		analysis = append(analysis, "❌ Below average trading volume")
	}

	// market position, 10 points
	switch {
	case data.MarketCap > 100_000_000_000:
		score += 10
		analysis = append(analysis, "✅ Large-cap bank with strong market position")
	case data.MarketCap > 10_000_000_000:
		score += 5
		analysis = append(analysis, "⚠️ Mid-cap bank")
	default:
		analysis = append(analysis, "❌ Small-cap bank")
	}

	status, color := statusOf(score)
	return HealthAnalysis{
		HealthScore:    score,
		MaxScore:       100,
		Status:         status,
		StatusColor:    color,
		Analysis:       analysis,
		Recommendation: recommendationOf(score),
	}
}

func statusOf(score float64) (string, string) {
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

func recommendationOf(score float64) string {
	switch {
	case score >= 80:
		return "Strong Buy - Excellent financial health and performance"
	case score >= 60:
		return "Buy - Good fundamentals with potential for growth"
	case score >= 40:
		return "Hold - Monitor closely, consider reducing exposure"
	default:
		return "Sell - Poor performance, consider alternatives"
	}
}

// SectorOverview scores every tracked bank and aggregates the sector view.
func (a *Analyzer) SectorOverview(ctx context.Context) (SectorOverview, error) {
	reports := make(map[string]BankReport, len(IndianBanks))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, 4)

	for _, name := range Names() {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := a.BankData(ctx, name)
			if err != nil {
				logger().Warnw("bank data fail", "bank", name, "err", err)
				return
			}
			report := BankReport{StockData: data, HealthAnalysis: a.HealthScore(data)}
			mu.Lock()
			reports[name] = report
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	if len(reports) == 0 {
		return SectorOverview{}, errors.New("banks: unable to fetch banking sector data")
	}

	var total float64
	for _, r := range reports {
		total += r.HealthAnalysis.HealthScore
	}
	avg := round2(total / float64(len(reports)))

	sentiment, color := sentimentOf(avg)
	return SectorOverview{
		Banks:              reports,
		AverageSectorScore: avg,
		SectorSentiment:    sentiment,
		SentimentColor:     color,
		TotalBanksAnalyzed: len(reports),
		AnalysisDate:       time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

func sentimentOf(avg float64) (string, string) {
	switch {
	case avg >= 70:
		return "Bullish", "green"
	case avg >= 50:
		return "Neutral", "blue"
	default:
		return "Bearish", "red"
	}
}

// EarlyWarnings derives sector stress indicators from the overview.
func (a *Analyzer) EarlyWarnings(ctx context.Context) (WarningReport, error) {
	overview, err := a.SectorOverview(ctx)
	if err != nil {
		return WarningReport{}, err
	}
	return warningsFrom(overview), nil
}

func warningsFrom(overview SectorOverview) WarningReport {
	warnings := []Warning{}

	if overview.AverageSectorScore < 50 {
		warnings = append(warnings, Warning{
			Level:     "High",
			Indicator: "Low Sector Health Score",
			Description: fmt.Sprintf("Sector average health score is %v, indicating potential stress",
				overview.AverageSectorScore),
			Recommendation: "Monitor closely, consider defensive positions",
		})
	}

	poor := 0
	for _, r := range overview.Banks {
		if r.HealthAnalysis.HealthScore < 40 {
			poor++
		}
	}
	if float64(poor) > float64(len(overview.Banks))*0.3 {
		warnings = append(warnings, Warning{
			Level:     "Medium",
			Indicator: "Multiple Banks Under Stress",
			Description: fmt.Sprintf("%d out of %d banks show poor health",
				poor, len(overview.Banks)),
			Recommendation: "Diversify across sectors, avoid concentrated banking exposure",
		})
	}

	return WarningReport{
		Warnings:          warnings,
		SectorHealthScore: overview.AverageSectorScore,
		AnalysisDate:      time.Now().Format("2006-01-02 15:04:05"),
	}
}
