package banks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghost2804/finhub/pkg/models/market"
	"github.com/ghost2804/finhub/pkg/services/quotes"
)

type stubSource struct {
	candles []market.Candle
	fund    quotes.Fundamentals
	fundErr error
	histErr error
}

func (s stubSource) History(_ context.Context, _ string, _ int) ([]market.Candle, error) {
	return s.candles, s.histErr
}

func (s stubSource) Fundamentals(_ context.Context, _ string) (quotes.Fundamentals, error) {
	return s.fund, s.fundErr
}

func testCandles() []market.Candle {
	return []market.Candle{
		{Date: "2026-08-18", High: 105, Low: 98, Close: 100, Volume: 10},
		{Date: "2026-08-19", High: 106, Low: 99, Close: 102, Volume: 20},
		{Date: "2026-08-20", High: 104, Low: 97, Close: 101, Volume: 30},
		{Date: "2026-08-21", High: 107, Low: 100, Close: 104, Volume: 40},
	}
}

func TestBankData(t *testing.T) {
	src := stubSource{candles: testCandles()}
	src.fund.Highlights.MarketCapitalization = 1.5e11
	src.fund.Highlights.PERatio = 18.5
	src.fund.Highlights.DividendYield = 0.012
	src.fund.Valuation.PriceBookMRQ = 2.8

	a := NewAnalyzer(src)
	data, err := a.BankData(context.Background(), "HDFC Bank")
	require.NoError(t, err)

	assert.Equal(t, "HDFC Bank", data.BankName)
	assert.Equal(t, "HDFCBANK.NSE", data.Symbol)
	assert.Equal(t, 104.0, data.CurrentPrice)
	assert.Equal(t, 3.0, data.PriceChange)
	assert.Equal(t, 2.97, data.PriceChangePct)
	assert.Equal(t, 101.75, data.MA20)
	assert.Equal(t, 101.75, data.MA50)
	assert.Equal(t, 107.0, data.High52W)
	assert.Equal(t, 97.0, data.Low52W)
	assert.Equal(t, int64(40), data.Volume)
	assert.Equal(t, int64(25), data.AvgVolume)
	assert.Greater(t, data.Volatility, 0.0)

	assert.Equal(t, 1.5e11, data.MarketCap)
	assert.Equal(t, 18.5, data.PERatio)
	assert.Equal(t, 2.8, data.PBRatio)
	assert.Equal(t, 1.2, data.DividendYield)
}

func TestBankDataUnknown(t *testing.T) {
	a := NewAnalyzer(stubSource{candles: testCandles()})
	_, err := a.BankData(context.Background(), "No Such Bank")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBank)
}

func TestBankDataWithoutFundamentals(t *testing.T) {
	src := stubSource{candles: testCandles(), fundErr: errors.New("upstream down")}
	a := NewAnalyzer(src)
	data, err := a.BankData(context.Background(), "ICICI Bank")
	require.NoError(t, err, "valuation figures are optional")
	assert.Zero(t, data.PERatio)
	assert.Equal(t, 104.0, data.CurrentPrice)
}

func TestHealthScore(t *testing.T) {
	a := NewAnalyzer(stubSource{})

	tests := []struct {
		name   string
		data   StockData
		score  float64
		status string
		color  string
	}{
		{
			name: "excellent",
			data: StockData{
				PriceChangePct: 12, Volatility: 15,
				CurrentPrice: 110, MA20: 105, MA50: 100,
				PERatio: 12, PBRatio: 1.5, DividendYield: 4,
				Volume: 200, AvgVolume: 100, MarketCap: 2e11,
			},
			score: 100, status: "Excellent", color: "green",
		},
		{
			name: "poor",
			data: StockData{
				PriceChangePct: -5, Volatility: 35,
				CurrentPrice: 90, MA20: 95, MA50: 100,
				PERatio: 25, PBRatio: 3, DividendYield: 0.5,
				Volume: 50, AvgVolume: 100, MarketCap: 5e9,
			},
			score: 0, status: "Poor", color: "red",
		},
		{
			name: "fair",
			data: StockData{
				PriceChangePct: 3.5, Volatility: 25,
				CurrentPrice: 102, MA20: 101, MA50: 103,
				DividendYield: 2,
				Volume:        120, AvgVolume: 100, MarketCap: 5e10,
			},
			score: 42, status: "Fair", color: "orange",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := a.HealthScore(tc.data)
			assert.Equal(t, tc.score, got.HealthScore)
			assert.Equal(t, tc.status, got.Status)
			assert.Equal(t, tc.color, got.StatusColor)
			assert.Equal(t, float64(100), got.MaxScore)
			assert.NotEmpty(t, got.Analysis)
			assert.NotEmpty(t, got.Recommendation)
		})
	}
}

func TestSectorOverview(t *testing.T) {
	src := stubSource{candles: testCandles()}
	src.fund.Highlights.MarketCapitalization = 2e11
	src.fund.Highlights.PERatio = 12
	src.fund.Highlights.DividendYield = 0.04
	src.fund.Valuation.PriceBookMRQ = 1.5

	a := NewAnalyzer(src)
	overview, err := a.SectorOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(IndianBanks), overview.TotalBanksAnalyzed)
	assert.Len(t, overview.Banks, len(IndianBanks))
	assert.Greater(t, overview.AverageSectorScore, 0.0)
	assert.NotEmpty(t, overview.SectorSentiment)
	assert.NotEmpty(t, overview.AnalysisDate)
}

func TestSectorOverviewAllFail(t *testing.T) {
	a := NewAnalyzer(stubSource{histErr: errors.New("feed down")})
	_, err := a.SectorOverview(context.Background())
	require.Error(t, err)
}

func TestWarnings(t *testing.T) {
	poor := BankReport{HealthAnalysis: HealthAnalysis{HealthScore: 20}}
	ok := BankReport{HealthAnalysis: HealthAnalysis{HealthScore: 70}}

	report := warningsFrom(SectorOverview{
		Banks:              map[string]BankReport{"A": poor, "B": poor, "C": ok},
		AverageSectorScore: 36.67,
	})
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, "High", report.Warnings[0].Level)
	assert.Equal(t, "Medium", report.Warnings[1].Level)

	report = warningsFrom(SectorOverview{
		Banks:              map[string]BankReport{"A": ok, "B": ok, "C": ok},
		AverageSectorScore: 70,
	})
	assert.Empty(t, report.Warnings)
}
