package fincalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	got, err := EMI(1_000_000, 9, 120)
	require.NoError(t, err)
	assert.InDelta(t, 12667.58, got.MonthlyPayment, 0.01)
	assert.InDelta(t, 1520109.29, got.TotalPayment, 0.5)
	assert.InDelta(t, 520109.29, got.TotalInterest, 0.5)
}

func TestEMIZeroRate(t *testing.T) {
	got, err := EMI(120000, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got.MonthlyPayment)
	assert.Equal(t, 120000.0, got.TotalPayment)
	assert.Equal(t, 0.0, got.TotalInterest)
}

func TestEMIBadInput(t *testing.T) {
	_, err := EMI(0, 9, 120)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	_, err = EMI(1000, -1, 120)
	assert.ErrorIs(t, err, ErrNegativeRate)
	_, err = EMI(1000, 9, 0)
	assert.ErrorIs(t, err, ErrNonPositiveTerm)
}

func TestCompound(t *testing.T) {
	yearly, err := Compound(100000, 8, 10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 215892.50, yearly.Amount, 0.01)
	assert.InDelta(t, 115892.50, yearly.Interest, 0.01)

	quarterly, err := Compound(100000, 8, 10, 4)
	require.NoError(t, err)
	assert.InDelta(t, 220803.97, quarterly.Amount, 0.01)

	_, err = Compound(100000, 8, 10, 0)
	assert.ErrorIs(t, err, ErrNonPositiveTerm)
}

func TestBudgetSplit(t *testing.T) {
	got, err := BudgetSplit(50000, map[string]float64{
		"rent": 15000, "groceries": 8000, "transport": 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, 26000.0, got.TotalExpenses)
	assert.Equal(t, 24000.0, got.Remaining)
	assert.Equal(t, 48.0, got.SavingsRate)
}

func TestBudgetSplitOverspent(t *testing.T) {
	got, err := BudgetSplit(10000, map[string]float64{"rent": 12000})
	require.NoError(t, err)
	assert.Equal(t, -2000.0, got.Remaining)
	assert.Equal(t, -20.0, got.SavingsRate)
}

func TestRetirement(t *testing.T) {
	got, err := Retirement(500000, 10000, 12, 20)
	require.NoError(t, err)
	assert.InDelta(t, 15338830.48, got.Corpus, 1)
	assert.Equal(t, 2900000.0, got.TotalInvested)
	assert.InDelta(t, 12438830.48, got.Growth, 1)
}

func TestRetirementZeroRate(t *testing.T) {
	got, err := Retirement(0, 1000, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 24000.0, got.Corpus)
	assert.Equal(t, 0.0, got.Growth)
}
