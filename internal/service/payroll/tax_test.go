package payroll

import (
	"testing"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTax(t *testing.T) {
	st := fixtures.NZStatutory()

	t.Run("primary code walks progressive brackets", func(t *testing.T) {
		// 2307.69 fortnightly annualizes to 59999.94: the first two
		// brackets in full plus 11999.94 at 30%.
		gross := decimal.RequireFromString("2307.69")
		result, err := CalculateTax(gross, "M", FrequencyFortnightly, st)
		require.NoError(t, err)
		assert.Equal(t, "423.85", result.TaxAmount.String())
		assert.Equal(t, "59999.94", result.AnnualizedPay.String())
		assert.False(t, result.Secondary)
	})

	t.Run("low income stays in the bottom bracket", func(t *testing.T) {
		// 500 weekly = 26000 annual: 14000 at 10.5% + 12000 at 17.5%
		// = 3570, so 68.65 per week.
		result, err := CalculateTax(decimal.NewFromInt(500), "M", FrequencyWeekly, st)
		require.NoError(t, err)
		assert.Equal(t, "68.65", result.TaxAmount.String())
	})

	t.Run("top bracket is unbounded", func(t *testing.T) {
		// 20000 monthly = 240000 annual; 60000 of it sits above 180000
		// at 39%.
		result, err := CalculateTax(decimal.NewFromInt(20000), "M", FrequencyMonthly, st)
		require.NoError(t, err)
		// 1470 + 5950 + 6600 + 36300 + 23400 = 73720 annual
		assert.Equal(t, "6143.33", result.TaxAmount.String())
	})

	t.Run("secondary codes apply a flat rate", func(t *testing.T) {
		result, err := CalculateTax(decimal.NewFromInt(1000), "ST", FrequencyFortnightly, st)
		require.NoError(t, err)
		assert.True(t, result.Secondary)
		assert.Equal(t, "330", result.TaxAmount.String())
		assert.Equal(t, "0.33", result.EffectiveRate.String())
	})

	t.Run("unknown tax code", func(t *testing.T) {
		_, err := CalculateTax(decimal.NewFromInt(1000), "ZZ", FrequencyFortnightly, st)
		require.ErrorIs(t, err, payroll.ErrUnknownTaxCode)
		assert.Contains(t, err.Error(), "ZZ")
	})

	t.Run("zero gross pays zero tax", func(t *testing.T) {
		result, err := CalculateTax(decimal.Zero, "M", FrequencyFortnightly, st)
		require.NoError(t, err)
		assert.True(t, result.TaxAmount.IsZero())
	})
}

func TestPayFrequencyPeriodsPerYear(t *testing.T) {
	assert.Equal(t, "52", FrequencyWeekly.PeriodsPerYear().String())
	assert.Equal(t, "26", FrequencyFortnightly.PeriodsPerYear().String())
	assert.Equal(t, "12", FrequencyMonthly.PeriodsPerYear().String())
}
