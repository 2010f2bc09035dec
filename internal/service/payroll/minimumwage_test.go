package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckMinimumWage(t *testing.T) {
	minimum := decimal.RequireFromString("23.15")

	t.Run("compliant", func(t *testing.T) {
		check := CheckMinimumWage(decimal.NewFromInt(2000), decimal.NewFromInt(80), decimal.NewFromInt(25), minimum)
		assert.True(t, check.Compliant)
		assert.Equal(t, "25", check.EffectiveRate.String())
	})

	t.Run("effective rate under the floor", func(t *testing.T) {
		check := CheckMinimumWage(decimal.NewFromInt(1600), decimal.NewFromInt(80), decimal.NewFromInt(20), minimum)
		assert.False(t, check.Compliant)
		assert.Equal(t, "20", check.EffectiveRate.String())
		assert.Equal(t, "23.15", check.RequiredRate.String())
	})

	t.Run("no hours falls back to the profile rate", func(t *testing.T) {
		check := CheckMinimumWage(decimal.NewFromInt(3200), decimal.Zero, decimal.NewFromInt(40), minimum)
		assert.True(t, check.Compliant)
		assert.Equal(t, "40", check.EffectiveRate.String())
	})
}
