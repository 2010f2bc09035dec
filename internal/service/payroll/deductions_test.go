package payroll

import (
	"testing"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateKiwiSaver(t *testing.T) {
	st := fixtures.NZStatutory()
	gross := decimal.NewFromInt(2000)

	t.Run("enrolled employee", func(t *testing.T) {
		result := CalculateKiwiSaver(gross, true, decimal.NewFromInt(3), st)
		assert.Equal(t, "60", result.EmployeeContribution.String())
		assert.Equal(t, "60", result.EmployerContribution.String())
	})

	t.Run("higher elected rate", func(t *testing.T) {
		// Employer stays at the statutory 3% regardless of election.
		result := CalculateKiwiSaver(gross, true, decimal.NewFromInt(8), st)
		assert.Equal(t, "160", result.EmployeeContribution.String())
		assert.Equal(t, "60", result.EmployerContribution.String())
	})

	t.Run("not enrolled", func(t *testing.T) {
		result := CalculateKiwiSaver(gross, false, decimal.NewFromInt(3), st)
		assert.True(t, result.EmployeeContribution.IsZero())
		assert.True(t, result.EmployerContribution.IsZero())
	})
}

func TestCalculateACCLevy(t *testing.T) {
	st := fixtures.NZStatutory()

	t.Run("below cap", func(t *testing.T) {
		result := CalculateACCLevy(decimal.NewFromInt(2000), decimal.Zero, st)
		assert.Equal(t, "32", result.Levy.String())
		assert.Equal(t, "140283", result.RemainingCap.String())
	})

	t.Run("straddling the cap levies only the headroom", func(t *testing.T) {
		result := CalculateACCLevy(decimal.NewFromInt(1000), decimal.NewFromInt(142000), st)
		assert.Equal(t, "283", result.LeviableEarnings.String())
		assert.Equal(t, "4.53", result.Levy.String())
		assert.True(t, result.RemainingCap.IsZero())
	})

	t.Run("past the cap levies nothing", func(t *testing.T) {
		result := CalculateACCLevy(decimal.NewFromInt(5000), decimal.NewFromInt(150000), st)
		assert.True(t, result.Levy.IsZero())
		assert.True(t, result.RemainingCap.IsZero())
	})
}
