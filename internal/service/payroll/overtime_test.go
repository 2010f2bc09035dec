package payroll

import (
	"testing"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBandHours(t *testing.T) {
	threshold := decimal.NewFromInt(8)
	capacity := decimal.NewFromInt(4)

	tests := []struct {
		name    string
		total   string
		regular string
		tier1   string
		tier2   string
	}{
		{"under threshold", "6", "6", "0", "0"},
		{"exactly threshold", "8", "8", "0", "0"},
		{"two hours into tier 1", "10", "8", "2", "0"},
		{"tier 1 full", "12", "8", "4", "0"},
		{"spills into tier 2", "14", "8", "4", "2"},
		{"fractional hours", "8.5", "8", "0.5", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := BandHours(decimal.RequireFromString(tt.total), threshold, capacity)
			assert.Equal(t, tt.regular, bands.Regular.String())
			assert.Equal(t, tt.tier1, bands.Tier1.String())
			assert.Equal(t, tt.tier2, bands.Tier2.String())
			assert.Equal(t, tt.total, bands.Total().String())
		})
	}
}

func TestBandDay(t *testing.T) {
	t.Run("daily policy bands the day", func(t *testing.T) {
		bands := BandDay(decimal.NewFromInt(10), shiftrule.Default())
		assert.Equal(t, "8", bands.Regular.String())
		assert.Equal(t, "2", bands.Tier1.String())
	})

	t.Run("weekly policy leaves the day regular", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.OvertimePolicy = shiftrule.OvertimePolicyWeekly
		bands := BandDay(decimal.NewFromInt(12), rules)
		assert.Equal(t, "12", bands.Regular.String())
		assert.True(t, bands.Tier1.IsZero())
		assert.True(t, bands.Tier2.IsZero())
	})
}

func TestBandWeek(t *testing.T) {
	bands := BandWeek(decimal.NewFromInt(48), shiftrule.Default())
	assert.Equal(t, "40", bands.Regular.String())
	assert.Equal(t, "4", bands.Tier1.String())
	assert.Equal(t, "4", bands.Tier2.String())
}
