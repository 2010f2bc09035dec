package payroll

import (
	"testing"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateInterval(t *testing.T) {
	rate := decimal.NewFromInt(20)

	t.Run("weekday with daily overtime", func(t *testing.T) {
		// 10h day: 8 regular + 2 at time-and-a-half.
		pay := RateInterval(RateInput{
			Date:       day("2025-03-03"), // Monday
			StartClock: "08:00",
			EndClock:   "18:00",
			Bands:      BandDay(decimal.NewFromInt(10), shiftrule.Default()),
			HourlyRate: rate,
			Rules:      shiftrule.Default(),
		})
		assert.Equal(t, "220", pay.RatedPay.String())
		assert.Equal(t, MultiplierBase, pay.MultiplierSource)
		assert.Equal(t, "200", pay.BasePay.String())
	})

	t.Run("saturday multiplier applies to regular hours only when higher", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.SaturdayMultiplier = decimal.RequireFromString("1.25")
		// (8 x 1.25 + 2 x max(1.25, 1.5)) x 20 = 13 x 20
		pay := RateInterval(RateInput{
			Date:       day("2025-03-08"), // Saturday
			StartClock: "08:00",
			EndClock:   "18:00",
			Bands:      BandDay(decimal.NewFromInt(10), rules),
			HourlyRate: rate,
			Rules:      rules,
		})
		assert.Equal(t, MultiplierSaturday, pay.MultiplierSource)
		assert.Equal(t, "260", pay.RatedPay.String())
	})

	t.Run("overtime multiplier is never stacked on the day multiplier", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.SundayMultiplier = decimal.NewFromInt(2)
		// Tier 1 pays max(2, 1.5) = 2, not 2 x 1.5.
		pay := RateInterval(RateInput{
			Date:       day("2025-03-09"), // Sunday
			StartClock: "08:00",
			EndClock:   "18:00",
			Bands:      BandDay(decimal.NewFromInt(10), rules),
			HourlyRate: rate,
			Rules:      rules,
		})
		assert.Equal(t, "400", pay.RatedPay.String())
	})

	t.Run("holiday beats weekend multiplier", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.SaturdayMultiplier = decimal.NewFromInt(2)
		pay := RateInterval(RateInput{
			Date:            day("2025-03-08"),
			StartClock:      "09:00",
			EndClock:        "17:00",
			Bands:           OvertimeBands{Regular: decimal.NewFromInt(8)},
			HourlyRate:      rate,
			Rules:           rules,
			IsPublicHoliday: true,
		})
		assert.Equal(t, MultiplierPublicHoliday, pay.MultiplierSource)
	})

	t.Run("night window detection", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.NightMultiplier = decimal.RequireFromString("1.15")

		nightPay := RateInterval(RateInput{
			Date:       day("2025-03-03"),
			StartClock: "22:00",
			EndClock:   "06:00",
			Bands:      OvertimeBands{Regular: decimal.NewFromInt(8)},
			HourlyRate: rate,
			Rules:      rules,
		})
		assert.Equal(t, MultiplierNight, nightPay.MultiplierSource)

		dayPay := RateInterval(RateInput{
			Date:       day("2025-03-03"),
			StartClock: "09:00",
			EndClock:   "17:00",
			Bands:      OvertimeBands{Regular: decimal.NewFromInt(8)},
			HourlyRate: rate,
			Rules:      rules,
		})
		assert.Equal(t, MultiplierBase, dayPay.MultiplierSource)
	})

	t.Run("allowance gates", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.NightMultiplier = decimal.RequireFromString("1.15")
		rules.Allowances = []shiftrule.Allowance{
			{Name: "meal", Amount: decimal.NewFromInt(15), MinimumHours: decimal.NewFromInt(6)},
			{Name: "night", Amount: decimal.NewFromInt(20), NightOnly: true},
		}

		shortDay := RateInterval(RateInput{
			Date:       day("2025-03-03"),
			StartClock: "09:00",
			EndClock:   "13:00",
			Bands:      OvertimeBands{Regular: decimal.NewFromInt(4)},
			HourlyRate: rate,
			Rules:      rules,
		})
		assert.True(t, shortDay.AllowanceTotal.IsZero())

		longNight := RateInterval(RateInput{
			Date:       day("2025-03-03"),
			StartClock: "22:00",
			EndClock:   "06:00",
			Bands:      OvertimeBands{Regular: decimal.NewFromInt(8)},
			HourlyRate: rate,
			Rules:      rules,
		})
		assert.Equal(t, "35", longNight.AllowanceTotal.String())
		assert.Equal(t, longNight.RatedPay.Add(longNight.AllowanceTotal).String(), longNight.Total.String())
	})
}
