package payroll

import (
	"fmt"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyFortnightly PayFrequency = "fortnightly"
	FrequencyMonthly     PayFrequency = "monthly"
)

// PeriodsPerYear is the annualization factor for the frequency.
func (f PayFrequency) PeriodsPerYear() decimal.Decimal {
	switch f {
	case FrequencyWeekly:
		return decimal.NewFromInt(52)
	case FrequencyMonthly:
		return decimal.NewFromInt(12)
	default:
		return decimal.NewFromInt(26)
	}
}

type TaxResult struct {
	TaxCode       string
	GrossPay      decimal.Decimal
	AnnualizedPay decimal.Decimal
	TaxAmount     decimal.Decimal
	EffectiveRate decimal.Decimal
	Secondary     bool
}

// CalculateTax computes PAYE for one pay period. Primary codes annualize
// the gross, walk the progressive bracket table and de-annualize by the
// same factor. Secondary codes apply the flat rate selected by code.
func CalculateTax(gross decimal.Decimal, taxCode string, freq PayFrequency, st fixtures.Statutory) (TaxResult, error) {
	result := TaxResult{TaxCode: taxCode, GrossPay: gross}

	if flatRate, ok := st.SecondaryFlatRates[taxCode]; ok {
		result.Secondary = true
		result.TaxAmount = gross.Mul(flatRate).Round(2)
		result.EffectiveRate = flatRate
		return result, nil
	}

	if !validator.IsInSlice(taxCode, st.PrimaryTaxCodes) {
		return TaxResult{}, fmt.Errorf("%w: %q", payroll.ErrUnknownTaxCode, taxCode)
	}

	periods := freq.PeriodsPerYear()
	annual := gross.Mul(periods)
	annualTax := taxOnAnnual(annual, st.TaxBrackets)

	result.AnnualizedPay = annual
	result.TaxAmount = annualTax.Div(periods).Round(2)
	if gross.IsPositive() {
		result.EffectiveRate = result.TaxAmount.Div(gross).Round(4)
	}
	return result, nil
}

// taxOnAnnual walks the ordered bracket table, taxing min(remaining,
// bracket width) at each marginal rate until the full amount is
// allocated. A bracket with zero UpTo is unbounded.
func taxOnAnnual(annual decimal.Decimal, brackets []fixtures.TaxBracket) decimal.Decimal {
	tax := decimal.Zero
	remaining := annual
	lower := decimal.Zero

	for _, b := range brackets {
		if !remaining.IsPositive() {
			break
		}
		portion := remaining
		if !b.UpTo.IsZero() {
			width := b.UpTo.Sub(lower)
			portion = decimal.Min(remaining, width)
			lower = b.UpTo
		}
		tax = tax.Add(portion.Mul(b.Rate))
		remaining = remaining.Sub(portion)
	}

	return tax
}
