package fixtures

import "github.com/shopspring/decimal"

// TaxBracket is one step of the progressive PAYE table. UpTo is the upper
// bound of annual income the bracket covers; a zero UpTo marks the final,
// unbounded bracket.
type TaxBracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Statutory bundles the statutory rates a tenant runs payroll under. It is
// passed explicitly into the calculation engines so tests and future tax
// years can swap the whole table at once.
type Statutory struct {
	TaxBrackets           []TaxBracket
	SecondaryFlatRates    map[string]decimal.Decimal
	PrimaryTaxCodes       []string
	KiwiSaverEmployerRate decimal.Decimal
	ACCLevyRate           decimal.Decimal
	ACCEarningsCap        decimal.Decimal
	AdultMinimumWage      decimal.Decimal
	// AnnualWorkHours converts a salaried employee's stored hourly rate to
	// its annual equivalent (40h x 52w). Used everywhere a salary is
	// annualized or de-annualized.
	AnnualWorkHours decimal.Decimal
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic("fixtures: bad decimal literal " + s)
	}
	return v
}

// NZStatutory returns the New Zealand PAYE brackets, secondary flat rates,
// KiwiSaver employer rate, ACC earner levy and adult minimum wage for the
// 2024-25 tax year.
func NZStatutory() Statutory {
	return Statutory{
		TaxBrackets: []TaxBracket{
			{UpTo: d("14000"), Rate: d("0.105")},
			{UpTo: d("48000"), Rate: d("0.175")},
			{UpTo: d("70000"), Rate: d("0.30")},
			{UpTo: d("180000"), Rate: d("0.33")},
			{Rate: d("0.39")},
		},
		SecondaryFlatRates: map[string]decimal.Decimal{
			"SB": d("0.105"),
			"S":  d("0.175"),
			"SH": d("0.30"),
			"ST": d("0.33"),
			"SA": d("0.39"),
		},
		PrimaryTaxCodes:       []string{"M", "ME", "M SL", "ME SL"},
		KiwiSaverEmployerRate: d("0.03"),
		ACCLevyRate:           d("0.016"),
		ACCEarningsCap:        d("142283"),
		AdultMinimumWage:      d("23.15"),
		AnnualWorkHours:       d("2080"),
	}
}
