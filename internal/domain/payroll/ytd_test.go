package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paycalc/internal/platform/money"
)

func TestAccumulateAddsAndCopies(t *testing.T) {
	prior := YtdSnapshot{
		Year:             2025,
		EarningsByCode:   map[EarningCode]money.Money{EarningCodeHourly: cents(1_000_00)},
		DeductionsByCode: map[DeductionCode]money.Money{"401K": cents(50_00)},
		WagesByBasis:     map[TaxBasis]money.Money{BasisSocialSecurityWages: cents(1_000_00)},
	}
	delta := YtdDelta{
		Earnings:      []EarningLine{{Code: EarningCodeHourly, Amount: cents(800_00)}, {Code: "BONUS", Amount: cents(100_00)}},
		EmployeeTaxes: []TaxLine{{RuleID: "FED", Amount: cents(90_00)}},
		EmployerTaxes: []TaxLine{{RuleID: "ER_SS", Amount: cents(55_80)}},
		Deductions:    []DeductionLine{{Code: "401K", Amount: cents(45_00)}},
		EmployerContributions: []EmployerContributionLine{
			{Code: "401K", Amount: cents(27_00)},
		},
		Bases:    map[TaxBasis]int64{BasisSocialSecurityWages: 900_00, BasisGross: 900_00},
		Currency: money.DefaultCurrency,
	}

	next := Accumulate(prior, delta)

	assert.Equal(t, 2025, next.Year)
	assert.Equal(t, int64(1_800_00), next.EarningsByCode[EarningCodeHourly].Amount)
	assert.Equal(t, int64(100_00), next.EarningsByCode["BONUS"].Amount)
	assert.Equal(t, int64(90_00), next.EmployeeTaxesByRuleID["FED"].Amount)
	assert.Equal(t, int64(55_80), next.EmployerTaxesByRuleID["ER_SS"].Amount)
	assert.Equal(t, int64(95_00), next.DeductionsByCode["401K"].Amount)
	assert.Equal(t, int64(27_00), next.EmployerContributionsByCode["401K"].Amount)
	assert.Equal(t, int64(1_900_00), next.WagesByBasis[BasisSocialSecurityWages].Amount)
	assert.Equal(t, int64(900_00), next.WagesByBasis[BasisGross].Amount)
	_, ok := next.WagesByBasis[BasisFutaWages]
	assert.False(t, ok)

	assert.Equal(t, int64(1_000_00), prior.EarningsByCode[EarningCodeHourly].Amount)
	assert.Equal(t, int64(50_00), prior.DeductionsByCode["401K"].Amount)
	assert.Len(t, prior.EarningsByCode, 1)
}

func TestAccumulateZeroDeltaIsIdentity(t *testing.T) {
	prior := YtdSnapshot{
		Year:           2025,
		EarningsByCode: map[EarningCode]money.Money{EarningCodeHourly: cents(1_000_00)},
	}
	next := Accumulate(prior, YtdDelta{
		Earnings: []EarningLine{{Code: EarningCodeHourly, Amount: cents(0)}},
		Currency: money.DefaultCurrency,
	})
	assert.Equal(t, prior, next)

	empty := Accumulate(YtdSnapshot{Year: 2025}, YtdDelta{})
	assert.Equal(t, YtdSnapshot{Year: 2025}, empty)
}

func TestAccumulateIsAdditive(t *testing.T) {
	a := YtdDelta{Earnings: []EarningLine{{Code: EarningCodeHourly, Amount: cents(300)}}, Bases: map[TaxBasis]int64{BasisGross: 300}}
	b := YtdDelta{Earnings: []EarningLine{{Code: EarningCodeHourly, Amount: cents(700)}}, Bases: map[TaxBasis]int64{BasisGross: 700}}

	stepwise := Accumulate(Accumulate(YtdSnapshot{Year: 2025}, a), b)
	combined := Accumulate(YtdSnapshot{Year: 2025}, YtdDelta{
		Earnings: append(append([]EarningLine{}, a.Earnings...), b.Earnings...),
		Bases:    map[TaxBasis]int64{BasisGross: 1_000},
	})
	require.Equal(t, combined.EarningsByCode, stepwise.EarningsByCode)
	assert.Equal(t, combined.WagesByBasis, stepwise.WagesByBasis)
}
