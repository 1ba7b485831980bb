package payroll

import "paycalc/internal/platform/money"

// Bases holds the per-basis amounts for one paycheck and the components
// each was derived from.
type Bases struct {
	Amounts    map[TaxBasis]int64
	Components map[TaxBasis]map[string]int64
}

func (b Bases) amount(basis TaxBasis) int64 {
	return b.Amounts[basis]
}

var basisEffects = []struct {
	basis  TaxBasis
	effect DeductionEffect
	key    string
}{
	{BasisFederalTaxable, ReducesFederalTaxable, "lessFederalTaxableDeductions"},
	{BasisStateTaxable, ReducesStateTaxable, "lessStateTaxableDeductions"},
	{BasisSocialSecurityWages, ReducesSocialSecurityWages, "lessFicaDeductions"},
	{BasisMedicareWages, ReducesMedicareWages, "lessMedicareDeductions"},
}

// buildBases derives every basis from earnings and the deduction lines. Any
// line whose plan declares a reduction effect reduces that basis. A pre-tax
// line whose plan is unknown reduces FederalTaxable only.
func buildBases(earnings []EarningLine, preTax, postTax []DeductionLine, plans map[DeductionCode]DeductionPlan) Bases {
	gross := sumEarnings(earnings)
	supplemental := sumCategory(earnings, CategoryBonus, CategorySupplemental)

	b := Bases{
		Amounts:    make(map[TaxBasis]int64, len(AllTaxBases)),
		Components: make(map[TaxBasis]map[string]int64, len(AllTaxBases)),
	}
	b.Amounts[BasisGross] = gross
	b.Components[BasisGross] = map[string]int64{
		"gross":        gross,
		"supplemental": supplemental,
		"holiday":      sumCategory(earnings, CategoryHoliday),
		"imputed":      sumCategory(earnings, CategoryImputed),
	}

	for _, be := range basisEffects {
		var reduction int64
		for _, line := range preTax {
			plan, ok := plans[line.Code]
			if !ok {
				if be.effect == ReducesFederalTaxable {
					reduction += line.Amount.Amount
				}
				continue
			}
			if hasEffect(plan.Effects(), be.effect) {
				reduction += line.Amount.Amount
			}
		}
		for _, line := range postTax {
			if plan, ok := plans[line.Code]; ok && hasEffect(plan.Effects(), be.effect) {
				reduction += line.Amount.Amount
			}
		}
		b.Amounts[be.basis] = money.Max(0, gross-reduction)
		b.Components[be.basis] = map[string]int64{"gross": gross, be.key: reduction}
	}

	b.Amounts[BasisSupplementalWages] = supplemental
	b.Components[BasisSupplementalWages] = map[string]int64{"supplemental": supplemental}
	b.Amounts[BasisFutaWages] = gross
	b.Components[BasisFutaWages] = map[string]int64{"gross": gross}
	return b
}

func (b Bases) trace(trace *CalculationTrace, currency string) {
	for _, basis := range AllTaxBases {
		trace.add(BasisComputed{
			Basis:      basis,
			Components: b.Components[basis],
			Result:     money.New(b.Amounts[basis], currency),
		})
	}
}
