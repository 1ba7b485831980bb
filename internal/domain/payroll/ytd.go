package payroll

import "paycalc/internal/platform/money"

// YtdDelta is one period's contribution to the running year-to-date totals.
type YtdDelta struct {
	Earnings              []EarningLine
	EmployeeTaxes         []TaxLine
	EmployerTaxes         []TaxLine
	Deductions            []DeductionLine
	EmployerContributions []EmployerContributionLine
	Bases                 map[TaxBasis]int64
	Currency              string
}

// Accumulate folds delta into a fresh snapshot; prior is left untouched.
// Zero amounts are skipped so that a zero-amount period is a no-op.
func Accumulate(prior YtdSnapshot, delta YtdDelta) YtdSnapshot {
	next := YtdSnapshot{
		Year:                        prior.Year,
		EarningsByCode:              copyTotals(prior.EarningsByCode),
		EmployeeTaxesByRuleID:       copyTotals(prior.EmployeeTaxesByRuleID),
		EmployerTaxesByRuleID:       copyTotals(prior.EmployerTaxesByRuleID),
		DeductionsByCode:            copyTotals(prior.DeductionsByCode),
		WagesByBasis:                copyTotals(prior.WagesByBasis),
		EmployerContributionsByCode: copyTotals(prior.EmployerContributionsByCode),
	}
	for _, l := range delta.Earnings {
		next.EarningsByCode = addTotal(next.EarningsByCode, l.Code, l.Amount)
	}
	for _, l := range delta.EmployeeTaxes {
		next.EmployeeTaxesByRuleID = addTotal(next.EmployeeTaxesByRuleID, l.RuleID, l.Amount)
	}
	for _, l := range delta.EmployerTaxes {
		next.EmployerTaxesByRuleID = addTotal(next.EmployerTaxesByRuleID, l.RuleID, l.Amount)
	}
	for _, l := range delta.Deductions {
		next.DeductionsByCode = addTotal(next.DeductionsByCode, l.Code, l.Amount)
	}
	for _, l := range delta.EmployerContributions {
		next.EmployerContributionsByCode = addTotal(next.EmployerContributionsByCode, l.Code, l.Amount)
	}
	for _, basis := range AllTaxBases {
		next.WagesByBasis = addTotal(next.WagesByBasis, basis, money.New(delta.Bases[basis], delta.Currency))
	}
	return next
}

func copyTotals[K comparable](in map[K]money.Money) map[K]money.Money {
	if in == nil {
		return nil
	}
	out := make(map[K]money.Money, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func addTotal[K comparable](totals map[K]money.Money, key K, amount money.Money) map[K]money.Money {
	if amount.Amount == 0 {
		return totals
	}
	if totals == nil {
		totals = make(map[K]money.Money)
	}
	prev, ok := totals[key]
	if !ok {
		totals[key] = amount
		return totals
	}
	totals[key] = prev.Plus(amount.Amount)
	return totals
}
