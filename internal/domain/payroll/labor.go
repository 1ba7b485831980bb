package payroll

import "paycalc/internal/platform/money"

// LaborStandardsContext is the minimum-wage catalog entry resolved for the
// employee's work location as of the check date.
type LaborStandardsContext struct {
	FederalMinimumWage money.Money  `json:"federalMinimumWage"`
	StateMinimumWage   *money.Money `json:"stateMinimumWage,omitempty"`
	TippedCashMinimum  *money.Money `json:"tippedCashMinimum,omitempty"`
}

// effectiveMinimumWage is the higher of the federal and state minimums.
func (l LaborStandardsContext) effectiveMinimumWage() money.Money {
	if l.StateMinimumWage != nil && l.StateMinimumWage.Amount > l.FederalMinimumWage.Amount {
		return *l.StateMinimumWage
	}
	return l.FederalMinimumWage
}
