package payroll

import "github.com/shopspring/decimal"

// OvertimePolicy decides the multiplier applied to the base hourly rate for
// overtime hours.
type OvertimePolicy interface {
	Multiplier(employee EmployeeSnapshot, def *EarningDefinition) decimal.Decimal
}

// DefaultOvertimePolicy uses the configured OT multiplier, else 1.5.
type DefaultOvertimePolicy struct{}

func (DefaultOvertimePolicy) Multiplier(_ EmployeeSnapshot, def *EarningDefinition) decimal.Decimal {
	if def != nil && def.OvertimeMultiplier != nil && def.OvertimeMultiplier.IsPositive() {
		return *def.OvertimeMultiplier
	}
	return decimal.RequireFromString(defaultOvertimeMultiplier)
}
