package payroll

import (
	"fmt"
	"strings"

	"paycalc/internal/platform/money"
)

// Validate checks that the input is fully resolved and internally consistent.
func (in PaycheckInput) Validate() error {
	if strings.TrimSpace(string(in.PaycheckID)) == "" {
		return fmt.Errorf("%w: paycheckId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(string(in.EmployerID)) == "" {
		return fmt.Errorf("%w: employerId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(string(in.EmployeeID)) == "" {
		return fmt.Errorf("%w: employeeId is required", ErrInvalidInput)
	}
	if in.Employee.EmployeeID != "" && in.Employee.EmployeeID != in.EmployeeID {
		return fmt.Errorf("%w: snapshot employee %s does not match %s", ErrInvalidInput, in.Employee.EmployeeID, in.EmployeeID)
	}
	if in.Period.CheckDate.IsZero() {
		return fmt.Errorf("%w: period checkDate is required", ErrInvalidInput)
	}
	if in.Period.EndDate.Before(in.Period.StartDate) {
		return fmt.Errorf("%w: period ends before it starts", ErrInvalidInput)
	}
	if in.TimeSlice.RegularHours < 0 || in.TimeSlice.OvertimeHours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
	}

	cur := in.currency()
	switch base := in.Employee.BaseCompensation.(type) {
	case Salaried:
		if base.AnnualSalary.IsNegative() {
			return fmt.Errorf("%w: negative annual salary", ErrInvalidInput)
		}
	case Hourly:
		if base.HourlyRate.IsNegative() {
			return fmt.Errorf("%w: negative hourly rate", ErrInvalidInput)
		}
	case nil:
		return fmt.Errorf("%w: base compensation is required", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCompensation, base)
	}

	amounts := []*money.Money{in.Employee.AdditionalWithholdingPerPeriod}
	for _, e := range in.TimeSlice.OtherEarnings {
		if strings.TrimSpace(string(e.Code)) == "" {
			return fmt.Errorf("%w: earning code is required", ErrInvalidInput)
		}
		amounts = append(amounts, e.Rate, e.Amount)
	}
	for i := range in.EmployerContributions {
		amounts = append(amounts, &in.EmployerContributions[i].Amount)
	}
	if err := sameCurrency(cur, amounts...); err != nil {
		return err
	}

	if in.PaySchedule != nil {
		if err := in.PaySchedule.Validate(); err != nil {
			return err
		}
	}
	for _, group := range [][]TaxRule{in.TaxContext.Federal, in.TaxContext.State, in.TaxContext.Local, in.TaxContext.EmployerSpecific} {
		for _, rule := range group {
			if err := ValidateTaxRule(rule); err != nil {
				return err
			}
		}
	}
	for _, order := range in.Garnishments.Orders {
		if err := order.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func sameCurrency(currency string, amounts ...*money.Money) error {
	for _, m := range amounts {
		if m == nil || m.Currency == "" {
			continue
		}
		if m.Currency != currency {
			return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, currency)
		}
	}
	return nil
}
