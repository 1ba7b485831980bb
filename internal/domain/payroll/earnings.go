package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"paycalc/internal/platform/money"
)

// EarningDefinition is the employer's configuration for one earning code.
type EarningDefinition struct {
	Code               EarningCode      `json:"code"`
	DisplayName        string           `json:"displayName"`
	Category           EarningCategory  `json:"category"`
	DefaultRate        *money.Money     `json:"defaultRate,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtimeMultiplier,omitempty"`
}

// EarningConfigRepository resolves earning definitions for an employer.
type EarningConfigRepository interface {
	FindEarningDefinition(employerID EmployerID, code EarningCode) (EarningDefinition, bool)
}

// NoEarningConfig knows no codes; every earning falls back to built-in defaults.
type NoEarningConfig struct{}

func (NoEarningConfig) FindEarningDefinition(EmployerID, EarningCode) (EarningDefinition, bool) {
	return EarningDefinition{}, false
}

type StaticEarningConfig map[EmployerID]map[EarningCode]EarningDefinition

func (s StaticEarningConfig) FindEarningDefinition(employerID EmployerID, code EarningCode) (EarningDefinition, bool) {
	def, ok := s[employerID][code]
	return def, ok
}

func hoursDecimal(h float64) decimal.Decimal {
	return decimal.NewFromFloat(h)
}

// baseEarnings produces the salary or hourly lines for the period.
func (e *Engine) baseEarnings(in PaycheckInput, trace *CalculationTrace) ([]EarningLine, error) {
	if in.TimeSlice.SuppressBaseEarnings {
		return nil, nil
	}
	cur := in.currency()

	switch base := in.Employee.BaseCompensation.(type) {
	case Salaried:
		schedule := scheduleFor(in, base)
		full := schedule.Allocate(base.AnnualSalary.Amount, in.Period.SequenceInYear)

		proration := in.TimeSlice.Proration
		explicit := proration != nil
		if !explicit {
			proration = e.proration.Compute(in.Period, in.Employee.HireDate, in.Employee.TerminationDate)
		}
		applied := full
		fraction := 1.0
		if proration != nil {
			applied = proration.Apply(full)
			fraction = proration.Fraction()
		}
		trace.add(ProrationApplied{
			Strategy:         e.proration.Name(),
			ExplicitOverride: explicit,
			Fraction:         fraction,
			FullCents:        full,
			AppliedCents:     applied,
		})
		if applied == 0 {
			return nil, nil
		}
		rate := money.New(full, cur)
		return []EarningLine{e.earningLine(in.EmployerID, EarningCodeBase, CategoryRegular, "Salary", 1, &rate, money.New(applied, cur))}, nil

	case Hourly:
		var lines []EarningLine
		rate := base.HourlyRate
		if h := in.TimeSlice.RegularHours; h > 0 {
			amount := rate.MulTrunc(hoursDecimal(h))
			lines = append(lines, e.earningLine(in.EmployerID, EarningCodeHourly, CategoryRegular, "Hourly wages", h, &rate, amount))
		}
		if h := in.TimeSlice.OvertimeHours; h > 0 {
			def, ok := e.earningConfig.FindEarningDefinition(in.EmployerID, EarningCodeOvertime)
			var defPtr *EarningDefinition
			if ok {
				defPtr = &def
			}
			multiplier := e.overtime.Multiplier(in.Employee, defPtr)
			otRate := rate.MulTrunc(multiplier)
			amount := rate.MulTrunc(hoursDecimal(h).Mul(multiplier))
			lines = append(lines, e.earningLine(in.EmployerID, EarningCodeOvertime, CategoryOvertime, "Overtime", h, &otRate, amount))
		}
		return lines, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCompensation, base)
	}
}

// otherEarnings merges ad hoc inputs with configured defaults. An explicit
// amount wins and derives the rate; otherwise rate × units, falling back to
// the configured default rate.
func (e *Engine) otherEarnings(in PaycheckInput) []EarningLine {
	cur := in.currency()
	lines := make([]EarningLine, 0, len(in.TimeSlice.OtherEarnings))
	for _, input := range in.TimeSlice.OtherEarnings {
		def, ok := e.earningConfig.FindEarningDefinition(in.EmployerID, input.Code)
		units := hoursDecimal(input.Units)

		var rate *money.Money
		amount := money.Zero(cur)
		switch {
		case input.Amount != nil:
			amount = *input.Amount
			if input.Rate != nil {
				rate = input.Rate
			} else if input.Units > 0 {
				r := money.New(money.MulDivTrunc(amount.Amount, decimal.NewFromInt(1), units), cur)
				rate = &r
			}
		case input.Rate != nil:
			rate = input.Rate
			amount = input.Rate.MulTrunc(units)
		case ok && def.DefaultRate != nil:
			rate = def.DefaultRate
			amount = def.DefaultRate.MulTrunc(units)
		}

		category := CategoryBonus
		description := string(input.Code)
		if ok {
			if def.Category != "" {
				category = def.Category
			}
			if def.DisplayName != "" {
				description = def.DisplayName
			}
		}
		lines = append(lines, EarningLine{
			Code:        input.Code,
			Category:    category,
			Description: description,
			Units:       input.Units,
			Rate:        rate,
			Amount:      amount,
		})
	}
	return lines
}

// earningLine applies the configured display name and category when present.
func (e *Engine) earningLine(employerID EmployerID, code EarningCode, category EarningCategory, description string, units float64, rate *money.Money, amount money.Money) EarningLine {
	if def, ok := e.earningConfig.FindEarningDefinition(employerID, code); ok {
		if def.DisplayName != "" {
			description = def.DisplayName
		}
		if def.Category != "" {
			category = def.Category
		}
	}
	return EarningLine{
		Code:        code,
		Category:    category,
		Description: description,
		Units:       units,
		Rate:        rate,
		Amount:      amount,
	}
}

func sumCategory(lines []EarningLine, categories ...EarningCategory) int64 {
	var total int64
	for _, l := range lines {
		for _, c := range categories {
			if l.Category == c {
				total += l.Amount.Amount
				break
			}
		}
	}
	return total
}

// cashGross is total earnings less IMPUTED lines, which are taxable but unpaid.
func cashGross(lines []EarningLine) int64 {
	return sumEarnings(lines) - sumCategory(lines, CategoryImputed)
}
