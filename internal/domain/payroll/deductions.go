package payroll

import "paycalc/internal/platform/money"

type deductionResult struct {
	preTax                []DeductionLine
	postTax               []DeductionLine
	employerContributions []EmployerContributionLine
	appliedPlanIDs        []string
}

// computeDeductions evaluates non-garnishment plans in priority order against
// gross, applying the annual cap before the per-period cap.
func computeDeductions(in PaycheckInput, gross int64, plans []DeductionPlan, trace *CalculationTrace) deductionResult {
	cur := in.currency()
	var res deductionResult
	for _, plan := range SortDeductionPlans(plans) {
		if plan.Kind == KindGarnishment {
			continue
		}
		code := DeductionCode(plan.ID)
		raw := planAmount(gross, plan.EmployeeRate, plan.EmployeeFlat)
		if raw <= 0 {
			continue
		}
		amount, cappedAt := applyCaps(raw, plan.AnnualCap, plan.PerPeriodCap, in.PriorYtd.deductions(code))
		if amount <= 0 {
			continue
		}

		line := DeductionLine{Code: code, Description: plan.Name, Amount: money.New(amount, cur)}
		if plan.Kind.preTax() {
			res.preTax = append(res.preTax, line)
		} else {
			res.postTax = append(res.postTax, line)
		}
		res.appliedPlanIDs = append(res.appliedPlanIDs, plan.ID)
		trace.add(DeductionApplied{
			Code:        code,
			Description: plan.Name,
			Basis:       money.New(gross, cur),
			Rate:        plan.EmployeeRate,
			Amount:      line.Amount,
			CappedAt:    cappedAt,
			Effects:     plan.Effects(),
		})

		if employer := planAmount(gross, plan.EmployerRate, plan.EmployerFlat); employer > 0 {
			res.employerContributions = append(res.employerContributions, EmployerContributionLine{
				Code:        plan.ID,
				Description: plan.Name + " employer contribution",
				Amount:      money.New(employer, cur),
			})
		}
	}
	return res
}

func planAmount(gross int64, rate *money.Percent, flat *money.Money) int64 {
	var amount int64
	if rate != nil {
		amount += rate.Of(gross)
	}
	if flat != nil {
		amount += flat.Amount
	}
	return amount
}

// applyCaps clamps raw to the remaining annual headroom and then to the
// per-period cap. cappedAt reports the cap that bound, if any.
func applyCaps(raw int64, annualCap, perPeriodCap *money.Money, ytd int64) (int64, *money.Money) {
	amount := raw
	var cappedAt *money.Money
	if annualCap != nil {
		remaining := annualCap.Amount - ytd
		if remaining <= 0 {
			return 0, annualCap
		}
		if amount > remaining {
			amount = remaining
			cappedAt = annualCap
		}
	}
	if perPeriodCap != nil && amount > perPeriodCap.Amount {
		amount = perPeriodCap.Amount
		cappedAt = perPeriodCap
	}
	return amount, cappedAt
}

func plansByCode(plans []DeductionPlan) map[DeductionCode]DeductionPlan {
	out := make(map[DeductionCode]DeductionPlan, len(plans))
	for _, p := range plans {
		out[DeductionCode(p.ID)] = p
	}
	return out
}
