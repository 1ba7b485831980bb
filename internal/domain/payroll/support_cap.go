package payroll

import "paycalc/internal/platform/money"

// SupportCap is the aggregate support limit for one paycheck.
type SupportCap struct {
	Ccpa      int64
	State     *int64
	Effective int64
}

// ComputeSupportCap applies the CCPA rate (lower when the employee supports
// other dependents, plus the arrears bonus once arrears reach 12 weeks) and
// an optional state aggregate rate. The effective cap is the smaller.
func ComputeSupportCap(disposable int64, ctx SupportCapContext) SupportCap {
	rate := ctx.Params.MaxRateWhenNotSupportingOthers.Decimal
	if ctx.SupportsOtherDependents {
		rate = ctx.Params.MaxRateWhenSupportingOthers.Decimal
	}
	if ctx.ArrearsAtLeast12Weeks {
		rate = rate.Add(ctx.Params.ArrearsBonusRate.Decimal)
	}
	ccpa := money.MulTrunc(disposable, rate)
	limit := SupportCap{Ccpa: ccpa, Effective: ccpa}
	if ctx.Params.StateAggregateCapRate != nil {
		state := ctx.Params.StateAggregateCapRate.Of(disposable)
		limit.State = &state
		if state < limit.Effective {
			limit.Effective = state
		}
	}
	return limit
}
