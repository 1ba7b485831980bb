package payroll

import (
	"github.com/shopspring/decimal"

	"paycalc/internal/platform/money"
)

// regularRatePremium returns the extra overtime owed when a nondiscretionary
// bonus raises the regular rate: 0.5 × (bonus ÷ total hours) × OT hours.
func regularRatePremium(in PaycheckInput, earnings []EarningLine) (EarningLine, bool) {
	if _, ok := in.Employee.hourly(); !ok {
		return EarningLine{}, false
	}
	if !in.Employee.nonExempt() || !in.Employee.FlsaEnterpriseCovered {
		return EarningLine{}, false
	}
	ot := in.TimeSlice.OvertimeHours
	total := in.TimeSlice.totalHours()
	if ot <= 0 || total <= 0 {
		return EarningLine{}, false
	}
	bonus := sumCategory(earnings, CategoryBonus)
	if bonus <= 0 {
		return EarningLine{}, false
	}

	otHours := hoursDecimal(ot)
	premium := money.MulDivTrunc(bonus, otHours, hoursDecimal(total).Mul(decimal.NewFromInt(2)))
	if premium <= 0 {
		return EarningLine{}, false
	}
	cur := in.currency()
	rate := money.New(money.MulDivTrunc(premium, decimal.NewFromInt(1), otHours), cur)
	return EarningLine{
		Code:        EarningCodeBonusPremium,
		Category:    CategoryOvertime,
		Description: "Overtime premium on bonus",
		Units:       ot,
		Rate:        &rate,
		Amount:      money.New(premium, cur),
	}, true
}

// tipCreditMakeup returns the employer make-up owed to a tipped employee
// whose cash plus tips fall short of minimum wage, or whose cash wage falls
// below the tipped cash minimum. The larger shortfall wins.
func tipCreditMakeup(in PaycheckInput, earnings []EarningLine) (EarningLine, bool) {
	labor := in.LaborStandards
	if labor == nil || !in.Employee.IsTippedEmployee || !in.Employee.nonExempt() {
		return EarningLine{}, false
	}
	if _, ok := in.Employee.hourly(); !ok {
		return EarningLine{}, false
	}
	hours := in.TimeSlice.totalHours()
	if hours <= 0 {
		return EarningLine{}, false
	}
	h := hoursDecimal(hours)

	tips := sumCategory(earnings, CategoryTips)
	cash := cashGross(earnings) - tips

	required := labor.effectiveMinimumWage().MulTrunc(h).Amount
	deficiency := required - (cash + tips)
	if labor.TippedCashMinimum != nil {
		requiredCash := labor.TippedCashMinimum.MulTrunc(h).Amount
		deficiency = money.Max(deficiency, requiredCash-cash)
	}
	if deficiency <= 0 {
		return EarningLine{}, false
	}
	return EarningLine{
		Code:        EarningCodeTipMakeup,
		Category:    CategoryRegular,
		Description: "Tip credit make-up",
		Units:       hours,
		Amount:      money.New(deficiency, in.currency()),
	}, true
}
