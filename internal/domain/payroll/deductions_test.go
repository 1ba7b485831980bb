package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paycalc/internal/platform/money"
)

func TestSortDeductionPlans(t *testing.T) {
	plans := []DeductionPlan{
		{ID: "A_ROTH", Name: "Roth", Kind: KindRothRetirement},
		{ID: "B_401K", Name: "401k", Kind: KindPretaxRetirement},
		{ID: "Z_GARN", Name: "Levy", Kind: KindGarnishment},
		{ID: "C_HSA", Name: "HSA", Kind: KindHSA},
		{ID: "A_FSA", Name: "FSA", Kind: KindFSA},
	}
	var ids []string
	for _, p := range SortDeductionPlans(plans) {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"A_FSA", "C_HSA", "B_401K", "Z_GARN", "A_ROTH"}, ids)
}

func TestNewDeductionPlanValidation(t *testing.T) {
	_, err := NewDeductionPlan(DeductionPlan{ID: "401K", Name: "401k", Kind: KindPretaxRetirement, EmployeeRate: pctPtr("0.05")})
	require.NoError(t, err)

	for name, plan := range map[string]DeductionPlan{
		"missing id":    {Name: "x", Kind: KindHSA},
		"missing name":  {ID: "x", Kind: KindHSA},
		"unknown kind":  {ID: "x", Name: "x", Kind: "LOAN"},
		"negative rate": {ID: "x", Name: "x", Kind: KindHSA, EmployeeRate: pctPtr("-0.01")},
		"negative cap":  {ID: "x", Name: "x", Kind: KindHSA, AnnualCap: centsPtr(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewDeductionPlan(plan)
			assert.ErrorIs(t, err, ErrInvalidDeduction)
		})
	}
}

func TestDeductionCaps(t *testing.T) {
	base := DeductionPlan{ID: "401K", Name: "401k", Kind: KindPretaxRetirement, EmployeeRate: pctPtr("0.10")}

	tests := []struct {
		name      string
		annualCap *money.Money
		perPeriod *money.Money
		ytd       int64
		want      int64
		wantCap   *int64
	}{
		{"uncapped", nil, nil, 0, 300_00, nil},
		{"annual headroom binds", centsPtr(1_000_00), nil, 900_00, 100_00, int64Ptr(1_000_00)},
		{"annual exhausted", centsPtr(1_000_00), nil, 1_000_00, 0, nil},
		{"per period binds", nil, centsPtr(50_00), 0, 50_00, int64Ptr(50_00)},
		{"annual then per period", centsPtr(1_000_00), centsPtr(80_00), 900_00, 80_00, int64Ptr(80_00)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := base
			plan.AnnualCap = tt.annualCap
			plan.PerPeriodCap = tt.perPeriod
			in := hourlyInput(20_00, 40, 0)
			in.PriorYtd.DeductionsByCode = map[DeductionCode]money.Money{"401K": cents(tt.ytd)}

			trace := &CalculationTrace{}
			res := computeDeductions(in, 3_000_00, []DeductionPlan{plan}, trace)
			if tt.want == 0 {
				assert.Empty(t, res.preTax)
				assert.Empty(t, trace.Steps)
				return
			}
			require.Len(t, res.preTax, 1)
			assert.Equal(t, tt.want, res.preTax[0].Amount.Amount)

			step := StepsOf[DeductionApplied](*trace)[0]
			if tt.wantCap == nil {
				assert.Nil(t, step.CappedAt)
			} else {
				require.NotNil(t, step.CappedAt)
				assert.Equal(t, *tt.wantCap, step.CappedAt.Amount)
			}
			assert.Equal(t, []DeductionEffect{ReducesFederalTaxable, ReducesStateTaxable}, step.Effects)
		})
	}
}

func TestDeductionCapNeverIncreasesAmount(t *testing.T) {
	for raw := int64(0); raw <= 2_000; raw += 137 {
		for ytd := int64(0); ytd <= 1_200; ytd += 211 {
			annual := cents(1_000)
			perPeriod := cents(600)
			got, _ := applyCaps(raw, &annual, &perPeriod, ytd)
			assert.LessOrEqual(t, got, raw)
			assert.LessOrEqual(t, got, money.Max(0, annual.Amount-ytd))
			assert.LessOrEqual(t, got, perPeriod.Amount)
		}
	}
}

func TestDeductionsSplitAndContributions(t *testing.T) {
	plans := []DeductionPlan{
		{ID: "ROTH", Name: "Roth 401k", Kind: KindRothRetirement, EmployeeFlat: centsPtr(10_00)},
		{ID: "401K", Name: "401k", Kind: KindPretaxRetirement, EmployeeRate: pctPtr("0.05"), EmployerRate: pctPtr("0.03")},
		{ID: "GARN", Name: "Legacy levy", Kind: KindGarnishment, EmployeeFlat: centsPtr(5_00)},
		{ID: "ZERO", Name: "Nothing", Kind: KindPosttaxVoluntary},
	}
	in := hourlyInput(20_00, 40, 0)
	res := computeDeductions(in, 2_000_00, plans, &CalculationTrace{})

	require.Len(t, res.preTax, 1)
	assert.Equal(t, int64(100_00), res.preTax[0].Amount.Amount)
	require.Len(t, res.postTax, 1)
	assert.Equal(t, DeductionCode("ROTH"), res.postTax[0].Code)
	assert.Equal(t, []string{"401K", "ROTH"}, res.appliedPlanIDs)

	require.Len(t, res.employerContributions, 1)
	assert.Equal(t, int64(60_00), res.employerContributions[0].Amount.Amount)
}

func TestBuildBases(t *testing.T) {
	earnings := []EarningLine{
		{Code: EarningCodeHourly, Category: CategoryRegular, Amount: cents(2_500_00)},
		{Code: "BONUS", Category: CategoryBonus, Amount: cents(300_00)},
		{Code: "SUPP", Category: CategorySupplemental, Amount: cents(100_00)},
		{Code: "HOL", Category: CategoryHoliday, Amount: cents(80_00)},
		{Code: "GTL", Category: CategoryImputed, Amount: cents(20_00)},
	}
	plans := plansByCode([]DeductionPlan{
		{ID: "HSA", Name: "HSA", Kind: KindHSA},
		{ID: "401K", Name: "401k", Kind: KindPretaxRetirement},
		{ID: "CUSTOM", Name: "Custom", Kind: KindFSA, EmployeeEffects: []DeductionEffect{ReducesStateTaxable}},
	})
	preTax := []DeductionLine{
		{Code: "HSA", Amount: cents(100_00)},
		{Code: "401K", Amount: cents(200_00)},
		{Code: "CUSTOM", Amount: cents(30_00)},
		{Code: "UNCONFIGURED", Amount: cents(7_00)},
	}

	b := buildBases(earnings, preTax, nil, plans)

	assert.Equal(t, int64(3_000_00), b.amount(BasisGross))
	assert.Equal(t, int64(3_000_00-100_00-200_00-7_00), b.amount(BasisFederalTaxable))
	assert.Equal(t, int64(3_000_00-100_00-200_00-30_00), b.amount(BasisStateTaxable))
	assert.Equal(t, int64(3_000_00-100_00), b.amount(BasisSocialSecurityWages))
	assert.Equal(t, int64(3_000_00-100_00), b.amount(BasisMedicareWages))
	assert.Equal(t, int64(400_00), b.amount(BasisSupplementalWages))
	assert.Equal(t, int64(3_000_00), b.amount(BasisFutaWages))

	assert.Equal(t, int64(307_00), b.Components[BasisFederalTaxable]["lessFederalTaxableDeductions"])
	assert.Equal(t, int64(80_00), b.Components[BasisGross]["holiday"])
	assert.Equal(t, int64(20_00), b.Components[BasisGross]["imputed"])

	trace := &CalculationTrace{}
	b.trace(trace, money.DefaultCurrency)
	steps := StepsOf[BasisComputed](*trace)
	require.Len(t, steps, len(AllTaxBases))
	assert.Equal(t, BasisGross, steps[0].Basis)
}

func TestBuildBasesPostTaxEffects(t *testing.T) {
	earnings := []EarningLine{{Code: EarningCodeHourly, Category: CategoryRegular, Amount: cents(1_000_00)}}
	plans := plansByCode([]DeductionPlan{
		{ID: "TRANSIT", Name: "Transit", Kind: KindOtherPosttax, EmployeeEffects: []DeductionEffect{ReducesStateTaxable}},
		{ID: "ROTH", Name: "Roth", Kind: KindRothRetirement},
	})
	postTax := []DeductionLine{
		{Code: "TRANSIT", Amount: cents(100_00)},
		{Code: "ROTH", Amount: cents(50_00)},
		{Code: "UNCONFIGURED", Amount: cents(7_00)},
	}

	b := buildBases(earnings, nil, postTax, plans)

	assert.Equal(t, int64(900_00), b.amount(BasisStateTaxable))
	assert.Equal(t, int64(1_000_00), b.amount(BasisFederalTaxable))
	assert.Equal(t, int64(1_000_00), b.amount(BasisSocialSecurityWages))
	assert.Equal(t, int64(100_00), b.Components[BasisStateTaxable]["lessStateTaxableDeductions"])
}

func TestEnginePostTaxPlanReducesDeclaredBasis(t *testing.T) {
	transit := DeductionPlan{
		ID:              "TRANSIT",
		Name:            "Transit",
		Kind:            KindOtherPosttax,
		EmployeeFlat:    centsPtr(100_00),
		EmployeeEffects: []DeductionEffect{ReducesStateTaxable},
	}
	e := NewEngine(WithDeductionConfig(StaticDeductionConfig{"emp-1": {transit}}))
	in := hourlyInput(25_00, 40, 0)
	in.TaxContext.State = []TaxRule{flatRule("CA_INCOME", JurisdictionState, BasisStateTaxable, "0.05")}

	comp, err := e.Compute(in)
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_00), comp.Audit.Bases[BasisGross])
	assert.Equal(t, int64(900_00), comp.Audit.Bases[BasisStateTaxable])
	assert.Equal(t, int64(1_000_00), comp.Audit.Bases[BasisFederalTaxable])
	require.Len(t, comp.Paycheck.EmployeeTaxes, 1)
	assert.Equal(t, int64(45_00), comp.Paycheck.EmployeeTaxes[0].Amount.Amount)
	assert.Equal(t, int64(1_000_00-45_00-100_00), comp.Paycheck.Net.Amount)
}
