package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paycalc/internal/platform/money"
)

func runTaxes(t *testing.T, in PaycheckInput, bases map[TaxBasis]int64) (taxResult, *CalculationTrace) {
	t.Helper()
	trace := &CalculationTrace{}
	res, err := computeTaxes(in, basesOf(bases), trace)
	require.NoError(t, err)
	return res, trace
}

func TestTaxRuleConstructors(t *testing.T) {
	meta := RuleMeta{ID: "US_FED_FIT", Jurisdiction: TaxJurisdiction{Type: JurisdictionFederal, Code: "US"}, Basis: BasisFederalTaxable}

	t.Run("brackets are stored ascending", func(t *testing.T) {
		rule, err := NewBracketedIncomeTax(meta, []TaxBracket{
			{UpTo: nil, Rate: pct("0.22")},
			{UpTo: centsPtr(40_000_00), Rate: pct("0.12")},
			{UpTo: centsPtr(10_000_00), Rate: pct("0.10")},
		}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(10_000_00), rule.Brackets[0].UpTo.Amount)
		assert.Nil(t, rule.Brackets[2].UpTo)
	})

	tests := []struct {
		name  string
		build func() error
	}{
		{"missing id", func() error {
			_, err := NewFlatRateTax(RuleMeta{Basis: BasisGross, Jurisdiction: meta.Jurisdiction}, pct("0.1"), nil)
			return err
		}},
		{"unknown basis", func() error {
			m := meta
			m.Basis = "Tips"
			_, err := NewFlatRateTax(m, pct("0.1"), nil)
			return err
		}},
		{"negative rate", func() error {
			_, err := NewFlatRateTax(meta, pct("-0.1"), nil)
			return err
		}},
		{"empty brackets", func() error {
			_, err := NewBracketedIncomeTax(meta, nil, nil, nil)
			return err
		}},
		{"duplicate bounds", func() error {
			_, err := NewBracketedIncomeTax(meta, []TaxBracket{
				{UpTo: centsPtr(100), Rate: pct("0.1")},
				{UpTo: centsPtr(100), Rate: pct("0.2")},
			}, nil, nil)
			return err
		}},
		{"two unbounded wage rows", func() error {
			_, err := NewWageBracketTax(meta, []WageBracketRow{{Tax: cents(1)}, {Tax: cents(2)}})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.build(), ErrInvalidTaxRule)
		})
	}
}

func TestFlatRateTax(t *testing.T) {
	in := hourlyInput(20_00, 40, 0)
	in.TaxContext.Federal = []TaxRule{flatRule("US_FED_FLAT", JurisdictionFederal, BasisFederalTaxable, "0.10")}

	res, trace := runTaxes(t, in, map[TaxBasis]int64{BasisFederalTaxable: 1_000_05})
	require.Len(t, res.employee, 1)
	line := res.employee[0]
	assert.Equal(t, int64(100_00), line.Amount.Amount)
	assert.Equal(t, "Employee tax US_FED_FLAT", line.Description)
	require.Len(t, StepsOf[TaxApplied](*trace), 1)
}

func TestSocialSecurityWageCap(t *testing.T) {
	ss := flatRule("US_FED_SS", JurisdictionFederal, BasisSocialSecurityWages, "0.062")
	ss.AnnualWageCap = centsPtr(176_100_00)

	t.Run("partial headroom", func(t *testing.T) {
		in := hourlyInput(20_00, 40, 0)
		in.TaxContext.Federal = []TaxRule{ss}
		in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisSocialSecurityWages: cents(176_000_00)}
		res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisSocialSecurityWages: 1_000_00})
		require.Len(t, res.employee, 1)
		assert.Equal(t, int64(100_00), res.employee[0].Basis.Amount)
		assert.Equal(t, int64(6_20), res.employee[0].Amount.Amount)
	})

	t.Run("cap exhausted", func(t *testing.T) {
		in := hourlyInput(20_00, 40, 0)
		in.TaxContext.Federal = []TaxRule{ss}
		in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisSocialSecurityWages: cents(176_100_00)}
		res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisSocialSecurityWages: 1_000_00})
		assert.Empty(t, res.employee)
	})
}

func TestBracketedIncomeTax(t *testing.T) {
	rule, err := NewBracketedIncomeTax(
		RuleMeta{ID: "US_FED_FIT", Jurisdiction: TaxJurisdiction{Type: JurisdictionFederal, Code: "US"}, Basis: BasisFederalTaxable},
		[]TaxBracket{
			{UpTo: centsPtr(10_000_00), Rate: pct("0.10")},
			{UpTo: centsPtr(40_000_00), Rate: pct("0.12")},
			{Rate: pct("0.22")},
		},
		centsPtr(1_000_00),
		centsPtr(5_00),
	)
	require.NoError(t, err)

	in := hourlyInput(20_00, 40, 0)
	in.TaxContext.Federal = []TaxRule{rule}
	res, trace := runTaxes(t, in, map[TaxBasis]int64{BasisFederalTaxable: 15_000_00})

	require.Len(t, res.employee, 1)
	assert.Equal(t, int64(14_000_00), res.employee[0].Basis.Amount)
	assert.Equal(t, int64(1_480_00+5_00), res.employee[0].Amount.Amount)

	applied := StepsOf[TaxApplied](*trace)
	require.Len(t, applied, 1)
	require.Len(t, applied[0].Brackets, 2)
	assert.Equal(t, int64(4_000_00), applied[0].Brackets[1].AppliedTo.Amount)
}

func TestAdditionalMedicare(t *testing.T) {
	rule := BracketedIncomeTax{
		RuleMeta: RuleMeta{ID: AdditionalMedicareRulePrefix + "_2025", Jurisdiction: TaxJurisdiction{Type: JurisdictionFederal, Code: "US"}, Basis: BasisMedicareWages},
		Brackets: []TaxBracket{{Rate: pct("0.009")}},
	}
	tests := []struct {
		name  string
		prior int64
		want  int64
	}{
		{"below threshold", 190_000_00, 0},
		{"crossing threshold", 199_500_00, 4_50},
		{"already above", 250_000_00, 9_00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := hourlyInput(20_00, 40, 0)
			in.TaxContext.Federal = []TaxRule{rule}
			in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisMedicareWages: cents(tt.prior)}
			res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisMedicareWages: 1_000_00})
			if tt.want == 0 {
				assert.Empty(t, res.employee)
				return
			}
			require.Len(t, res.employee, 1)
			assert.Equal(t, tt.want, res.employee[0].Amount.Amount)
		})
	}
}

func TestWageBracketTax(t *testing.T) {
	rule, err := NewWageBracketTax(
		RuleMeta{ID: "XX_WB", Jurisdiction: TaxJurisdiction{Type: JurisdictionState, Code: "XX"}, Basis: BasisStateTaxable},
		[]WageBracketRow{
			{UpTo: centsPtr(500_00), Tax: cents(10_00)},
			{UpTo: centsPtr(1_000_00), Tax: cents(30_00)},
			{Tax: cents(90_00)},
		},
	)
	require.NoError(t, err)

	for basis, want := range map[int64]int64{750_00: 30_00, 1_000_00: 30_00, 1_500_00: 90_00, 1: 10_00} {
		in := hourlyInput(20_00, 40, 0)
		in.TaxContext.State = []TaxRule{rule}
		res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisStateTaxable: basis})
		require.Len(t, res.employee, 1)
		assert.Equal(t, want, res.employee[0].Amount.Amount, "basis %d", basis)
	}
}

func TestAdditionalWithholdingAppliedOnce(t *testing.T) {
	in := hourlyInput(20_00, 40, 0)
	in.Employee.AdditionalWithholdingPerPeriod = centsPtr(25_00)
	in.TaxContext.Federal = []TaxRule{
		flatRule("US_FED_MEDICARE", JurisdictionFederal, BasisMedicareWages, "0.0145"),
		flatRule("US_FED_A", JurisdictionFederal, BasisFederalTaxable, "0.10"),
		flatRule("US_FED_B", JurisdictionFederal, BasisFederalTaxable, "0.01"),
	}
	in.TaxContext.State = []TaxRule{flatRule("CA_SIT", JurisdictionState, BasisStateTaxable, "0.05")}

	res, trace := runTaxes(t, in, map[TaxBasis]int64{
		BasisFederalTaxable: 1_000_00,
		BasisStateTaxable:   1_000_00,
		BasisMedicareWages:  1_000_00,
	})
	require.Len(t, res.employee, 4)
	assert.Equal(t, int64(14_50), res.employee[0].Amount.Amount)
	assert.Equal(t, int64(125_00), res.employee[1].Amount.Amount)
	assert.Equal(t, int64(10_00), res.employee[2].Amount.Amount)
	assert.Equal(t, int64(50_00), res.employee[3].Amount.Amount)

	extra := StepsOf[AdditionalWithholdingApplied](*trace)
	require.Len(t, extra, 1)
	assert.Equal(t, "US_FED_A", extra[0].RuleID)
}

func TestAdditionalWithholdingStaysWithFirstIncomeRule(t *testing.T) {
	capped := flatRule("US_FED_CAPPED", JurisdictionFederal, BasisFederalTaxable, "0.10")
	capped.AnnualWageCap = centsPtr(500_00)
	in := hourlyInput(20_00, 40, 0)
	in.Employee.AdditionalWithholdingPerPeriod = centsPtr(25_00)
	in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisFederalTaxable: cents(600_00)}
	in.TaxContext.Federal = []TaxRule{
		capped,
		flatRule("US_FED_B", JurisdictionFederal, BasisFederalTaxable, "0.01"),
	}

	res, trace := runTaxes(t, in, map[TaxBasis]int64{BasisFederalTaxable: 1_000_00})

	require.Len(t, res.employee, 2)
	assert.Equal(t, "US_FED_CAPPED", res.employee[0].RuleID)
	assert.Equal(t, int64(25_00), res.employee[0].Amount.Amount)
	assert.Zero(t, res.employee[0].Basis.Amount)
	assert.Equal(t, int64(10_00), res.employee[1].Amount.Amount)

	extra := StepsOf[AdditionalWithholdingApplied](*trace)
	require.Len(t, extra, 1)
	assert.Equal(t, "US_FED_CAPPED", extra[0].RuleID)
}

func TestFilingStatusScopedRules(t *testing.T) {
	married := flatRule("US_FED_MARRIED", JurisdictionFederal, BasisFederalTaxable, "0.08")
	married.FilingStatus = FilingMarried
	single := flatRule("US_FED_SINGLE", JurisdictionFederal, BasisFederalTaxable, "0.10")
	single.FilingStatus = FilingSingle

	in := hourlyInput(20_00, 40, 0)
	in.TaxContext.Federal = []TaxRule{married, single}
	res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisFederalTaxable: 1_000_00})
	require.Len(t, res.employee, 1)
	assert.Equal(t, "US_FED_SINGLE", res.employee[0].RuleID)
}

func TestFicaExemptions(t *testing.T) {
	rules := []TaxRule{
		flatRule("US_FED_FIT", JurisdictionFederal, BasisFederalTaxable, "0.10"),
		flatRule("US_FED_SS", JurisdictionFederal, BasisSocialSecurityWages, "0.062"),
		flatRule("US_FED_MEDICARE", JurisdictionFederal, BasisMedicareWages, "0.0145"),
	}
	bases := map[TaxBasis]int64{
		BasisFederalTaxable:      500_00,
		BasisSocialSecurityWages: 500_00,
		BasisMedicareWages:       500_00,
	}

	tests := []struct {
		name      string
		mutate    func(in *PaycheckInput)
		wantRules int
	}{
		{"regular employee", func(in *PaycheckInput) {}, 3},
		{"fica exempt", func(in *PaycheckInput) { in.Employee.FicaExempt = true }, 1},
		{"household under threshold", func(in *PaycheckInput) {
			in.Employee.EmploymentType = EmploymentHousehold
			in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisSocialSecurityWages: cents(2_000_00), BasisMedicareWages: cents(2_000_00)}
		}, 1},
		{"household reaching threshold", func(in *PaycheckInput) {
			in.Employee.EmploymentType = EmploymentHousehold
			in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisSocialSecurityWages: cents(2_300_00), BasisMedicareWages: cents(2_300_00)}
		}, 3},
		{"election worker under threshold", func(in *PaycheckInput) {
			in.Employee.EmploymentType = EmploymentElectionWorker
			in.PriorYtd.WagesByBasis = map[TaxBasis]money.Money{BasisSocialSecurityWages: cents(1_800_00), BasisMedicareWages: cents(1_800_00)}
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := hourlyInput(20_00, 40, 0)
			in.TaxContext.Federal = rules
			tt.mutate(&in)
			res, _ := runTaxes(t, in, bases)
			assert.Len(t, res.employee, tt.wantRules)
		})
	}
}

func TestEmployerRules(t *testing.T) {
	in := hourlyInput(20_00, 40, 0)
	in.TaxContext.EmployerSpecific = []TaxRule{flatRule("US_FED_SS_ER", JurisdictionFederal, BasisSocialSecurityWages, "0.062")}
	in.Employee.AdditionalWithholdingPerPeriod = centsPtr(25_00)

	res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisSocialSecurityWages: 1_000_00})
	assert.Empty(t, res.employee)
	require.Len(t, res.employer, 1)
	assert.Equal(t, int64(62_00), res.employer[0].Amount.Amount)
	assert.Equal(t, "Employer tax US_FED_SS_ER", res.employer[0].Description)
}

func TestLocalTaxesAcrossLocalities(t *testing.T) {
	nyc := flatRule("NYC_LOCAL", JurisdictionLocal, BasisStateTaxable, "0.03")
	nyc.LocalityFilter = "nyc"
	yonkers := flatRule("YONKERS_LOCAL", JurisdictionLocal, BasisStateTaxable, "0.01")
	yonkers.LocalityFilter = "Yonkers"

	in := hourlyInput(20_00, 40, 0)
	in.TaxContext.Local = []TaxRule{nyc, yonkers}
	in.TimeSlice.LocalityAllocations = map[string]float64{"NYC": 0.5, " yonkers ": 0.5}

	res, _ := runTaxes(t, in, map[TaxBasis]int64{BasisStateTaxable: 1_000_01})
	require.Len(t, res.employee, 2)
	assert.Equal(t, int64(500_01), res.employee[0].Basis.Amount)
	assert.Equal(t, int64(500_00), res.employee[1].Basis.Amount)
	assert.Equal(t, int64(15_00), res.employee[0].Amount.Amount)
	assert.Equal(t, int64(5_00), res.employee[1].Amount.Amount)
}

func TestAllocateLocalities(t *testing.T) {
	t.Run("fractions summing to one allocate every cent", func(t *testing.T) {
		for _, total := range []int64{1, 99, 100, 12_345_67, 1_000_000_01} {
			got := AllocateLocalities(total, []string{"a", "b", "c"}, map[string]float64{"a": 0.3, "b": 0.3, "c": 0.4})
			var sum int64
			for _, v := range got {
				sum += v
			}
			assert.Equal(t, total, sum, "total %d", total)
		}
	})

	t.Run("even split breaks ties by key", func(t *testing.T) {
		got := AllocateLocalities(100, []string{"c", "a", "b"}, nil)
		assert.Equal(t, map[string]int64{"A": 34, "B": 33, "C": 33}, got)
	})

	t.Run("fractions above one are scaled down", func(t *testing.T) {
		got := AllocateLocalities(1_000, []string{"x", "y"}, map[string]float64{"x": 0.6, "y": 0.6})
		assert.Equal(t, map[string]int64{"X": 500, "Y": 500}, got)
	})

	t.Run("partial fractions allocate only their share", func(t *testing.T) {
		got := AllocateLocalities(1_001, []string{"x", "y"}, map[string]float64{"x": 0.25, "y": -1})
		assert.Equal(t, map[string]int64{"X": 250}, got)
	})

	t.Run("fractions for unreferenced localities are ignored", func(t *testing.T) {
		got := AllocateLocalities(1_000_00, []string{"a"}, map[string]float64{"a": 0.6, "b": 0.6})
		assert.Equal(t, map[string]int64{"A": 600_00}, got)
	})
}
