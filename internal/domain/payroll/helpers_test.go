package payroll

import (
	"time"

	"paycalc/internal/platform/money"
)

var testCheckDate = time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)

func cents(c int64) money.Money { return money.Cents(c) }

func centsPtr(c int64) *money.Money {
	m := money.Cents(c)
	return &m
}

func pct(s string) money.Percent { return money.MustPercent(s) }

func pctPtr(s string) *money.Percent {
	p := money.MustPercent(s)
	return &p
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weeklyPeriod() PayPeriod {
	return PayPeriod{
		ID:             "2025-W02",
		EmployerID:     "emp-1",
		StartDate:      date(2025, time.January, 6),
		EndDate:        date(2025, time.January, 12),
		CheckDate:      testCheckDate,
		Frequency:      FrequencyWeekly,
		SequenceInYear: 2,
	}
}

func hourlyInput(rate int64, regular, overtime float64) PaycheckInput {
	return PaycheckInput{
		PaycheckID: "chk-1",
		PayRunID:   "run-1",
		EmployerID: "emp-1",
		EmployeeID: "ee-1",
		Period:     weeklyPeriod(),
		Employee: EmployeeSnapshot{
			EmployerID:            "emp-1",
			EmployeeID:            "ee-1",
			HomeState:             "CA",
			WorkState:             "CA",
			FilingStatus:          FilingSingle,
			EmploymentType:        EmploymentRegular,
			BaseCompensation:      Hourly{HourlyRate: cents(rate)},
			FlsaEnterpriseCovered: true,
			FlsaExemptStatus:      FlsaNonExempt,
		},
		TimeSlice: TimeSlice{RegularHours: regular, OvertimeHours: overtime},
		PriorYtd:  YtdSnapshot{Year: 2025},
	}
}

func salariedInput(annual int64, period PayPeriod) PaycheckInput {
	in := hourlyInput(0, 0, 0)
	in.Period = period
	in.Employee.BaseCompensation = Salaried{AnnualSalary: cents(annual), Frequency: period.Frequency}
	return in
}

func monthlyPeriod() PayPeriod {
	return PayPeriod{
		ID:             "2025-01",
		EmployerID:     "emp-1",
		StartDate:      date(2025, time.January, 1),
		EndDate:        date(2025, time.January, 31),
		CheckDate:      date(2025, time.January, 31),
		Frequency:      FrequencyMonthly,
		SequenceInYear: 1,
	}
}

func flatRule(id string, jt TaxJurisdictionType, basis TaxBasis, rate string) FlatRateTax {
	return FlatRateTax{
		RuleMeta: RuleMeta{ID: id, Jurisdiction: TaxJurisdiction{Type: jt, Code: "US"}, Basis: basis},
		Rate:     pct(rate),
	}
}

func basesOf(amounts map[TaxBasis]int64) Bases {
	return Bases{Amounts: amounts}
}
