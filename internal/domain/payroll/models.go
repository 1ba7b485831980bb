package payroll

import (
	"time"

	"paycalc/internal/platform/money"
)

type (
	EmployerID    string
	EmployeeID    string
	PaycheckID    string
	PayRunID      string
	EarningCode   string
	DeductionCode string
)

type PayPeriod struct {
	ID         string       `json:"id"`
	EmployerID EmployerID   `json:"employerId"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	CheckDate  time.Time    `json:"checkDate"`
	Frequency  PayFrequency `json:"frequency"`
	// SequenceInYear is 1-based; zero means unknown.
	SequenceInYear int `json:"sequenceInYear,omitempty"`
}

// BaseCompensation is either Salaried or Hourly.
//
//sumtype:decl
type BaseCompensation interface {
	isBaseCompensation()
}

type Salaried struct {
	AnnualSalary money.Money  `json:"annualSalary"`
	Frequency    PayFrequency `json:"frequency"`
}

type Hourly struct {
	HourlyRate money.Money `json:"hourlyRate"`
}

func (Salaried) isBaseCompensation() {}
func (Hourly) isBaseCompensation()   {}

type EmployeeSnapshot struct {
	EmployerID                     EmployerID       `json:"employerId"`
	EmployeeID                     EmployeeID       `json:"employeeId"`
	HomeState                      string           `json:"homeState"`
	WorkState                      string           `json:"workState"`
	WorkCity                       string           `json:"workCity,omitempty"`
	FilingStatus                   FilingStatus     `json:"filingStatus"`
	EmploymentType                 EmploymentType   `json:"employmentType"`
	BaseCompensation               BaseCompensation `json:"-"`
	HireDate                       *time.Time       `json:"hireDate,omitempty"`
	TerminationDate                *time.Time       `json:"terminationDate,omitempty"`
	AdditionalWithholdingPerPeriod *money.Money     `json:"additionalWithholdingPerPeriod,omitempty"`
	FicaExempt                     bool             `json:"ficaExempt"`
	FlsaEnterpriseCovered          bool             `json:"flsaEnterpriseCovered"`
	FlsaExemptStatus               FlsaExemptStatus `json:"flsaExemptStatus"`
	IsTippedEmployee               bool             `json:"isTippedEmployee"`
}

func (e EmployeeSnapshot) hourly() (Hourly, bool) {
	h, ok := e.BaseCompensation.(Hourly)
	return h, ok
}

func (e EmployeeSnapshot) nonExempt() bool {
	return e.FlsaExemptStatus == "" || e.FlsaExemptStatus == FlsaNonExempt
}

// EarningInput is an ad hoc earning supplied on the time slice. Amount wins
// over Rate × Units; with neither, the configured default rate is used.
type EarningInput struct {
	Code   EarningCode  `json:"code"`
	Units  float64      `json:"units"`
	Rate   *money.Money `json:"rate,omitempty"`
	Amount *money.Money `json:"amount,omitempty"`
}

type TimeSlice struct {
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	// Proration overrides any lifecycle-derived proration when set.
	Proration *Proration `json:"proration,omitempty"`
	// LocalityAllocations maps locality key to the share of local-basis wages.
	LocalityAllocations  map[string]float64 `json:"localityAllocations,omitempty"`
	OtherEarnings        []EarningInput     `json:"otherEarnings,omitempty"`
	SuppressBaseEarnings bool               `json:"suppressBaseEarnings"`
}

func (t TimeSlice) totalHours() float64 {
	return t.RegularHours + t.OvertimeHours
}

type EarningLine struct {
	Code        EarningCode     `json:"code"`
	Category    EarningCategory `json:"category"`
	Description string          `json:"description"`
	Units       float64         `json:"units"`
	Rate        *money.Money    `json:"rate,omitempty"`
	Amount      money.Money     `json:"amount"`
}

type TaxLine struct {
	RuleID       string          `json:"ruleId"`
	Jurisdiction TaxJurisdiction `json:"jurisdiction"`
	Description  string          `json:"description"`
	Basis        money.Money     `json:"basis"`
	Rate         *money.Percent  `json:"rate,omitempty"`
	Amount       money.Money     `json:"amount"`
}

type DeductionLine struct {
	Code        DeductionCode `json:"code"`
	Description string        `json:"description"`
	Amount      money.Money   `json:"amount"`
}

type EmployerContributionLine struct {
	Code        string      `json:"code"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
}

// YtdSnapshot is never mutated in place; see Accumulate.
type YtdSnapshot struct {
	Year                        int                           `json:"year"`
	EarningsByCode              map[EarningCode]money.Money   `json:"earningsByCode,omitempty"`
	EmployeeTaxesByRuleID       map[string]money.Money        `json:"employeeTaxesByRuleId,omitempty"`
	EmployerTaxesByRuleID       map[string]money.Money        `json:"employerTaxesByRuleId,omitempty"`
	DeductionsByCode            map[DeductionCode]money.Money `json:"deductionsByCode,omitempty"`
	WagesByBasis                map[TaxBasis]money.Money      `json:"wagesByBasis,omitempty"`
	EmployerContributionsByCode map[string]money.Money        `json:"employerContributionsByCode,omitempty"`
}

func (y YtdSnapshot) wages(basis TaxBasis) int64 {
	return y.WagesByBasis[basis].Amount
}

func (y YtdSnapshot) deductions(code DeductionCode) int64 {
	return y.DeductionsByCode[code].Amount
}

type PaycheckInput struct {
	PaycheckID            PaycheckID                 `json:"paycheckId"`
	PayRunID              PayRunID                   `json:"payRunId,omitempty"`
	EmployerID            EmployerID                 `json:"employerId"`
	EmployeeID            EmployeeID                 `json:"employeeId"`
	Period                PayPeriod                  `json:"period"`
	Employee              EmployeeSnapshot           `json:"employee"`
	TimeSlice             TimeSlice                  `json:"timeSlice"`
	TaxContext            TaxContext                 `json:"-"`
	Garnishments          GarnishmentContext         `json:"-"`
	PriorYtd              YtdSnapshot                `json:"priorYtd"`
	PaySchedule           *PaySchedule               `json:"paySchedule,omitempty"`
	LaborStandards        *LaborStandardsContext     `json:"laborStandards,omitempty"`
	EmployerContributions []EmployerContributionLine `json:"employerContributions,omitempty"`
}

// currency is taken from base compensation; all other amounts must agree.
func (in PaycheckInput) currency() string {
	switch base := in.Employee.BaseCompensation.(type) {
	case Salaried:
		if base.AnnualSalary.Currency != "" {
			return base.AnnualSalary.Currency
		}
	case Hourly:
		if base.HourlyRate.Currency != "" {
			return base.HourlyRate.Currency
		}
	}
	return money.DefaultCurrency
}

type PaycheckResult struct {
	PaycheckID            PaycheckID                 `json:"paycheckId"`
	PayRunID              PayRunID                   `json:"payRunId,omitempty"`
	EmployerID            EmployerID                 `json:"employerId"`
	EmployeeID            EmployeeID                 `json:"employeeId"`
	Period                PayPeriod                  `json:"period"`
	Earnings              []EarningLine              `json:"earnings"`
	EmployeeTaxes         []TaxLine                  `json:"employeeTaxes"`
	EmployerTaxes         []TaxLine                  `json:"employerTaxes"`
	Deductions            []DeductionLine            `json:"deductions"`
	EmployerContributions []EmployerContributionLine `json:"employerContributions"`
	Gross                 money.Money                `json:"gross"`
	Net                   money.Money                `json:"net"`
	YtdAfter              YtdSnapshot                `json:"ytdAfter"`
	Trace                 *CalculationTrace          `json:"trace,omitempty"`
}

// PaycheckComputation pairs the paycheck with its audit record.
type PaycheckComputation struct {
	Paycheck PaycheckResult `json:"paycheck"`
	Audit    PaycheckAudit  `json:"audit"`
}

func sumEarnings(lines []EarningLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount.Amount
	}
	return total
}

func sumTaxes(lines []TaxLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount.Amount
	}
	return total
}

func sumDeductions(lines []DeductionLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount.Amount
	}
	return total
}
