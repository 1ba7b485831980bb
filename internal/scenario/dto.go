package scenario

// File is the YAML document: per-employer catalogs plus the paychecks to run.
type File struct {
	Currency  string                 `yaml:"currency"`
	Employers map[string]EmployerDTO `yaml:"employers"`
	Paychecks []PaycheckDTO          `yaml:"paychecks"`
}

type EmployerDTO struct {
	Earnings       []EarningDefinitionDTO `yaml:"earnings"`
	DeductionPlans []DeductionPlanDTO     `yaml:"deductionPlans"`
}

type EarningDefinitionDTO struct {
	Code               string `yaml:"code"`
	DisplayName        string `yaml:"displayName"`
	Category           string `yaml:"category"`
	DefaultRate        *int64 `yaml:"defaultRate"`
	OvertimeMultiplier string `yaml:"overtimeMultiplier"`
}

type DeductionPlanDTO struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind"`
	Subtype      string   `yaml:"subtype"`
	EmployeeRate string   `yaml:"employeeRate"`
	EmployeeFlat *int64   `yaml:"employeeFlat"`
	EmployerRate string   `yaml:"employerRate"`
	EmployerFlat *int64   `yaml:"employerFlat"`
	AnnualCap    *int64   `yaml:"annualCap"`
	PerPeriodCap *int64   `yaml:"perPeriodCap"`
	Effects      []string `yaml:"effects"`
}

type PaycheckDTO struct {
	Name                  string             `yaml:"name"`
	PaycheckID            string             `yaml:"paycheckId"`
	PayRunID              string             `yaml:"payRunId"`
	EmployerID            string             `yaml:"employerId"`
	EmployeeID            string             `yaml:"employeeId"`
	Period                PeriodDTO          `yaml:"period"`
	Employee              EmployeeDTO        `yaml:"employee"`
	TimeSlice             TimeSliceDTO       `yaml:"timeSlice"`
	Taxes                 TaxesDTO           `yaml:"taxes"`
	Garnishments          GarnishmentsDTO    `yaml:"garnishments"`
	PriorYtd              YtdDTO             `yaml:"priorYtd"`
	PaySchedule           *PayScheduleDTO    `yaml:"paySchedule"`
	LaborStandards        *LaborStandardsDTO `yaml:"laborStandards"`
	EmployerContributions []ContributionDTO  `yaml:"employerContributions"`
	Expect                *ExpectDTO         `yaml:"expect"`
}

type PeriodDTO struct {
	ID        string `yaml:"id"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Check     string `yaml:"check"`
	Frequency string `yaml:"frequency"`
	Sequence  int    `yaml:"sequence"`
}

type EmployeeDTO struct {
	HomeState             string          `yaml:"homeState"`
	WorkState             string          `yaml:"workState"`
	WorkCity              string          `yaml:"workCity"`
	FilingStatus          string          `yaml:"filingStatus"`
	EmploymentType        string          `yaml:"employmentType"`
	Compensation          CompensationDTO `yaml:"compensation"`
	HireDate              string          `yaml:"hireDate"`
	TerminationDate       string          `yaml:"terminationDate"`
	AdditionalWithholding *int64          `yaml:"additionalWithholding"`
	FicaExempt            bool            `yaml:"ficaExempt"`
	FlsaEnterpriseCovered *bool           `yaml:"flsaEnterpriseCovered"`
	FlsaExemptStatus      string          `yaml:"flsaExemptStatus"`
	Tipped                bool            `yaml:"tipped"`
}

// CompensationDTO is tagged by kind: hourly or salaried.
type CompensationDTO struct {
	Kind      string `yaml:"kind"`
	Rate      int64  `yaml:"rate"`
	Annual    int64  `yaml:"annual"`
	Frequency string `yaml:"frequency"`
}

type TimeSliceDTO struct {
	RegularHours         float64            `yaml:"regularHours"`
	OvertimeHours        float64            `yaml:"overtimeHours"`
	SuppressBaseEarnings bool               `yaml:"suppressBaseEarnings"`
	Proration            *ProrationDTO      `yaml:"proration"`
	LocalityAllocations  map[string]float64 `yaml:"localityAllocations"`
	OtherEarnings        []EarningInputDTO  `yaml:"otherEarnings"`
}

type ProrationDTO struct {
	Numerator   string `yaml:"numerator"`
	Denominator string `yaml:"denominator"`
}

type EarningInputDTO struct {
	Code   string  `yaml:"code"`
	Units  float64 `yaml:"units"`
	Rate   *int64  `yaml:"rate"`
	Amount *int64  `yaml:"amount"`
}

type TaxesDTO struct {
	Federal  []TaxRuleDTO `yaml:"federal"`
	State    []TaxRuleDTO `yaml:"state"`
	Local    []TaxRuleDTO `yaml:"local"`
	Employer []TaxRuleDTO `yaml:"employer"`
}

// TaxRuleDTO is tagged by kind: flat, bracketed or wage_bracket.
type TaxRuleDTO struct {
	Kind                  string           `yaml:"kind"`
	ID                    string           `yaml:"id"`
	Jurisdiction          JurisdictionDTO  `yaml:"jurisdiction"`
	Basis                 string           `yaml:"basis"`
	Locality              string           `yaml:"locality"`
	FilingStatus          string           `yaml:"filingStatus"`
	Rate                  string           `yaml:"rate"`
	AnnualWageCap         *int64           `yaml:"annualWageCap"`
	Brackets              []BracketDTO     `yaml:"brackets"`
	StandardDeduction     *int64           `yaml:"standardDeduction"`
	AdditionalWithholding *int64           `yaml:"additionalWithholding"`
	Rows                  []WageBracketDTO `yaml:"rows"`
}

type JurisdictionDTO struct {
	Type string `yaml:"type"`
	Code string `yaml:"code"`
}

type BracketDTO struct {
	UpTo *int64 `yaml:"upTo"`
	Rate string `yaml:"rate"`
}

type WageBracketDTO struct {
	UpTo *int64 `yaml:"upTo"`
	Tax  int64  `yaml:"tax"`
}

type GarnishmentsDTO struct {
	SupportCap *SupportCapDTO `yaml:"supportCap"`
	Orders     []OrderDTO     `yaml:"orders"`
}

type SupportCapDTO struct {
	MaxRateWhenSupportingOthers    string `yaml:"maxRateWhenSupportingOthers"`
	MaxRateWhenNotSupportingOthers string `yaml:"maxRateWhenNotSupportingOthers"`
	ArrearsBonusRate               string `yaml:"arrearsBonusRate"`
	StateAggregateCapRate          string `yaml:"stateAggregateCapRate"`
	SupportsOtherDependents        bool   `yaml:"supportsOtherDependents"`
	ArrearsAtLeast12Weeks          bool   `yaml:"arrearsAtLeast12Weeks"`
	JurisdictionCode               string `yaml:"jurisdictionCode"`
}

type OrderDTO struct {
	ID                string                `yaml:"id"`
	PlanID            string                `yaml:"planId"`
	Type              string                `yaml:"type"`
	CaseNumber        string                `yaml:"caseNumber"`
	PriorityClass     int                   `yaml:"priorityClass"`
	Sequence          int                   `yaml:"sequence"`
	Formula           FormulaDTO            `yaml:"formula"`
	ProtectedEarnings *ProtectedEarningsDTO `yaml:"protectedEarnings"`
	ArrearsBefore     *int64                `yaml:"arrearsBefore"`
	LifetimeCap       *int64                `yaml:"lifetimeCap"`
}

// FormulaDTO is tagged by kind: percent, fixed, lesser or levy.
type FormulaDTO struct {
	Kind    string        `yaml:"kind"`
	Percent string        `yaml:"percent"`
	Amount  int64         `yaml:"amount"`
	Bands   []LevyBandDTO `yaml:"bands"`
}

type LevyBandDTO struct {
	UpTo         *int64 `yaml:"upTo"`
	Exempt       int64  `yaml:"exempt"`
	FilingStatus string `yaml:"filingStatus"`
}

// ProtectedEarningsDTO is tagged by kind: fixed or min_wage_multiple.
type ProtectedEarningsDTO struct {
	Kind       string  `yaml:"kind"`
	Amount     int64   `yaml:"amount"`
	HourlyRate int64   `yaml:"hourlyRate"`
	Hours      float64 `yaml:"hours"`
	Multiplier float64 `yaml:"multiplier"`
}

type YtdDTO struct {
	Year             int              `yaml:"year"`
	WagesByBasis     map[string]int64 `yaml:"wagesByBasis"`
	DeductionsByCode map[string]int64 `yaml:"deductionsByCode"`
	EarningsByCode   map[string]int64 `yaml:"earningsByCode"`
}

type PayScheduleDTO struct {
	Frequency      string `yaml:"frequency"`
	PeriodsPerYear int    `yaml:"periodsPerYear"`
}

type LaborStandardsDTO struct {
	FederalMinimumWage int64  `yaml:"federalMinimumWage"`
	StateMinimumWage   *int64 `yaml:"stateMinimumWage"`
	TippedCashMinimum  *int64 `yaml:"tippedCashMinimum"`
}

type ContributionDTO struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Amount      int64  `yaml:"amount"`
}

// ExpectDTO holds golden values checked by tests and the harness.
type ExpectDTO struct {
	Gross         *int64           `yaml:"gross"`
	Net           *int64           `yaml:"net"`
	EmployeeTaxes map[string]int64 `yaml:"employeeTaxes"`
	EmployerTaxes map[string]int64 `yaml:"employerTaxes"`
	Deductions    map[string]int64 `yaml:"deductions"`
	Earnings      map[string]int64 `yaml:"earnings"`
	Error         string           `yaml:"error"`
}
