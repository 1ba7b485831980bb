package payroll

const EngineVersion = "1.0.0"

const AuditSchemaVersion = 1

type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "WEEKLY"
	FrequencyBiweekly    PayFrequency = "BIWEEKLY"
	FrequencySemiMonthly PayFrequency = "SEMI_MONTHLY"
	FrequencyMonthly     PayFrequency = "MONTHLY"
	FrequencyQuarterly   PayFrequency = "QUARTERLY"
	FrequencyAnnual      PayFrequency = "ANNUAL"
)

type FilingStatus string

const (
	FilingSingle          FilingStatus = "SINGLE"
	FilingMarried         FilingStatus = "MARRIED"
	FilingHeadOfHousehold FilingStatus = "HEAD_OF_HOUSEHOLD"
)

type EmploymentType string

const (
	EmploymentRegular        EmploymentType = "REGULAR"
	EmploymentHousehold      EmploymentType = "HOUSEHOLD"
	EmploymentElectionWorker EmploymentType = "ELECTION_WORKER"
	EmploymentAgricultural   EmploymentType = "AGRICULTURAL"
)

type FlsaExemptStatus string

const (
	FlsaNonExempt            FlsaExemptStatus = "NON_EXEMPT"
	FlsaExempt               FlsaExemptStatus = "EXEMPT"
	FlsaRetail7i             FlsaExemptStatus = "RETAIL_7I"
	FlsaPublicSafety7k       FlsaExemptStatus = "PUBLIC_SAFETY_7K"
	FlsaPublicSectorCompTime FlsaExemptStatus = "PUBLIC_SECTOR_COMP_TIME"
)

type EarningCategory string

const (
	CategoryRegular      EarningCategory = "REGULAR"
	CategoryOvertime     EarningCategory = "OVERTIME"
	CategoryBonus        EarningCategory = "BONUS"
	CategorySupplemental EarningCategory = "SUPPLEMENTAL"
	CategoryHoliday      EarningCategory = "HOLIDAY"
	CategoryImputed      EarningCategory = "IMPUTED"
	CategoryTips         EarningCategory = "TIPS"
	CategoryOther        EarningCategory = "OTHER"
)

const (
	EarningCodeBase           EarningCode = "BASE"
	EarningCodeHourly         EarningCode = "HOURLY"
	EarningCodeOvertime       EarningCode = "OT"
	EarningCodeBonusPremium   EarningCode = "OT_BONUS_PREMIUM"
	EarningCodeTipMakeup      EarningCode = "TIP_MAKEUP"
	defaultOvertimeMultiplier             = "1.5"
)

type TraceLevel string

const (
	TraceNone  TraceLevel = "NONE"
	TraceAudit TraceLevel = "AUDIT"
	TraceDebug TraceLevel = "DEBUG"
)

// Statutory FICA thresholds below which household and election workers owe
// no Social Security or Medicare for the year.
const (
	householdFicaThresholdCents      int64 = 2_800_00
	electionWorkerFicaThresholdCents int64 = 2_400_00
	additionalMedicareThresholdCents int64 = 200_000_00
	additionalMedicareRate                 = "0.009"
)

// AdditionalMedicareRulePrefix marks the bracketed rule that is evaluated
// against the annual Medicare wage threshold instead of its brackets.
const AdditionalMedicareRulePrefix = "US_FED_ADDITIONAL_MEDICARE"
