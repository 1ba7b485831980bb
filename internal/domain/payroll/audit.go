package payroll

import "time"

// PaycheckAudit is the compact record persisted alongside every paycheck,
// regardless of trace level.
type PaycheckAudit struct {
	SchemaVersion int        `json:"schemaVersion"`
	EngineVersion string     `json:"engineVersion"`
	ComputedAt    time.Time  `json:"computedAt"`
	TraceLevel    TraceLevel `json:"traceLevel"`

	PaycheckID  PaycheckID `json:"paycheckId"`
	PayRunID    PayRunID   `json:"payRunId,omitempty"`
	EmployerID  EmployerID `json:"employerId"`
	EmployeeID  EmployeeID `json:"employeeId"`
	PayPeriodID string     `json:"payPeriodId"`
	CheckDate   time.Time  `json:"checkDate"`

	AppliedTaxRuleIDs          []string `json:"appliedTaxRuleIds"`
	AppliedDeductionPlanIDs    []string `json:"appliedDeductionPlanIds"`
	AppliedGarnishmentOrderIDs []string `json:"appliedGarnishmentOrderIds"`

	CashGrossCents            int64 `json:"cashGrossCents"`
	GrossTaxableCents         int64 `json:"grossTaxableCents"`
	EmployeeTaxCents          int64 `json:"employeeTaxCents"`
	EmployerTaxCents          int64 `json:"employerTaxCents"`
	PreTaxDeductionCents      int64 `json:"preTaxDeductionCents"`
	GarnishmentCents          int64 `json:"garnishmentCents"`
	PostTaxDeductionCents     int64 `json:"postTaxDeductionCents"`
	EmployerContributionCents int64 `json:"employerContributionCents"`
	NetCents                  int64 `json:"netCents"`

	Bases        map[TaxBasis]int64   `json:"bases"`
	Garnishments []GarnishmentApplied `json:"garnishments,omitempty"`
	Notes        []string             `json:"notes,omitempty"`
}

// dedupe keeps the first occurrence of each id in order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
