package payroll

import (
	"fmt"
	"log/slog"
	"time"

	"paycalc/internal/platform/money"
)

// Engine computes one paycheck at a time. It holds no per-paycheck state and
// is safe for concurrent use.
type Engine struct {
	logger          *slog.Logger
	recorder        Recorder
	now             func() time.Time
	traceLevel      TraceLevel
	strictYtdYear   bool
	earningConfig   EarningConfigRepository
	deductionConfig DeductionConfigRepository
	overtime        OvertimePolicy
	proration       ProrationStrategy
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:          discardLogger(),
		recorder:        noopRecorder{},
		now:             time.Now,
		traceLevel:      TraceAudit,
		earningConfig:   NoEarningConfig{},
		deductionConfig: NoDeductionConfig{},
		overtime:        DefaultOvertimePolicy{},
		proration:       CalendarDays{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculate returns only the paycheck.
func (e *Engine) Calculate(in PaycheckInput) (PaycheckResult, error) {
	comp, err := e.Compute(in)
	if err != nil {
		return PaycheckResult{}, err
	}
	return comp.Paycheck, nil
}

// Compute runs the full pipeline and returns the paycheck with its audit.
func (e *Engine) Compute(in PaycheckInput) (PaycheckComputation, error) {
	start := time.Now()
	comp, err := e.compute(in)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		e.logger.Debug("paycheck failed", "paycheckId", in.PaycheckID, "employeeId", in.EmployeeID, "err", err)
	}
	e.recorder.PaycheckComputed(outcome, time.Since(start))
	return comp, err
}

func (e *Engine) compute(in PaycheckInput) (PaycheckComputation, error) {
	if err := in.Validate(); err != nil {
		return PaycheckComputation{}, err
	}
	plans := e.deductionConfig.FindPlansForEmployer(in.EmployerID)
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return PaycheckComputation{}, err
		}
	}

	cur := in.currency()
	trace := &CalculationTrace{}

	earnings, err := e.baseEarnings(in, trace)
	if err != nil {
		return PaycheckComputation{}, err
	}
	earnings = append(earnings, e.otherEarnings(in)...)
	if line, ok := regularRatePremium(in, earnings); ok {
		earnings = append(earnings, line)
		trace.add(EarningAdjusted{Code: line.Code, Reason: "regular rate includes nondiscretionary bonus", Amount: line.Amount})
	}
	if line, ok := tipCreditMakeup(in, earnings); ok {
		earnings = append(earnings, line)
		trace.add(EarningAdjusted{Code: line.Code, Reason: "cash wages and tips below minimum wage", Amount: line.Amount})
	}

	checkYear := in.Period.CheckDate.Year()
	prior := in.PriorYtd
	if prior.Year == 0 {
		prior.Year = checkYear
	}
	if prior.Year != checkYear {
		if e.strictYtdYear {
			return PaycheckComputation{}, fmt.Errorf("%w: prior=%d checkYear=%d", ErrYtdYearMismatch, prior.Year, checkYear)
		}
		trace.add(Note{Message: fmt.Sprintf("ytd_year_mismatch prior=%d checkYear=%d", prior.Year, checkYear)})
		e.logger.Warn("ytd year mismatch", "paycheckId", in.PaycheckID, "priorYear", prior.Year, "checkYear", checkYear)
	}

	totalGross := sumEarnings(earnings)
	cash := cashGross(earnings)
	e.logger.Debug("earnings computed", "paycheckId", in.PaycheckID, "lines", len(earnings), "grossCents", totalGross)

	ded := computeDeductions(in, totalGross, plans, trace)
	bases := buildBases(earnings, ded.preTax, ded.postTax, plansByCode(plans))
	bases.trace(trace, cur)

	taxes, err := computeTaxes(in, bases, trace)
	if err != nil {
		return PaycheckComputation{}, err
	}
	e.logger.Debug("taxes computed", "paycheckId", in.PaycheckID, "employeeLines", len(taxes.employee), "employerLines", len(taxes.employer))

	preTaxCents := sumDeductions(ded.preTax)
	employeeTaxCents := sumTaxes(taxes.employee)
	garn, err := computeGarnishments(in, garnishmentInputs{gross: cash, preTax: preTaxCents, employeeTax: employeeTaxCents}, plans, trace)
	if err != nil {
		return PaycheckComputation{}, err
	}
	for _, g := range garn.applied {
		if g.ProtectedFloorConstrained {
			e.recorder.ProtectedFloorBound(string(g.Type))
		}
	}
	if garn.supportCapBound {
		e.recorder.SupportCapBound()
	}

	deductions := make([]DeductionLine, 0, len(ded.preTax)+len(garn.lines)+len(ded.postTax))
	deductions = append(deductions, ded.preTax...)
	deductions = append(deductions, garn.lines...)
	deductions = append(deductions, ded.postTax...)

	contributions := make([]EmployerContributionLine, 0, len(ded.employerContributions)+len(in.EmployerContributions))
	contributions = append(contributions, ded.employerContributions...)
	contributions = append(contributions, in.EmployerContributions...)

	garnishmentCents := sumDeductions(garn.lines)
	postTaxCents := sumDeductions(ded.postTax)
	trace.add(Note{Message: fmt.Sprintf("pre_tax_deduction_cents=%d", preTaxCents)})
	trace.add(Note{Message: fmt.Sprintf("garnishment_cents=%d", garnishmentCents)})
	trace.add(Note{Message: fmt.Sprintf("post_tax_deduction_cents=%d", postTaxCents)})

	net := cash - employeeTaxCents - sumDeductions(deductions)

	ytdAfter := Accumulate(prior, YtdDelta{
		Earnings:              earnings,
		EmployeeTaxes:         taxes.employee,
		EmployerTaxes:         taxes.employer,
		Deductions:            deductions,
		EmployerContributions: contributions,
		Bases:                 bases.Amounts,
		Currency:              cur,
	})

	result := PaycheckResult{
		PaycheckID:            in.PaycheckID,
		PayRunID:              in.PayRunID,
		EmployerID:            in.EmployerID,
		EmployeeID:            in.EmployeeID,
		Period:                in.Period,
		Earnings:              earnings,
		EmployeeTaxes:         taxes.employee,
		EmployerTaxes:         taxes.employer,
		Deductions:            deductions,
		EmployerContributions: contributions,
		Gross:                 money.New(cash, cur),
		Net:                   money.New(net, cur),
		YtdAfter:              ytdAfter,
	}
	if e.traceLevel == TraceDebug {
		result.Trace = trace
	}

	planIDs := ded.appliedPlanIDs
	if len(in.Garnishments.Orders) == 0 {
		planIDs = append(append([]string{}, planIDs...), garn.appliedOrderIDs...)
	}
	orderIDs := []string{}
	if len(in.Garnishments.Orders) > 0 {
		orderIDs = garn.appliedOrderIDs
	}

	audit := PaycheckAudit{
		SchemaVersion:              AuditSchemaVersion,
		EngineVersion:              EngineVersion,
		ComputedAt:                 e.now().UTC(),
		TraceLevel:                 e.effectiveTraceLevel(),
		PaycheckID:                 in.PaycheckID,
		PayRunID:                   in.PayRunID,
		EmployerID:                 in.EmployerID,
		EmployeeID:                 in.EmployeeID,
		PayPeriodID:                in.Period.ID,
		CheckDate:                  in.Period.CheckDate,
		AppliedTaxRuleIDs:          dedupe(taxes.appliedRuleIDs),
		AppliedDeductionPlanIDs:    dedupe(planIDs),
		AppliedGarnishmentOrderIDs: dedupe(orderIDs),
		CashGrossCents:             cash,
		GrossTaxableCents:          totalGross,
		EmployeeTaxCents:           employeeTaxCents,
		EmployerTaxCents:           sumTaxes(taxes.employer),
		PreTaxDeductionCents:       preTaxCents,
		GarnishmentCents:           garnishmentCents,
		PostTaxDeductionCents:      postTaxCents,
		EmployerContributionCents:  sumContributions(contributions),
		NetCents:                   net,
		Bases:                      bases.Amounts,
		Garnishments:               garn.applied,
		Notes:                      trace.Notes(),
	}

	e.logger.Debug("paycheck computed",
		"paycheckId", in.PaycheckID,
		"employeeId", in.EmployeeID,
		"grossCents", cash,
		"netCents", net,
		"steps", len(trace.Steps),
	)
	return PaycheckComputation{Paycheck: result, Audit: audit}, nil
}

func (e *Engine) effectiveTraceLevel() TraceLevel {
	if e.traceLevel == "" {
		return TraceAudit
	}
	return e.traceLevel
}

func sumContributions(lines []EmployerContributionLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount.Amount
	}
	return total
}
