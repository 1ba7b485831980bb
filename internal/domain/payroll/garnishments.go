package payroll

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"paycalc/internal/platform/money"
)

type garnishmentResult struct {
	lines           []DeductionLine
	appliedOrderIDs []string
	applied         []GarnishmentApplied
	supportCapBound bool
}

// garnishmentInputs are the amounts disposable income is derived from.
type garnishmentInputs struct {
	gross       int64
	preTax      int64
	employeeTax int64
}

// disposable returns the formula base and the net used for protected floors.
// Student loans are measured after taxes; every other type before them.
func (g garnishmentInputs) disposable(t GarnishmentType) (base, netForFloor int64) {
	netForFloor = money.Max(0, g.gross-g.preTax-g.employeeTax)
	if t == GarnishmentStudentLoan {
		return netForFloor, netForFloor
	}
	return money.Max(0, g.gross-g.preTax), netForFloor
}

// computeGarnishments dispatches to order-driven mode when orders exist and
// to plan-driven mode otherwise.
func computeGarnishments(in PaycheckInput, g garnishmentInputs, plans []DeductionPlan, trace *CalculationTrace) (garnishmentResult, error) {
	if len(in.Garnishments.Orders) > 0 {
		return computeOrderGarnishments(in, g, plans, trace)
	}
	return computePlanGarnishments(in, g, plans, trace), nil
}

type orderRequest struct {
	order       GarnishmentOrder
	plan        *DeductionPlan
	code        DeductionCode
	disposable  int64
	netForFloor int64
	raw         int64
	requested   int64
	cappedAt    *money.Money
}

func (r orderRequest) effects() []DeductionEffect {
	if r.plan != nil {
		return r.plan.Effects()
	}
	return []DeductionEffect{NoTaxEffect}
}

func computeOrderGarnishments(in PaycheckInput, g garnishmentInputs, plans []DeductionPlan, trace *CalculationTrace) (garnishmentResult, error) {
	cur := in.currency()
	byID := make(map[string]DeductionPlan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}

	orders := SortGarnishmentOrders(in.Garnishments.Orders)
	requests := make([]orderRequest, 0, len(orders))
	for _, order := range orders {
		base, netForFloor := g.disposable(order.Type)
		trace.add(DisposableIncomeComputed{
			OrderID:                   order.OrderID,
			GrossCents:                g.gross,
			MandatoryPreTaxCents:      g.preTax,
			EmployeeTaxCents:          g.employeeTax,
			BaseDisposableCents:       base,
			NetForProtectedFloorCents: netForFloor,
		})

		raw, err := formulaAmount(order.Formula, base, in.Employee.FilingStatus)
		if err != nil {
			return garnishmentResult{}, fmt.Errorf("order %s: %w", order.OrderID, err)
		}
		req := orderRequest{
			order:       order,
			code:        DeductionCode(order.OrderID),
			disposable:  base,
			netForFloor: netForFloor,
		}
		ytd := in.PriorYtd.deductions(req.code)
		amount := raw
		if plan, ok := byID[order.PlanID]; ok {
			req.plan = &plan
			if plan.AnnualCap != nil {
				amount, req.cappedAt = applyCaps(amount, plan.AnnualCap, nil, ytd)
			}
		}
		if order.LifetimeCap != nil {
			var cappedAt *money.Money
			if amount, cappedAt = applyCaps(amount, order.LifetimeCap, nil, ytd); cappedAt != nil {
				req.cappedAt = cappedAt
			}
		}
		if req.plan != nil && req.plan.PerPeriodCap != nil && amount > req.plan.PerPeriodCap.Amount {
			amount = req.plan.PerPeriodCap.Amount
			req.cappedAt = req.plan.PerPeriodCap
		}
		req.raw = raw
		req.requested = money.Max(0, amount)
		requests = append(requests, req)
	}

	var res garnishmentResult
	scaled, bound := applySupportCap(requests, in.Garnishments.SupportCap, trace)
	res.supportCapBound = bound

	var cumulative int64
	for i, req := range requests {
		remaining := req.disposable - cumulative
		if remaining <= 0 {
			continue
		}
		requested := req.requested
		if v, ok := scaled[i]; ok {
			requested = v
		}
		amount := money.Min(requested, remaining)

		step := GarnishmentApplied{
			OrderID:                  req.order.OrderID,
			Type:                     req.order.Type,
			Description:              garnishmentDescription(req),
			RequestedBeforeCapsCents: req.raw,
			RequestedCents:           requested,
			CappedAt:                 req.cappedAt,
			DisposableBeforeCents:    remaining,
		}

		if req.order.ProtectedEarnings != nil {
			floor, err := protectedFloor(req.order.ProtectedEarnings)
			if err != nil {
				return garnishmentResult{}, fmt.Errorf("order %s: %w", req.order.OrderID, err)
			}
			step.ProtectedFloorCents = &floor
			maxByFloor := money.Max(0, req.netForFloor-cumulative-floor)
			if amount > maxByFloor {
				trace.add(ProtectedEarningsApplied{
					OrderID:        req.order.OrderID,
					RequestedCents: amount,
					AdjustedCents:  maxByFloor,
					FloorCents:     floor,
				})
				amount = maxByFloor
				step.ProtectedFloorConstrained = true
			}
		}

		if req.order.ArrearsBefore != nil {
			arrears := req.order.ArrearsBefore.Amount
			toArrears := money.Min(amount, arrears)
			current := amount - toArrears
			after := arrears - toArrears
			step.ArrearsBeforeCents = &arrears
			step.ArrearsAfterCents = &after
			step.AppliedToArrearsCents = &toArrears
			step.AppliedToCurrentCents = &current
		}

		step.AppliedCents = amount
		step.DisposableAfterCents = remaining - amount
		trace.add(step)
		res.applied = append(res.applied, step)
		res.appliedOrderIDs = append(res.appliedOrderIDs, string(req.order.OrderID))

		if amount <= 0 {
			continue
		}
		cumulative += amount
		line := DeductionLine{Code: req.code, Description: step.Description, Amount: money.New(amount, cur)}
		res.lines = append(res.lines, line)
		trace.add(DeductionApplied{
			Code:        line.Code,
			Description: line.Description,
			Basis:       money.New(req.disposable, cur),
			Amount:      line.Amount,
			CappedAt:    req.cappedAt,
			Effects:     req.effects(),
		})
	}
	return res, nil
}

// applySupportCap scales support orders proportionally when their total
// request exceeds the aggregate cap. The last support order in sort order
// absorbs the rounding remainder so the scaled amounts sum to the cap.
func applySupportCap(requests []orderRequest, ctx *SupportCapContext, trace *CalculationTrace) (map[int]int64, bool) {
	if ctx == nil {
		return nil, false
	}
	var (
		idx           []int
		total         int64
		minDisposable int64 = -1
	)
	for i, r := range requests {
		if !r.order.support() {
			continue
		}
		idx = append(idx, i)
		total += r.requested
		if minDisposable < 0 || r.disposable < minDisposable {
			minDisposable = r.disposable
		}
	}
	if len(idx) == 0 {
		return nil, false
	}

	limit := ComputeSupportCap(minDisposable, *ctx)
	if total <= limit.Effective {
		return nil, false
	}

	scaled := make(map[int]int64, len(idx))
	var assigned int64
	for n, i := range idx {
		if n == len(idx)-1 {
			scaled[i] = limit.Effective - assigned
			break
		}
		share := money.MulDivTrunc(limit.Effective, decimal.NewFromInt(requests[i].requested), decimal.NewFromInt(total))
		scaled[i] = share
		assigned += share
	}
	trace.add(SupportCapApplied{
		JurisdictionCode:    ctx.JurisdictionCode,
		CcpaCapCents:        limit.Ccpa,
		StateCapCents:       limit.State,
		EffectiveCapCents:   limit.Effective,
		TotalRequestedCents: total,
		TotalAppliedCents:   limit.Effective,
	})
	return scaled, true
}

func garnishmentDescription(r orderRequest) string {
	switch {
	case r.plan != nil && r.plan.Name != "":
		return r.plan.Name
	case r.order.CaseNumber != "":
		return r.order.CaseNumber
	default:
		return string(r.order.OrderID)
	}
}

// formulaAmount computes an order's raw request against disposable income.
func formulaAmount(formula GarnishmentFormula, disposable int64, status FilingStatus) (int64, error) {
	switch f := formula.(type) {
	case PercentOfDisposable:
		return f.Percent.Of(disposable), nil
	case FixedAmountPerPeriod:
		return f.Amount.Amount, nil
	case LesserOfPercentOrAmount:
		return money.Min(f.Percent.Of(disposable), f.Amount.Amount), nil
	case LevyWithBands:
		band, ok := selectLevyBand(f.Bands, disposable, status)
		if !ok {
			return 0, nil
		}
		return money.Max(0, disposable-band.ExemptCents), nil
	default:
		return 0, fmt.Errorf("%w: unsupported formula %T", ErrInvalidGarnishment, formula)
	}
}

// selectLevyBand filters bands by filing status, then takes the first band
// covering disposable in ascending upTo order, falling back to the last.
func selectLevyBand(bands []LevyBand, disposable int64, status FilingStatus) (LevyBand, bool) {
	var matching []LevyBand
	for _, b := range bands {
		if b.FilingStatus == nil || *b.FilingStatus == status {
			matching = append(matching, b)
		}
	}
	if len(matching) == 0 {
		return LevyBand{}, false
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return levyUpper(matching[i]) < levyUpper(matching[j])
	})
	for _, b := range matching {
		if levyUpper(b) >= disposable {
			return b, true
		}
	}
	return matching[len(matching)-1], true
}

func levyUpper(b LevyBand) int64 {
	if b.UpToCents == nil {
		return upperBound(nil)
	}
	return *b.UpToCents
}

// protectedFloor is the net pay an order must leave the employee.
func protectedFloor(rule ProtectedEarningsRule) (int64, error) {
	switch r := rule.(type) {
	case FixedFloor:
		return r.Amount.Amount, nil
	case MultipleOfMinWage:
		factor := decimal.NewFromFloat(r.Hours).Mul(decimal.NewFromFloat(r.Multiplier))
		return r.HourlyRate.MulTrunc(factor).Amount, nil
	default:
		return 0, fmt.Errorf("%w: unsupported protected earnings rule %T", ErrInvalidGarnishment, rule)
	}
}

// computePlanGarnishments derives garnishments from GARNISHMENT-kind plans
// when no orders are supplied. Each is capped by what remains of gross after
// pre-tax deductions and earlier garnishments.
func computePlanGarnishments(in PaycheckInput, g garnishmentInputs, plans []DeductionPlan, trace *CalculationTrace) garnishmentResult {
	cur := in.currency()
	ceiling := money.Max(0, g.gross-g.preTax)
	var (
		res        garnishmentResult
		cumulative int64
	)
	for _, plan := range SortDeductionPlans(plans) {
		if plan.Kind != KindGarnishment {
			continue
		}
		code := DeductionCode(plan.ID)
		raw := planAmount(g.gross, plan.EmployeeRate, plan.EmployeeFlat)
		if raw <= 0 {
			continue
		}
		amount, cappedAt := applyCaps(raw, plan.AnnualCap, plan.PerPeriodCap, in.PriorYtd.deductions(code))
		amount = money.Min(amount, ceiling-cumulative)
		if amount <= 0 {
			continue
		}
		cumulative += amount
		line := DeductionLine{Code: code, Description: plan.Name, Amount: money.New(amount, cur)}
		res.lines = append(res.lines, line)
		res.appliedOrderIDs = append(res.appliedOrderIDs, plan.ID)
		trace.add(DeductionApplied{
			Code:        code,
			Description: plan.Name,
			Basis:       money.New(g.gross, cur),
			Rate:        plan.EmployeeRate,
			Amount:      line.Amount,
			CappedAt:    cappedAt,
			Effects:     plan.Effects(),
		})
	}
	return res
}
