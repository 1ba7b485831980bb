package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/platform/money"
)

const dateLayout = "2006-01-02"

var ErrInvalidScenario = errors.New("invalid scenario")

// converter carries the file currency into every amount it builds.
type converter struct {
	currency string
}

func (c converter) money(cents int64) money.Money {
	return money.New(cents, c.currency)
}

func (c converter) moneyPtr(cents *int64) *money.Money {
	if cents == nil {
		return nil
	}
	m := c.money(*cents)
	return &m
}

func percent(field, value string) (money.Percent, error) {
	p, err := money.NewPercent(value)
	if err != nil {
		return money.Percent{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidScenario, field, value, err)
	}
	return p, nil
}

func optionalPercent(field, value string) (*money.Percent, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	p, err := percent(field, value)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidScenario, field, value, err)
	}
	return t, nil
}

func optionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c converter) earningDefinition(d EarningDefinitionDTO) (payroll.EarningDefinition, error) {
	def := payroll.EarningDefinition{
		Code:        payroll.EarningCode(d.Code),
		DisplayName: d.DisplayName,
		Category:    payroll.EarningCategory(strings.ToUpper(d.Category)),
		DefaultRate: c.moneyPtr(d.DefaultRate),
	}
	if d.OvertimeMultiplier != "" {
		m, err := decimal.NewFromString(d.OvertimeMultiplier)
		if err != nil {
			return payroll.EarningDefinition{}, fmt.Errorf("%w: earning %s overtimeMultiplier: %v", ErrInvalidScenario, d.Code, err)
		}
		def.OvertimeMultiplier = &m
	}
	return def, nil
}

func (c converter) deductionPlan(d DeductionPlanDTO) (payroll.DeductionPlan, error) {
	employeeRate, err := optionalPercent("employeeRate", d.EmployeeRate)
	if err != nil {
		return payroll.DeductionPlan{}, err
	}
	employerRate, err := optionalPercent("employerRate", d.EmployerRate)
	if err != nil {
		return payroll.DeductionPlan{}, err
	}
	var effects []payroll.DeductionEffect
	for _, e := range d.Effects {
		effects = append(effects, payroll.DeductionEffect(strings.ToUpper(e)))
	}
	return payroll.NewDeductionPlan(payroll.DeductionPlan{
		ID:              d.ID,
		Name:            d.Name,
		Kind:            payroll.DeductionKind(strings.ToUpper(d.Kind)),
		Subtype:         d.Subtype,
		EmployeeRate:    employeeRate,
		EmployeeFlat:    c.moneyPtr(d.EmployeeFlat),
		EmployerRate:    employerRate,
		EmployerFlat:    c.moneyPtr(d.EmployerFlat),
		AnnualCap:       c.moneyPtr(d.AnnualCap),
		PerPeriodCap:    c.moneyPtr(d.PerPeriodCap),
		EmployeeEffects: effects,
	})
}

func (c converter) compensation(d CompensationDTO) (payroll.BaseCompensation, error) {
	switch strings.ToLower(d.Kind) {
	case "hourly":
		return payroll.Hourly{HourlyRate: c.money(d.Rate)}, nil
	case "salaried":
		return payroll.Salaried{AnnualSalary: c.money(d.Annual), Frequency: payroll.PayFrequency(strings.ToUpper(d.Frequency))}, nil
	default:
		return nil, fmt.Errorf("%w: compensation kind %q", ErrInvalidScenario, d.Kind)
	}
}

func (c converter) taxRule(d TaxRuleDTO) (payroll.TaxRule, error) {
	meta := payroll.RuleMeta{
		ID: d.ID,
		Jurisdiction: payroll.TaxJurisdiction{
			Type: payroll.TaxJurisdictionType(strings.ToUpper(d.Jurisdiction.Type)),
			Code: d.Jurisdiction.Code,
		},
		Basis:          payroll.TaxBasis(d.Basis),
		LocalityFilter: d.Locality,
		FilingStatus:   payroll.FilingStatus(strings.ToUpper(d.FilingStatus)),
	}
	switch strings.ToLower(d.Kind) {
	case "flat":
		rate, err := percent("rate", d.Rate)
		if err != nil {
			return nil, err
		}
		return payroll.NewFlatRateTax(meta, rate, c.moneyPtr(d.AnnualWageCap))
	case "bracketed":
		brackets := make([]payroll.TaxBracket, 0, len(d.Brackets))
		for _, b := range d.Brackets {
			rate, err := percent("bracket rate", b.Rate)
			if err != nil {
				return nil, err
			}
			brackets = append(brackets, payroll.TaxBracket{UpTo: c.moneyPtr(b.UpTo), Rate: rate})
		}
		return payroll.NewBracketedIncomeTax(meta, brackets, c.moneyPtr(d.StandardDeduction), c.moneyPtr(d.AdditionalWithholding))
	case "wage_bracket":
		rows := make([]payroll.WageBracketRow, 0, len(d.Rows))
		for _, r := range d.Rows {
			rows = append(rows, payroll.WageBracketRow{UpTo: c.moneyPtr(r.UpTo), Tax: c.money(r.Tax)})
		}
		return payroll.NewWageBracketTax(meta, rows)
	default:
		return nil, fmt.Errorf("%w: rule %s: tax rule kind %q", ErrInvalidScenario, d.ID, d.Kind)
	}
}

func (c converter) taxRules(in []TaxRuleDTO) ([]payroll.TaxRule, error) {
	out := make([]payroll.TaxRule, 0, len(in))
	for _, d := range in {
		rule, err := c.taxRule(d)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

func (c converter) taxContext(d TaxesDTO) (payroll.TaxContext, error) {
	var (
		ctx payroll.TaxContext
		err error
	)
	if ctx.Federal, err = c.taxRules(d.Federal); err != nil {
		return ctx, err
	}
	if ctx.State, err = c.taxRules(d.State); err != nil {
		return ctx, err
	}
	if ctx.Local, err = c.taxRules(d.Local); err != nil {
		return ctx, err
	}
	if ctx.EmployerSpecific, err = c.taxRules(d.Employer); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (c converter) formula(d FormulaDTO) (payroll.GarnishmentFormula, error) {
	switch strings.ToLower(d.Kind) {
	case "percent":
		p, err := percent("formula percent", d.Percent)
		if err != nil {
			return nil, err
		}
		return payroll.PercentOfDisposable{Percent: p}, nil
	case "fixed":
		return payroll.FixedAmountPerPeriod{Amount: c.money(d.Amount)}, nil
	case "lesser":
		p, err := percent("formula percent", d.Percent)
		if err != nil {
			return nil, err
		}
		return payroll.LesserOfPercentOrAmount{Percent: p, Amount: c.money(d.Amount)}, nil
	case "levy":
		bands := make([]payroll.LevyBand, 0, len(d.Bands))
		for _, b := range d.Bands {
			band := payroll.LevyBand{UpToCents: b.UpTo, ExemptCents: b.Exempt}
			if b.FilingStatus != "" {
				fs := payroll.FilingStatus(strings.ToUpper(b.FilingStatus))
				band.FilingStatus = &fs
			}
			bands = append(bands, band)
		}
		return payroll.LevyWithBands{Bands: bands}, nil
	default:
		return nil, fmt.Errorf("%w: formula kind %q", ErrInvalidScenario, d.Kind)
	}
}

func (c converter) protectedEarnings(d *ProtectedEarningsDTO) (payroll.ProtectedEarningsRule, error) {
	if d == nil {
		return nil, nil
	}
	switch strings.ToLower(d.Kind) {
	case "fixed":
		return payroll.FixedFloor{Amount: c.money(d.Amount)}, nil
	case "min_wage_multiple":
		return payroll.MultipleOfMinWage{HourlyRate: c.money(d.HourlyRate), Hours: d.Hours, Multiplier: d.Multiplier}, nil
	default:
		return nil, fmt.Errorf("%w: protected earnings kind %q", ErrInvalidScenario, d.Kind)
	}
}

func (c converter) garnishments(d GarnishmentsDTO) (payroll.GarnishmentContext, error) {
	var ctx payroll.GarnishmentContext
	for _, o := range d.Orders {
		formula, err := c.formula(o.Formula)
		if err != nil {
			return ctx, fmt.Errorf("order %s: %w", o.ID, err)
		}
		protected, err := c.protectedEarnings(o.ProtectedEarnings)
		if err != nil {
			return ctx, fmt.Errorf("order %s: %w", o.ID, err)
		}
		order, err := payroll.NewGarnishmentOrder(payroll.GarnishmentOrder{
			OrderID:             payroll.GarnishmentOrderID(o.ID),
			PlanID:              o.PlanID,
			Type:                payroll.GarnishmentType(strings.ToUpper(o.Type)),
			CaseNumber:          o.CaseNumber,
			PriorityClass:       o.PriorityClass,
			SequenceWithinClass: o.Sequence,
			Formula:             formula,
			ProtectedEarnings:   protected,
			ArrearsBefore:       c.moneyPtr(o.ArrearsBefore),
			LifetimeCap:         c.moneyPtr(o.LifetimeCap),
		})
		if err != nil {
			return ctx, err
		}
		ctx.Orders = append(ctx.Orders, order)
	}
	if sc := d.SupportCap; sc != nil {
		params := payroll.SupportCapParams{}
		var err error
		if params.MaxRateWhenSupportingOthers, err = percent("maxRateWhenSupportingOthers", sc.MaxRateWhenSupportingOthers); err != nil {
			return ctx, err
		}
		if params.MaxRateWhenNotSupportingOthers, err = percent("maxRateWhenNotSupportingOthers", sc.MaxRateWhenNotSupportingOthers); err != nil {
			return ctx, err
		}
		if sc.ArrearsBonusRate != "" {
			if params.ArrearsBonusRate, err = percent("arrearsBonusRate", sc.ArrearsBonusRate); err != nil {
				return ctx, err
			}
		}
		if params.StateAggregateCapRate, err = optionalPercent("stateAggregateCapRate", sc.StateAggregateCapRate); err != nil {
			return ctx, err
		}
		ctx.SupportCap = &payroll.SupportCapContext{
			Params:                  params,
			SupportsOtherDependents: sc.SupportsOtherDependents,
			ArrearsAtLeast12Weeks:   sc.ArrearsAtLeast12Weeks,
			JurisdictionCode:        sc.JurisdictionCode,
		}
	}
	return ctx, nil
}

func (c converter) ytd(d YtdDTO) payroll.YtdSnapshot {
	snap := payroll.YtdSnapshot{Year: d.Year}
	for k, v := range d.WagesByBasis {
		if snap.WagesByBasis == nil {
			snap.WagesByBasis = make(map[payroll.TaxBasis]money.Money)
		}
		snap.WagesByBasis[payroll.TaxBasis(k)] = c.money(v)
	}
	for k, v := range d.DeductionsByCode {
		if snap.DeductionsByCode == nil {
			snap.DeductionsByCode = make(map[payroll.DeductionCode]money.Money)
		}
		snap.DeductionsByCode[payroll.DeductionCode(k)] = c.money(v)
	}
	for k, v := range d.EarningsByCode {
		if snap.EarningsByCode == nil {
			snap.EarningsByCode = make(map[payroll.EarningCode]money.Money)
		}
		snap.EarningsByCode[payroll.EarningCode(k)] = c.money(v)
	}
	return snap
}

func (c converter) timeSlice(d TimeSliceDTO) (payroll.TimeSlice, error) {
	ts := payroll.TimeSlice{
		RegularHours:         d.RegularHours,
		OvertimeHours:        d.OvertimeHours,
		SuppressBaseEarnings: d.SuppressBaseEarnings,
		LocalityAllocations:  d.LocalityAllocations,
	}
	if p := d.Proration; p != nil {
		num, err := decimal.NewFromString(p.Numerator)
		if err != nil {
			return ts, fmt.Errorf("%w: proration numerator: %v", ErrInvalidScenario, err)
		}
		proration := payroll.NewProration(num)
		if p.Denominator != "" {
			if proration.Denominator, err = decimal.NewFromString(p.Denominator); err != nil {
				return ts, fmt.Errorf("%w: proration denominator: %v", ErrInvalidScenario, err)
			}
		}
		ts.Proration = &proration
	}
	for _, e := range d.OtherEarnings {
		ts.OtherEarnings = append(ts.OtherEarnings, payroll.EarningInput{
			Code:   payroll.EarningCode(e.Code),
			Units:  e.Units,
			Rate:   c.moneyPtr(e.Rate),
			Amount: c.moneyPtr(e.Amount),
		})
	}
	return ts, nil
}

// input converts one paycheck. flsaEnterpriseCovered defaults to true.
func (c converter) input(d PaycheckDTO) (payroll.PaycheckInput, error) {
	start, err := parseDate("period start", d.Period.Start)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	end, err := parseDate("period end", d.Period.End)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	check, err := parseDate("period check", d.Period.Check)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	hire, err := optionalDate("hireDate", d.Employee.HireDate)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	term, err := optionalDate("terminationDate", d.Employee.TerminationDate)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	comp, err := c.compensation(d.Employee.Compensation)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	slice, err := c.timeSlice(d.TimeSlice)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	taxes, err := c.taxContext(d.Taxes)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}
	garnishments, err := c.garnishments(d.Garnishments)
	if err != nil {
		return payroll.PaycheckInput{}, err
	}

	covered := true
	if d.Employee.FlsaEnterpriseCovered != nil {
		covered = *d.Employee.FlsaEnterpriseCovered
	}
	employmentType := payroll.EmploymentType(strings.ToUpper(d.Employee.EmploymentType))
	if employmentType == "" {
		employmentType = payroll.EmploymentRegular
	}
	exempt := payroll.FlsaExemptStatus(strings.ToUpper(d.Employee.FlsaExemptStatus))
	if exempt == "" {
		exempt = payroll.FlsaNonExempt
	}

	in := payroll.PaycheckInput{
		PaycheckID: payroll.PaycheckID(d.PaycheckID),
		PayRunID:   payroll.PayRunID(d.PayRunID),
		EmployerID: payroll.EmployerID(d.EmployerID),
		EmployeeID: payroll.EmployeeID(d.EmployeeID),
		Period: payroll.PayPeriod{
			ID:             d.Period.ID,
			EmployerID:     payroll.EmployerID(d.EmployerID),
			StartDate:      start,
			EndDate:        end,
			CheckDate:      check,
			Frequency:      payroll.PayFrequency(strings.ToUpper(d.Period.Frequency)),
			SequenceInYear: d.Period.Sequence,
		},
		Employee: payroll.EmployeeSnapshot{
			EmployerID:                     payroll.EmployerID(d.EmployerID),
			EmployeeID:                     payroll.EmployeeID(d.EmployeeID),
			HomeState:                      d.Employee.HomeState,
			WorkState:                      d.Employee.WorkState,
			WorkCity:                       d.Employee.WorkCity,
			FilingStatus:                   payroll.FilingStatus(strings.ToUpper(d.Employee.FilingStatus)),
			EmploymentType:                 employmentType,
			BaseCompensation:               comp,
			HireDate:                       hire,
			TerminationDate:                term,
			AdditionalWithholdingPerPeriod: c.moneyPtr(d.Employee.AdditionalWithholding),
			FicaExempt:                     d.Employee.FicaExempt,
			FlsaEnterpriseCovered:          covered,
			FlsaExemptStatus:               exempt,
			IsTippedEmployee:               d.Employee.Tipped,
		},
		TimeSlice:    slice,
		TaxContext:   taxes,
		Garnishments: garnishments,
		PriorYtd:     c.ytd(d.PriorYtd),
	}
	if s := d.PaySchedule; s != nil {
		schedule, err := payroll.NewPaySchedule(payroll.PayFrequency(strings.ToUpper(s.Frequency)), s.PeriodsPerYear)
		if err != nil {
			return payroll.PaycheckInput{}, err
		}
		in.PaySchedule = &schedule
	}
	if l := d.LaborStandards; l != nil {
		in.LaborStandards = &payroll.LaborStandardsContext{
			FederalMinimumWage: c.money(l.FederalMinimumWage),
			StateMinimumWage:   c.moneyPtr(l.StateMinimumWage),
			TippedCashMinimum:  c.moneyPtr(l.TippedCashMinimum),
		}
	}
	for _, ec := range d.EmployerContributions {
		in.EmployerContributions = append(in.EmployerContributions, payroll.EmployerContributionLine{
			Code:        ec.Code,
			Description: ec.Description,
			Amount:      c.money(ec.Amount),
		})
	}
	return in, nil
}
