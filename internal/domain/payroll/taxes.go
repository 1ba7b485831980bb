package payroll

import (
	"fmt"
	"strings"

	"paycalc/internal/platform/money"
)

type taxResult struct {
	employee       []TaxLine
	employer       []TaxLine
	appliedRuleIDs []string
}

// taxRun carries per-paycheck state shared across rule evaluations.
type taxRun struct {
	in         PaycheckInput
	bases      Bases
	currency   string
	localities map[TaxBasis]map[string]int64
	extraDone  bool
	trace      *CalculationTrace
}

// computeTaxes applies employee rules (federal, state, local in that order)
// and then employer rules.
func computeTaxes(in PaycheckInput, bases Bases, trace *CalculationTrace) (taxResult, error) {
	run := &taxRun{
		in:       in,
		bases:    bases,
		currency: in.currency(),
		trace:    trace,
	}
	employeeRules := in.TaxContext.employeeRules()
	run.localities = localityShares(employeeRules, bases, in.TimeSlice.LocalityAllocations)

	var res taxResult
	for _, rule := range employeeRules {
		line, ok, err := run.apply(rule, false)
		if err != nil {
			return taxResult{}, err
		}
		if ok {
			res.employee = append(res.employee, line)
			res.appliedRuleIDs = append(res.appliedRuleIDs, line.RuleID)
		}
	}
	for _, rule := range in.TaxContext.EmployerSpecific {
		line, ok, err := run.apply(rule, true)
		if err != nil {
			return taxResult{}, err
		}
		if ok {
			res.employer = append(res.employer, line)
			res.appliedRuleIDs = append(res.appliedRuleIDs, line.RuleID)
		}
	}
	return res, nil
}

// localityShares allocates each basis referenced by a LOCAL rule with a
// locality filter across the distinct localities for that basis.
func localityShares(rules []TaxRule, bases Bases, fractions map[string]float64) map[TaxBasis]map[string]int64 {
	byBasis := make(map[TaxBasis][]string)
	seen := make(map[TaxBasis]map[string]bool)
	for _, rule := range rules {
		meta := rule.Meta()
		if meta.Jurisdiction.Type != JurisdictionLocal || strings.TrimSpace(meta.LocalityFilter) == "" {
			continue
		}
		key := normalizeLocality(meta.LocalityFilter)
		if seen[meta.Basis] == nil {
			seen[meta.Basis] = make(map[string]bool)
		}
		if !seen[meta.Basis][key] {
			seen[meta.Basis][key] = true
			byBasis[meta.Basis] = append(byBasis[meta.Basis], key)
		}
	}
	out := make(map[TaxBasis]map[string]int64, len(byBasis))
	for basis, keys := range byBasis {
		out[basis] = AllocateLocalities(bases.amount(basis), keys, fractions)
	}
	return out
}

func (r *taxRun) basisFor(meta RuleMeta) int64 {
	if meta.Jurisdiction.Type == JurisdictionLocal && strings.TrimSpace(meta.LocalityFilter) != "" {
		return r.localities[meta.Basis][normalizeLocality(meta.LocalityFilter)]
	}
	return r.bases.amount(meta.Basis)
}

// takeExtraWithholding hands out the employee's per-period extra withholding
// once, to the first applicable federal rule on an income basis with a
// non-zero basis. That rule withholds it even when its own tax is zero.
func (r *taxRun) takeExtraWithholding(meta RuleMeta, employer bool) int64 {
	extra := r.in.Employee.AdditionalWithholdingPerPeriod
	if employer || r.extraDone || extra == nil || extra.Amount <= 0 {
		return 0
	}
	if meta.Jurisdiction.Type != JurisdictionFederal {
		return 0
	}
	if meta.Basis != BasisGross && meta.Basis != BasisFederalTaxable {
		return 0
	}
	r.extraDone = true
	r.trace.add(AdditionalWithholdingApplied{RuleID: meta.ID, Amount: *extra})
	return extra.Amount
}

func (r *taxRun) apply(rule TaxRule, employer bool) (TaxLine, bool, error) {
	meta := rule.Meta()
	if meta.FilingStatus != "" && meta.FilingStatus != r.in.Employee.FilingStatus {
		return TaxLine{}, false, nil
	}
	basis := r.basisFor(meta)
	if basis <= 0 {
		return TaxLine{}, false, nil
	}
	if ficaExempt(r.in, meta.Basis, r.bases.amount(meta.Basis)) {
		return TaxLine{}, false, nil
	}

	taxable := basis
	extra := r.takeExtraWithholding(meta, employer)
	var (
		amount   int64
		rate     *money.Percent
		brackets []BracketApplication
	)
	switch t := rule.(type) {
	case FlatRateTax:
		if t.AnnualWageCap != nil {
			remaining := t.AnnualWageCap.Amount - r.in.PriorYtd.wages(meta.Basis)
			taxable = money.Max(0, money.Min(basis, remaining))
		}
		rr := t.Rate
		rate = &rr
		amount = t.Rate.Of(taxable) + extra

	case BracketedIncomeTax:
		if strings.HasPrefix(meta.ID, AdditionalMedicareRulePrefix) {
			taxable = additionalMedicareWages(r.in.PriorYtd.wages(meta.Basis), basis)
			rr := money.MustPercent(additionalMedicareRate)
			rate = &rr
			amount = rr.Of(taxable) + extra
			break
		}
		if t.StandardDeduction != nil {
			taxable = money.Max(0, basis-t.StandardDeduction.Amount)
		}
		amount, brackets = r.walkBrackets(t.Brackets, taxable)
		if t.AdditionalWithholding != nil {
			amount += t.AdditionalWithholding.Amount
		}
		amount += extra

	case WageBracketTax:
		if row, ok := selectWageBracket(t.Brackets, basis); ok {
			amount = row.Tax.Amount
		}
		amount += extra

	default:
		return TaxLine{}, false, fmt.Errorf("%w: unsupported rule type %T", ErrInvalidTaxRule, rule)
	}

	if amount <= 0 {
		return TaxLine{}, false, nil
	}
	owner := "Employee"
	if employer {
		owner = "Employer"
	}
	line := TaxLine{
		RuleID:       meta.ID,
		Jurisdiction: meta.Jurisdiction,
		Description:  fmt.Sprintf("%s tax %s", owner, meta.ID),
		Basis:        money.New(taxable, r.currency),
		Rate:         rate,
		Amount:       money.New(amount, r.currency),
	}
	r.trace.add(TaxApplied{
		RuleID:       meta.ID,
		Jurisdiction: meta.Jurisdiction,
		Employer:     employer,
		Basis:        line.Basis,
		Brackets:     brackets,
		Rate:         rate,
		Amount:       line.Amount,
	})
	return line, true, nil
}

// walkBrackets taxes each span of taxable income at its bracket rate. Each
// span is truncated separately.
func (r *taxRun) walkBrackets(brackets []TaxBracket, taxable int64) (int64, []BracketApplication) {
	var (
		total   int64
		lower   int64
		applied []BracketApplication
	)
	for _, b := range sortedTaxBrackets(brackets) {
		if taxable <= lower {
			break
		}
		upper := upperBound(b.UpTo)
		span := money.Min(taxable, upper) - lower
		tax := b.Rate.Of(span)
		total += tax
		applied = append(applied, BracketApplication{
			UpTo:      b.UpTo,
			Rate:      b.Rate,
			AppliedTo: money.New(span, r.currency),
			Amount:    money.New(tax, r.currency),
		})
		lower = upper
	}
	return total, applied
}

// selectWageBracket returns the first row whose upper bound covers amount.
func selectWageBracket(rows []WageBracketRow, amount int64) (WageBracketRow, bool) {
	for _, row := range sortedWageRows(rows) {
		if upperBound(row.UpTo) >= amount {
			return row, true
		}
	}
	return WageBracketRow{}, false
}

// additionalMedicareWages is the part of the current period's Medicare wages
// above the annual threshold, measured against prior YTD wages.
func additionalMedicareWages(priorYtd, current int64) int64 {
	after := priorYtd + current
	if after <= additionalMedicareThresholdCents {
		return 0
	}
	start := money.Max(priorYtd, additionalMedicareThresholdCents)
	return after - start
}
