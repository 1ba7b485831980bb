package payroll

import (
	"fmt"
	"sort"
	"strings"

	"paycalc/internal/platform/money"
)

type DeductionKind string

const (
	KindPretaxRetirement DeductionKind = "PRETAX_RETIREMENT_EMPLOYEE"
	KindRothRetirement   DeductionKind = "ROTH_RETIREMENT_EMPLOYEE"
	KindHSA              DeductionKind = "HSA"
	KindFSA              DeductionKind = "FSA"
	KindPosttaxVoluntary DeductionKind = "POSTTAX_VOLUNTARY"
	KindGarnishment      DeductionKind = "GARNISHMENT"
	KindOtherPosttax     DeductionKind = "OTHER_POSTTAX"
)

func (k DeductionKind) Valid() bool {
	switch k {
	case KindPretaxRetirement, KindRothRetirement, KindHSA, KindFSA, KindPosttaxVoluntary, KindGarnishment, KindOtherPosttax:
		return true
	}
	return false
}

func (k DeductionKind) preTax() bool {
	return k == KindPretaxRetirement || k == KindHSA || k == KindFSA
}

// orderRank places Section 125 plans first, then pre-tax retirement,
// garnishments and finally post-tax plans.
func (k DeductionKind) orderRank() int {
	switch k {
	case KindHSA, KindFSA:
		return 0
	case KindPretaxRetirement:
		return 1
	case KindGarnishment:
		return 2
	default:
		return 3
	}
}

type DeductionEffect string

const (
	ReducesFederalTaxable      DeductionEffect = "REDUCES_FEDERAL_TAXABLE"
	ReducesStateTaxable        DeductionEffect = "REDUCES_STATE_TAXABLE"
	ReducesSocialSecurityWages DeductionEffect = "REDUCES_SOCIAL_SECURITY_WAGES"
	ReducesMedicareWages       DeductionEffect = "REDUCES_MEDICARE_WAGES"
	NoTaxEffect                DeductionEffect = "NO_TAX_EFFECT"
)

// DefaultEffects is the tax treatment implied by a deduction kind.
func (k DeductionKind) DefaultEffects() []DeductionEffect {
	switch k {
	case KindPretaxRetirement, KindFSA:
		return []DeductionEffect{ReducesFederalTaxable, ReducesStateTaxable}
	case KindHSA:
		return []DeductionEffect{ReducesFederalTaxable, ReducesStateTaxable, ReducesSocialSecurityWages, ReducesMedicareWages}
	default:
		return []DeductionEffect{NoTaxEffect}
	}
}

type DeductionPlan struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Kind            DeductionKind     `json:"kind"`
	Subtype         string            `json:"subtype,omitempty"`
	EmployeeRate    *money.Percent    `json:"employeeRate,omitempty"`
	EmployeeFlat    *money.Money      `json:"employeeFlat,omitempty"`
	EmployerRate    *money.Percent    `json:"employerRate,omitempty"`
	EmployerFlat    *money.Money      `json:"employerFlat,omitempty"`
	AnnualCap       *money.Money      `json:"annualCap,omitempty"`
	PerPeriodCap    *money.Money      `json:"perPeriodCap,omitempty"`
	EmployeeEffects []DeductionEffect `json:"employeeEffects,omitempty"`
}

// NewDeductionPlan validates a plan before it can reach the engine.
func NewDeductionPlan(plan DeductionPlan) (DeductionPlan, error) {
	if err := plan.Validate(); err != nil {
		return DeductionPlan{}, err
	}
	return plan, nil
}

func (p DeductionPlan) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidDeduction)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: plan %s: name is required", ErrInvalidDeduction, p.ID)
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: plan %s: unknown kind %q", ErrInvalidDeduction, p.ID, p.Kind)
	}
	for _, r := range []*money.Percent{p.EmployeeRate, p.EmployerRate} {
		if r != nil && !r.Valid() {
			return fmt.Errorf("%w: plan %s: negative rate", ErrInvalidDeduction, p.ID)
		}
	}
	for _, m := range []*money.Money{p.EmployeeFlat, p.EmployerFlat, p.AnnualCap, p.PerPeriodCap} {
		if m != nil && m.IsNegative() {
			return fmt.Errorf("%w: plan %s: negative amount", ErrInvalidDeduction, p.ID)
		}
	}
	return nil
}

// Effects returns the explicit plan effects, else the kind defaults.
func (p DeductionPlan) Effects() []DeductionEffect {
	if len(p.EmployeeEffects) > 0 {
		return p.EmployeeEffects
	}
	return p.Kind.DefaultEffects()
}

func hasEffect(effects []DeductionEffect, want DeductionEffect) bool {
	for _, e := range effects {
		if e == want {
			return true
		}
	}
	return false
}

// SortDeductionPlans returns plans in evaluation order, ties broken by id.
func SortDeductionPlans(plans []DeductionPlan) []DeductionPlan {
	out := make([]DeductionPlan, len(plans))
	copy(out, plans)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Kind.orderRank(), out[j].Kind.orderRank()
		if ri != rj {
			return ri < rj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeductionConfigRepository supplies the resolved deduction plans for an employer.
type DeductionConfigRepository interface {
	FindPlansForEmployer(employerID EmployerID) []DeductionPlan
}

// NoDeductionConfig is the default repository: no plans, so deductions contribute nothing.
type NoDeductionConfig struct{}

func (NoDeductionConfig) FindPlansForEmployer(EmployerID) []DeductionPlan { return nil }

// StaticDeductionConfig serves plans from memory.
type StaticDeductionConfig map[EmployerID][]DeductionPlan

func (s StaticDeductionConfig) FindPlansForEmployer(employerID EmployerID) []DeductionPlan {
	return s[employerID]
}
