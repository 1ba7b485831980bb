package payroll

import (
	"fmt"
	"sort"
	"strings"

	"paycalc/internal/platform/money"
)

type GarnishmentType string

const (
	GarnishmentChildSupport   GarnishmentType = "CHILD_SUPPORT"
	GarnishmentFederalTaxLevy GarnishmentType = "FEDERAL_TAX_LEVY"
	GarnishmentStateTaxLevy   GarnishmentType = "STATE_TAX_LEVY"
	GarnishmentStudentLoan    GarnishmentType = "STUDENT_LOAN"
	GarnishmentCreditor       GarnishmentType = "CREDITOR_GARNISHMENT"
	GarnishmentBankruptcy     GarnishmentType = "BANKRUPTCY"
	GarnishmentOther          GarnishmentType = "OTHER"
)

func (t GarnishmentType) Valid() bool {
	switch t {
	case GarnishmentChildSupport, GarnishmentFederalTaxLevy, GarnishmentStateTaxLevy,
		GarnishmentStudentLoan, GarnishmentCreditor, GarnishmentBankruptcy, GarnishmentOther:
		return true
	}
	return false
}

type GarnishmentOrderID string

// GarnishmentFormula is one of PercentOfDisposable, FixedAmountPerPeriod,
// LesserOfPercentOrAmount or LevyWithBands.
//
//sumtype:decl
type GarnishmentFormula interface {
	isGarnishmentFormula()
}

type PercentOfDisposable struct {
	Percent money.Percent `json:"percent"`
}

type FixedAmountPerPeriod struct {
	Amount money.Money `json:"amount"`
}

type LesserOfPercentOrAmount struct {
	Percent money.Percent `json:"percent"`
	Amount  money.Money   `json:"amount"`
}

// LevyBand exempts ExemptCents of disposable income up to UpToCents. A nil
// UpToCents covers everything above; a nil FilingStatus matches everyone.
type LevyBand struct {
	UpToCents    *int64        `json:"upToCents,omitempty"`
	ExemptCents  int64         `json:"exemptCents"`
	FilingStatus *FilingStatus `json:"filingStatus,omitempty"`
}

type LevyWithBands struct {
	Bands []LevyBand `json:"bands"`
}

func (PercentOfDisposable) isGarnishmentFormula()     {}
func (FixedAmountPerPeriod) isGarnishmentFormula()    {}
func (LesserOfPercentOrAmount) isGarnishmentFormula() {}
func (LevyWithBands) isGarnishmentFormula()           {}

// ProtectedEarningsRule is either FixedFloor or MultipleOfMinWage.
//
//sumtype:decl
type ProtectedEarningsRule interface {
	isProtectedEarningsRule()
}

type FixedFloor struct {
	Amount money.Money `json:"amount"`
}

type MultipleOfMinWage struct {
	HourlyRate money.Money `json:"hourlyRate"`
	Hours      float64     `json:"hours"`
	Multiplier float64     `json:"multiplier"`
}

func (FixedFloor) isProtectedEarningsRule()        {}
func (MultipleOfMinWage) isProtectedEarningsRule() {}

type GarnishmentOrder struct {
	OrderID             GarnishmentOrderID    `json:"orderId"`
	PlanID              string                `json:"planId"`
	Type                GarnishmentType       `json:"type"`
	IssuingJurisdiction *TaxJurisdiction      `json:"issuingJurisdiction,omitempty"`
	CaseNumber          string                `json:"caseNumber,omitempty"`
	PriorityClass       int                   `json:"priorityClass"`
	SequenceWithinClass int                   `json:"sequenceWithinClass"`
	Formula             GarnishmentFormula    `json:"-"`
	ProtectedEarnings   ProtectedEarningsRule `json:"-"`
	ArrearsBefore       *money.Money          `json:"arrearsBefore,omitempty"`
	LifetimeCap         *money.Money          `json:"lifetimeCap,omitempty"`
}

func (o GarnishmentOrder) support() bool {
	return o.Type == GarnishmentChildSupport
}

// NewGarnishmentOrder validates the order's formula and protection rule.
func NewGarnishmentOrder(order GarnishmentOrder) (GarnishmentOrder, error) {
	if err := order.Validate(); err != nil {
		return GarnishmentOrder{}, err
	}
	return order, nil
}

func (o GarnishmentOrder) Validate() error {
	if strings.TrimSpace(string(o.OrderID)) == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidGarnishment)
	}
	if !o.Type.Valid() {
		return fmt.Errorf("%w: order %s: unknown type %q", ErrInvalidGarnishment, o.OrderID, o.Type)
	}
	if err := validateFormula(o.Formula); err != nil {
		return fmt.Errorf("order %s: %w", o.OrderID, err)
	}
	switch p := o.ProtectedEarnings.(type) {
	case nil:
	case FixedFloor:
		if p.Amount.IsNegative() {
			return fmt.Errorf("%w: order %s: negative protected floor", ErrInvalidGarnishment, o.OrderID)
		}
	case MultipleOfMinWage:
		if p.HourlyRate.IsNegative() || p.Hours < 0 || p.Multiplier < 0 {
			return fmt.Errorf("%w: order %s: negative protected earnings parameter", ErrInvalidGarnishment, o.OrderID)
		}
	default:
		return fmt.Errorf("%w: order %s: unsupported protected earnings rule %T", ErrInvalidGarnishment, o.OrderID, p)
	}
	for _, m := range []*money.Money{o.ArrearsBefore, o.LifetimeCap} {
		if m != nil && m.IsNegative() {
			return fmt.Errorf("%w: order %s: negative amount", ErrInvalidGarnishment, o.OrderID)
		}
	}
	return nil
}

func validateFormula(formula GarnishmentFormula) error {
	switch f := formula.(type) {
	case nil:
		return fmt.Errorf("%w: formula is required", ErrInvalidGarnishment)
	case PercentOfDisposable:
		if !f.Percent.Valid() {
			return fmt.Errorf("%w: negative percent", ErrInvalidGarnishment)
		}
	case FixedAmountPerPeriod:
		if f.Amount.IsNegative() {
			return fmt.Errorf("%w: negative fixed amount", ErrInvalidGarnishment)
		}
	case LesserOfPercentOrAmount:
		if !f.Percent.Valid() || f.Amount.IsNegative() {
			return fmt.Errorf("%w: negative percent or amount", ErrInvalidGarnishment)
		}
	case LevyWithBands:
		if len(f.Bands) == 0 {
			return fmt.Errorf("%w: levy has no bands", ErrInvalidGarnishment)
		}
		for _, b := range f.Bands {
			if b.ExemptCents < 0 {
				return fmt.Errorf("%w: negative levy exemption", ErrInvalidGarnishment)
			}
		}
	default:
		return fmt.Errorf("%w: unsupported formula %T", ErrInvalidGarnishment, formula)
	}
	return nil
}

// SortGarnishmentOrders returns orders by (priorityClass, sequenceWithinClass, orderId).
func SortGarnishmentOrders(orders []GarnishmentOrder) []GarnishmentOrder {
	out := make([]GarnishmentOrder, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PriorityClass != b.PriorityClass {
			return a.PriorityClass < b.PriorityClass
		}
		if a.SequenceWithinClass != b.SequenceWithinClass {
			return a.SequenceWithinClass < b.SequenceWithinClass
		}
		return a.OrderID < b.OrderID
	})
	return out
}

// SupportCapParams are the CCPA rates and an optional state aggregate cap.
type SupportCapParams struct {
	MaxRateWhenSupportingOthers    money.Percent  `json:"maxRateWhenSupportingOthers"`
	MaxRateWhenNotSupportingOthers money.Percent  `json:"maxRateWhenNotSupportingOthers"`
	ArrearsBonusRate               money.Percent  `json:"arrearsBonusRate"`
	StateAggregateCapRate          *money.Percent `json:"stateAggregateCapRate,omitempty"`
}

type SupportCapContext struct {
	Params                  SupportCapParams `json:"params"`
	SupportsOtherDependents bool             `json:"supportsOtherDependents"`
	ArrearsAtLeast12Weeks   bool             `json:"arrearsAtLeast12Weeks"`
	JurisdictionCode        string           `json:"jurisdictionCode,omitempty"`
}

// GarnishmentContext holds all active orders for the paycheck. An empty
// context means plan-driven garnishments, if any.
type GarnishmentContext struct {
	Orders     []GarnishmentOrder `json:"orders,omitempty"`
	SupportCap *SupportCapContext `json:"supportCap,omitempty"`
}
