package payroll

import (
	"bytes"
	"encoding/json"
	"fmt"

	"paycalc/internal/platform/money"
)

// TraceStep is one typed record in a CalculationTrace.
//
//sumtype:decl
type TraceStep interface {
	Kind() string
	isTraceStep()
}

type BasisComputed struct {
	Basis      TaxBasis         `json:"basis"`
	Components map[string]int64 `json:"components"`
	Result     money.Money      `json:"result"`
}

type BracketApplication struct {
	UpTo      *money.Money  `json:"upTo,omitempty"`
	Rate      money.Percent `json:"rate"`
	AppliedTo money.Money   `json:"appliedTo"`
	Amount    money.Money   `json:"amount"`
}

type TaxApplied struct {
	RuleID       string               `json:"ruleId"`
	Jurisdiction TaxJurisdiction      `json:"jurisdiction"`
	Employer     bool                 `json:"employer"`
	Basis        money.Money          `json:"basis"`
	Brackets     []BracketApplication `json:"brackets,omitempty"`
	Rate         *money.Percent       `json:"rate,omitempty"`
	Amount       money.Money          `json:"amount"`
}

type DeductionApplied struct {
	Code        DeductionCode     `json:"code"`
	Description string            `json:"description"`
	Basis       money.Money       `json:"basis"`
	Rate        *money.Percent    `json:"rate,omitempty"`
	Amount      money.Money       `json:"amount"`
	CappedAt    *money.Money      `json:"cappedAt,omitempty"`
	Effects     []DeductionEffect `json:"effects,omitempty"`
}

type ProrationApplied struct {
	Strategy         string  `json:"strategy"`
	ExplicitOverride bool    `json:"explicitOverride"`
	Fraction         float64 `json:"fraction"`
	FullCents        int64   `json:"fullCents"`
	AppliedCents     int64   `json:"appliedCents"`
}

type AdditionalWithholdingApplied struct {
	RuleID string      `json:"ruleId"`
	Amount money.Money `json:"amount"`
}

type EarningAdjusted struct {
	Code   EarningCode `json:"code"`
	Reason string      `json:"reason"`
	Amount money.Money `json:"amount"`
}

type ProtectedEarningsApplied struct {
	OrderID        GarnishmentOrderID `json:"orderId"`
	RequestedCents int64              `json:"requestedCents"`
	AdjustedCents  int64              `json:"adjustedCents"`
	FloorCents     int64              `json:"floorCents"`
}

type GarnishmentApplied struct {
	OrderID                   GarnishmentOrderID `json:"orderId"`
	Type                      GarnishmentType    `json:"type"`
	Description               string             `json:"description"`
	RequestedBeforeCapsCents  int64              `json:"requestedBeforeCapsCents"`
	RequestedCents            int64              `json:"requestedCents"`
	CappedAt                  *money.Money       `json:"cappedAt,omitempty"`
	AppliedCents              int64              `json:"appliedCents"`
	DisposableBeforeCents     int64              `json:"disposableBeforeCents"`
	DisposableAfterCents      int64              `json:"disposableAfterCents"`
	ProtectedFloorCents       *int64             `json:"protectedEarningsFloorCents,omitempty"`
	ProtectedFloorConstrained bool               `json:"protectedFloorConstrained"`
	ArrearsBeforeCents        *int64             `json:"arrearsBeforeCents,omitempty"`
	ArrearsAfterCents         *int64             `json:"arrearsAfterCents,omitempty"`
	AppliedToCurrentCents     *int64             `json:"appliedToCurrentCents,omitempty"`
	AppliedToArrearsCents     *int64             `json:"appliedToArrearsCents,omitempty"`
}

type DisposableIncomeComputed struct {
	OrderID                   GarnishmentOrderID `json:"orderId"`
	GrossCents                int64              `json:"grossCents"`
	MandatoryPreTaxCents      int64              `json:"mandatoryPreTaxCents"`
	EmployeeTaxCents          int64              `json:"employeeTaxCents"`
	BaseDisposableCents       int64              `json:"baseDisposableCents"`
	NetForProtectedFloorCents int64              `json:"netForProtectedFloorCents"`
}

type SupportCapApplied struct {
	JurisdictionCode    string `json:"jurisdictionCode,omitempty"`
	CcpaCapCents        int64  `json:"ccpaCapCents"`
	StateCapCents       *int64 `json:"stateCapCents,omitempty"`
	EffectiveCapCents   int64  `json:"effectiveCapCents"`
	TotalRequestedCents int64  `json:"totalRequestedCents"`
	TotalAppliedCents   int64  `json:"totalAppliedCents"`
}

type Note struct {
	Message string `json:"message"`
}

func (BasisComputed) Kind() string                { return "BasisComputed" }
func (TaxApplied) Kind() string                   { return "TaxApplied" }
func (DeductionApplied) Kind() string             { return "DeductionApplied" }
func (ProrationApplied) Kind() string             { return "ProrationApplied" }
func (AdditionalWithholdingApplied) Kind() string { return "AdditionalWithholdingApplied" }
func (EarningAdjusted) Kind() string              { return "EarningAdjusted" }
func (ProtectedEarningsApplied) Kind() string     { return "ProtectedEarningsApplied" }
func (GarnishmentApplied) Kind() string           { return "GarnishmentApplied" }
func (DisposableIncomeComputed) Kind() string     { return "DisposableIncomeComputed" }
func (SupportCapApplied) Kind() string            { return "SupportCapApplied" }
func (Note) Kind() string                         { return "Note" }

func (BasisComputed) isTraceStep()                {}
func (TaxApplied) isTraceStep()                   {}
func (DeductionApplied) isTraceStep()             {}
func (ProrationApplied) isTraceStep()             {}
func (AdditionalWithholdingApplied) isTraceStep() {}
func (EarningAdjusted) isTraceStep()              {}
func (ProtectedEarningsApplied) isTraceStep()     {}
func (GarnishmentApplied) isTraceStep()           {}
func (DisposableIncomeComputed) isTraceStep()     {}
func (SupportCapApplied) isTraceStep()            {}
func (Note) isTraceStep()                         {}

// CalculationTrace is an append-only ordered log of steps.
type CalculationTrace struct {
	Steps []TraceStep
}

func (t *CalculationTrace) add(step TraceStep) {
	t.Steps = append(t.Steps, step)
}

// Notes returns the messages of every Note step in order.
func (t CalculationTrace) Notes() []string {
	var out []string
	for _, s := range t.Steps {
		if n, ok := s.(Note); ok {
			out = append(out, n.Message)
		}
	}
	return out
}

// MarshalJSON writes each step as an object tagged with a "kind" field.
func (t CalculationTrace) MarshalJSON() ([]byte, error) {
	steps := make([]json.RawMessage, 0, len(t.Steps))
	for _, s := range t.Steps {
		raw, err := marshalStep(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, raw)
	}
	return json.Marshal(struct {
		Steps []json.RawMessage `json:"steps"`
	}{Steps: steps})
}

func marshalStep(step TraceStep) (json.RawMessage, error) {
	body, err := json.Marshal(step)
	if err != nil {
		return nil, fmt.Errorf("marshal %s step: %w", step.Kind(), err)
	}
	kind, err := json.Marshal(step.Kind())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"kind":`)
	buf.Write(kind)
	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StepsOf returns the steps of type T in trace order.
func StepsOf[T TraceStep](t CalculationTrace) []T {
	var out []T
	for _, s := range t.Steps {
		if v, ok := s.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
