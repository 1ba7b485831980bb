package payroll

import (
	"fmt"
	"sort"
	"strings"

	"paycalc/internal/platform/money"
)

type TaxBasis string

const (
	BasisGross               TaxBasis = "Gross"
	BasisFederalTaxable      TaxBasis = "FederalTaxable"
	BasisStateTaxable        TaxBasis = "StateTaxable"
	BasisSocialSecurityWages TaxBasis = "SocialSecurityWages"
	BasisMedicareWages       TaxBasis = "MedicareWages"
	BasisSupplementalWages   TaxBasis = "SupplementalWages"
	BasisFutaWages           TaxBasis = "FutaWages"
)

// AllTaxBases is the canonical basis order used for traces and audits.
var AllTaxBases = []TaxBasis{
	BasisGross,
	BasisFederalTaxable,
	BasisStateTaxable,
	BasisSocialSecurityWages,
	BasisMedicareWages,
	BasisSupplementalWages,
	BasisFutaWages,
}

func (b TaxBasis) Valid() bool {
	for _, known := range AllTaxBases {
		if b == known {
			return true
		}
	}
	return false
}

func (b TaxBasis) isFica() bool {
	return b == BasisSocialSecurityWages || b == BasisMedicareWages
}

type TaxJurisdictionType string

const (
	JurisdictionFederal TaxJurisdictionType = "FEDERAL"
	JurisdictionState   TaxJurisdictionType = "STATE"
	JurisdictionLocal   TaxJurisdictionType = "LOCAL"
	JurisdictionOther   TaxJurisdictionType = "OTHER"
)

type TaxJurisdiction struct {
	Type TaxJurisdictionType `json:"type"`
	Code string              `json:"code"`
}

// RuleMeta carries the fields shared by every tax rule shape.
type RuleMeta struct {
	ID           string          `json:"id"`
	Jurisdiction TaxJurisdiction `json:"jurisdiction"`
	Basis        TaxBasis        `json:"basis"`
	// LocalityFilter names the locality a LOCAL rule applies to.
	LocalityFilter string `json:"localityFilter,omitempty"`
	// FilingStatus, when set, restricts the rule to matching employees.
	FilingStatus FilingStatus `json:"filingStatus,omitempty"`
}

// TaxRule is one of FlatRateTax, BracketedIncomeTax or WageBracketTax.
//
//sumtype:decl
type TaxRule interface {
	Meta() RuleMeta
	isTaxRule()
}

type FlatRateTax struct {
	RuleMeta
	Rate          money.Percent `json:"rate"`
	AnnualWageCap *money.Money  `json:"annualWageCap,omitempty"`
}

type TaxBracket struct {
	// UpTo is the inclusive upper bound; nil means unbounded.
	UpTo *money.Money  `json:"upTo,omitempty"`
	Rate money.Percent `json:"rate"`
}

type BracketedIncomeTax struct {
	RuleMeta
	Brackets              []TaxBracket `json:"brackets"`
	StandardDeduction     *money.Money `json:"standardDeduction,omitempty"`
	AdditionalWithholding *money.Money `json:"additionalWithholding,omitempty"`
}

type WageBracketRow struct {
	UpTo *money.Money `json:"upTo,omitempty"`
	Tax  money.Money  `json:"tax"`
}

type WageBracketTax struct {
	RuleMeta
	Brackets []WageBracketRow `json:"brackets"`
}

func (r FlatRateTax) Meta() RuleMeta        { return r.RuleMeta }
func (r BracketedIncomeTax) Meta() RuleMeta { return r.RuleMeta }
func (r WageBracketTax) Meta() RuleMeta     { return r.RuleMeta }

func (FlatRateTax) isTaxRule()        {}
func (BracketedIncomeTax) isTaxRule() {}
func (WageBracketTax) isTaxRule()     {}

// TaxContext is the resolved rule set for one paycheck.
type TaxContext struct {
	Federal          []TaxRule
	State            []TaxRule
	Local            []TaxRule
	EmployerSpecific []TaxRule
}

func (c TaxContext) employeeRules() []TaxRule {
	rules := make([]TaxRule, 0, len(c.Federal)+len(c.State)+len(c.Local))
	rules = append(rules, c.Federal...)
	rules = append(rules, c.State...)
	rules = append(rules, c.Local...)
	return rules
}

func NewFlatRateTax(meta RuleMeta, rate money.Percent, annualWageCap *money.Money) (FlatRateTax, error) {
	rule := FlatRateTax{RuleMeta: meta, Rate: rate, AnnualWageCap: annualWageCap}
	if err := ValidateTaxRule(rule); err != nil {
		return FlatRateTax{}, err
	}
	return rule, nil
}

// NewBracketedIncomeTax validates the bracket list and stores it in ascending
// UpTo order with the unbounded bracket last.
func NewBracketedIncomeTax(meta RuleMeta, brackets []TaxBracket, standardDeduction, additionalWithholding *money.Money) (BracketedIncomeTax, error) {
	rule := BracketedIncomeTax{
		RuleMeta:              meta,
		Brackets:              sortedTaxBrackets(brackets),
		StandardDeduction:     standardDeduction,
		AdditionalWithholding: additionalWithholding,
	}
	if err := ValidateTaxRule(rule); err != nil {
		return BracketedIncomeTax{}, err
	}
	return rule, nil
}

func NewWageBracketTax(meta RuleMeta, rows []WageBracketRow) (WageBracketTax, error) {
	rule := WageBracketTax{RuleMeta: meta, Brackets: sortedWageRows(rows)}
	if err := ValidateTaxRule(rule); err != nil {
		return WageBracketTax{}, err
	}
	return rule, nil
}

// ValidateTaxRule reports malformed rule configuration.
func ValidateTaxRule(rule TaxRule) error {
	if rule == nil {
		return fmt.Errorf("%w: nil rule", ErrInvalidTaxRule)
	}
	meta := rule.Meta()
	if strings.TrimSpace(meta.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTaxRule)
	}
	if !meta.Basis.Valid() {
		return fmt.Errorf("%w: rule %s has unknown basis %q", ErrInvalidTaxRule, meta.ID, meta.Basis)
	}
	switch meta.Jurisdiction.Type {
	case JurisdictionFederal, JurisdictionState, JurisdictionLocal, JurisdictionOther:
	default:
		return fmt.Errorf("%w: rule %s has unknown jurisdiction type %q", ErrInvalidTaxRule, meta.ID, meta.Jurisdiction.Type)
	}

	switch r := rule.(type) {
	case FlatRateTax:
		if !r.Rate.Valid() {
			return fmt.Errorf("%w: rule %s has negative rate", ErrInvalidTaxRule, meta.ID)
		}
		if r.AnnualWageCap != nil && r.AnnualWageCap.IsNegative() {
			return fmt.Errorf("%w: rule %s has negative wage cap", ErrInvalidTaxRule, meta.ID)
		}
	case BracketedIncomeTax:
		if len(r.Brackets) == 0 {
			return fmt.Errorf("%w: rule %s has no brackets", ErrInvalidTaxRule, meta.ID)
		}
		bounds := make([]*money.Money, 0, len(r.Brackets))
		for _, b := range r.Brackets {
			if !b.Rate.Valid() {
				return fmt.Errorf("%w: rule %s has a negative bracket rate", ErrInvalidTaxRule, meta.ID)
			}
			bounds = append(bounds, b.UpTo)
		}
		if err := validateBounds(meta.ID, bounds); err != nil {
			return err
		}
		if r.StandardDeduction != nil && r.StandardDeduction.IsNegative() {
			return fmt.Errorf("%w: rule %s has negative standard deduction", ErrInvalidTaxRule, meta.ID)
		}
	case WageBracketTax:
		if len(r.Brackets) == 0 {
			return fmt.Errorf("%w: rule %s has no wage brackets", ErrInvalidTaxRule, meta.ID)
		}
		bounds := make([]*money.Money, 0, len(r.Brackets))
		for _, row := range r.Brackets {
			if row.Tax.IsNegative() {
				return fmt.Errorf("%w: rule %s has a negative bracket tax", ErrInvalidTaxRule, meta.ID)
			}
			bounds = append(bounds, row.UpTo)
		}
		if err := validateBounds(meta.ID, bounds); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unsupported rule type %T", ErrInvalidTaxRule, rule)
	}
	return nil
}

// validateBounds rejects duplicate upper bounds and more than one unbounded bracket.
func validateBounds(ruleID string, bounds []*money.Money) error {
	seen := make(map[int64]struct{}, len(bounds))
	unbounded := 0
	for _, b := range bounds {
		if b == nil {
			unbounded++
			continue
		}
		if b.IsNegative() {
			return fmt.Errorf("%w: rule %s has a negative bracket bound", ErrInvalidTaxRule, ruleID)
		}
		if _, dup := seen[b.Amount]; dup {
			return fmt.Errorf("%w: rule %s has duplicate bracket bound %d", ErrInvalidTaxRule, ruleID, b.Amount)
		}
		seen[b.Amount] = struct{}{}
	}
	if unbounded > 1 {
		return fmt.Errorf("%w: rule %s has more than one unbounded bracket", ErrInvalidTaxRule, ruleID)
	}
	return nil
}

func upperBound(m *money.Money) int64 {
	if m == nil {
		return int64(^uint64(0) >> 1)
	}
	return m.Amount
}

func sortedTaxBrackets(brackets []TaxBracket) []TaxBracket {
	out := make([]TaxBracket, len(brackets))
	copy(out, brackets)
	sort.SliceStable(out, func(i, j int) bool {
		return upperBound(out[i].UpTo) < upperBound(out[j].UpTo)
	})
	return out
}

func sortedWageRows(rows []WageBracketRow) []WageBracketRow {
	out := make([]WageBracketRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return upperBound(out[i].UpTo) < upperBound(out[j].UpTo)
	})
	return out
}
