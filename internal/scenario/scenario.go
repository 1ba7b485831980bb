// Package scenario decodes YAML paycheck scenarios into engine inputs and
// per-employer catalogs. Polymorphic values (compensation, tax rules,
// garnishment formulas, protected earnings) are tagged by a kind field.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/platform/money"
)

// Case is one decoded paycheck with its optional golden expectations.
type Case struct {
	Name   string
	Input  payroll.PaycheckInput
	Expect *ExpectDTO
}

// Scenario is a fully resolved file: catalogs plus cases in file order.
type Scenario struct {
	Earnings   payroll.StaticEarningConfig
	Deductions payroll.StaticDeductionConfig
	Cases      []Case
}

func (s Scenario) Inputs() []payroll.PaycheckInput {
	out := make([]payroll.PaycheckInput, 0, len(s.Cases))
	for _, c := range s.Cases {
		out = append(out, c.Input)
	}
	return out
}

func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document. Unknown keys are rejected so that a
// misspelled field cannot silently fall back to a zero value.
func Parse(data []byte) (Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return f.Resolve()
}

// Resolve validates and converts every catalog entry and paycheck. Paychecks
// without an id get a random one.
func (f File) Resolve() (Scenario, error) {
	cur := strings.ToUpper(strings.TrimSpace(f.Currency))
	if cur == "" {
		cur = money.DefaultCurrency
	}
	c := converter{currency: cur}

	out := Scenario{
		Earnings:   payroll.StaticEarningConfig{},
		Deductions: payroll.StaticDeductionConfig{},
	}
	employerIDs := make([]string, 0, len(f.Employers))
	for id := range f.Employers {
		employerIDs = append(employerIDs, id)
	}
	sort.Strings(employerIDs)
	for _, id := range employerIDs {
		emp := f.Employers[id]
		eid := payroll.EmployerID(id)
		if len(emp.Earnings) > 0 {
			defs := make(map[payroll.EarningCode]payroll.EarningDefinition, len(emp.Earnings))
			for _, d := range emp.Earnings {
				def, err := c.earningDefinition(d)
				if err != nil {
					return Scenario{}, fmt.Errorf("employer %s: %w", id, err)
				}
				defs[def.Code] = def
			}
			out.Earnings[eid] = defs
		}
		for _, d := range emp.DeductionPlans {
			plan, err := c.deductionPlan(d)
			if err != nil {
				return Scenario{}, fmt.Errorf("employer %s: %w", id, err)
			}
			out.Deductions[eid] = append(out.Deductions[eid], plan)
		}
	}

	for i, p := range f.Paychecks {
		if p.PaycheckID == "" {
			p.PaycheckID = uuid.NewString()
		}
		in, err := c.input(p)
		if err != nil {
			return Scenario{}, fmt.Errorf("paycheck %d (%s): %w", i, p.Name, err)
		}
		name := p.Name
		if name == "" {
			name = p.PaycheckID
		}
		out.Cases = append(out.Cases, Case{Name: name, Input: in, Expect: p.Expect})
	}
	return out, nil
}

// Mismatches compares a computed paycheck with the case's expectations and
// describes each difference. A nil Expect matches anything.
func (c Case) Mismatches(pc payroll.PaycheckResult) []string {
	e := c.Expect
	if e == nil {
		return nil
	}
	var out []string
	check := func(what string, want, got int64) {
		if want != got {
			out = append(out, fmt.Sprintf("%s: want %d, got %d", what, want, got))
		}
	}
	if e.Gross != nil {
		check("gross", *e.Gross, pc.Gross.Amount)
	}
	if e.Net != nil {
		check("net", *e.Net, pc.Net.Amount)
	}
	for id, want := range e.EmployeeTaxes {
		check("employee tax "+id, want, taxAmount(pc.EmployeeTaxes, id))
	}
	for id, want := range e.EmployerTaxes {
		check("employer tax "+id, want, taxAmount(pc.EmployerTaxes, id))
	}
	for code, want := range e.Deductions {
		var got int64
		for _, l := range pc.Deductions {
			if string(l.Code) == code {
				got += l.Amount.Amount
			}
		}
		check("deduction "+code, want, got)
	}
	for code, want := range e.Earnings {
		var got int64
		for _, l := range pc.Earnings {
			if string(l.Code) == code {
				got += l.Amount.Amount
			}
		}
		check("earning "+code, want, got)
	}
	sort.Strings(out)
	return out
}

func taxAmount(lines []payroll.TaxLine, id string) int64 {
	var total int64
	for _, l := range lines {
		if l.RuleID == id {
			total += l.Amount.Amount
		}
	}
	return total
}
