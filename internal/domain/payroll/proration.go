package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"paycalc/internal/platform/money"
)

// Proration is the worked share of a period kept as an exact ratio so that
// repeating fractions such as 1/3 do not lose a cent.
type Proration struct {
	Numerator   decimal.Decimal `json:"numerator"`
	Denominator decimal.Decimal `json:"denominator"`
}

// NewProration builds a proration from a plain fraction such as 0.5.
func NewProration(fraction decimal.Decimal) Proration {
	return Proration{Numerator: fraction, Denominator: decimal.NewFromInt(1)}
}

func ratio(worked, total int64) Proration {
	return Proration{Numerator: decimal.NewFromInt(worked), Denominator: decimal.NewFromInt(total)}
}

// Apply returns cents × fraction truncated toward zero, clamped to [0, cents].
func (p Proration) Apply(cents int64) int64 {
	v := money.MulDivTrunc(cents, p.Numerator, p.Denominator)
	if v < 0 {
		return 0
	}
	if v > cents {
		return cents
	}
	return v
}

func (p Proration) Fraction() float64 {
	if p.Denominator.IsZero() {
		return 0
	}
	f, _ := p.Numerator.Div(p.Denominator).Float64()
	return f
}

// ProrationStrategy derives an implicit proration from lifecycle dates. A nil
// result means no proration applies.
type ProrationStrategy interface {
	Name() string
	Compute(period PayPeriod, hire, termination *time.Time) *Proration
}

type (
	CalendarDays   struct{}
	Workdays       struct{}
	ThirtyDayMonth struct{}
)

func (CalendarDays) Name() string   { return "CalendarDays" }
func (Workdays) Name() string       { return "Workdays" }
func (ThirtyDayMonth) Name() string { return "ThirtyDayMonth" }

func (CalendarDays) Compute(period PayPeriod, hire, termination *time.Time) *Proration {
	start, end, zero, ok := workedWindow(period, hire, termination)
	if !ok {
		return zero
	}
	total := daysInclusive(dateOnly(period.StartDate), dateOnly(period.EndDate))
	worked := daysInclusive(start, end)
	return partial(worked, total)
}

func (Workdays) Compute(period PayPeriod, hire, termination *time.Time) *Proration {
	start, end, zero, ok := workedWindow(period, hire, termination)
	if !ok {
		return zero
	}
	total := countWorkdays(dateOnly(period.StartDate), dateOnly(period.EndDate))
	worked := countWorkdays(start, end)
	return partial(worked, total)
}

func (ThirtyDayMonth) Compute(period PayPeriod, hire, termination *time.Time) *Proration {
	start, end, zero, ok := workedWindow(period, hire, termination)
	if !ok {
		return zero
	}
	return partial(daysInclusive(start, end), 30)
}

// workedWindow intersects the lifecycle window with the period. With no
// lifecycle dates it returns (nil, false); with a disjoint window it returns a
// zero proration and false.
func workedWindow(period PayPeriod, hire, termination *time.Time) (time.Time, time.Time, *Proration, bool) {
	if hire == nil && termination == nil {
		return time.Time{}, time.Time{}, nil, false
	}
	periodStart, periodEnd := dateOnly(period.StartDate), dateOnly(period.EndDate)
	start, end := periodStart, periodEnd
	if hire != nil && dateOnly(*hire).After(periodStart) {
		start = dateOnly(*hire)
	}
	if termination != nil && dateOnly(*termination).Before(periodEnd) {
		end = dateOnly(*termination)
	}
	if end.Before(periodStart) || start.After(periodEnd) || end.Before(start) {
		zero := ratio(0, 1)
		return time.Time{}, time.Time{}, &zero, false
	}
	return start, end, nil, true
}

func partial(worked, total int64) *Proration {
	if worked <= 0 {
		p := ratio(0, 1)
		return &p
	}
	if total <= 0 || worked >= total {
		return nil
	}
	p := ratio(worked, total)
	return &p
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysInclusive(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours()/24) + 1
}

func countWorkdays(start, end time.Time) int64 {
	var n int64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}
