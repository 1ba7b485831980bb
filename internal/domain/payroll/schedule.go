package payroll

import (
	"fmt"
)

// PaySchedule fixes how many regular periods an annual salary is spread over.
type PaySchedule struct {
	Frequency      PayFrequency `json:"frequency"`
	PeriodsPerYear int          `json:"periodsPerYear"`
}

// PeriodsPerYear returns the default period count for a frequency, or zero
// for an unknown frequency.
func PeriodsPerYear(f PayFrequency) int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemiMonthly:
		return 24
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyAnnual:
		return 1
	}
	return 0
}

// NewPaySchedule builds a schedule; periodsPerYear of zero takes the frequency default.
func NewPaySchedule(frequency PayFrequency, periodsPerYear int) (PaySchedule, error) {
	if periodsPerYear == 0 {
		periodsPerYear = PeriodsPerYear(frequency)
	}
	s := PaySchedule{Frequency: frequency, PeriodsPerYear: periodsPerYear}
	if err := s.Validate(); err != nil {
		return PaySchedule{}, err
	}
	return s, nil
}

func (s PaySchedule) Validate() error {
	if PeriodsPerYear(s.Frequency) == 0 {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidSchedule, s.Frequency)
	}
	if s.PeriodsPerYear <= 0 {
		return fmt.Errorf("%w: periodsPerYear must be positive, got %d", ErrInvalidSchedule, s.PeriodsPerYear)
	}
	return nil
}

// Allocate spreads annualCents evenly across the schedule. The first
// annualCents mod PeriodsPerYear periods each carry one extra cent, so a full
// year sums to exactly annualCents. A sequence of zero (unknown) gets the base
// amount.
func (s PaySchedule) Allocate(annualCents int64, sequenceInYear int) int64 {
	periods := int64(s.PeriodsPerYear)
	if periods <= 0 {
		return 0
	}
	base := annualCents / periods
	remainder := annualCents % periods
	if sequenceInYear > 0 && int64(sequenceInYear) <= remainder {
		return base + 1
	}
	return base
}

// scheduleFor resolves the schedule for a salaried employee: the explicit
// input schedule wins, then the salary frequency, then the period frequency.
func scheduleFor(in PaycheckInput, salary Salaried) PaySchedule {
	if in.PaySchedule != nil && in.PaySchedule.PeriodsPerYear > 0 {
		return *in.PaySchedule
	}
	freq := salary.Frequency
	if PeriodsPerYear(freq) == 0 {
		freq = in.Period.Frequency
	}
	return PaySchedule{Frequency: freq, PeriodsPerYear: PeriodsPerYear(freq)}
}
