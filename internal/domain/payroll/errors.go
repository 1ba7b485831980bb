package payroll

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid paycheck input")
	ErrInvalidTaxRule      = errors.New("invalid tax rule")
	ErrInvalidDeduction    = errors.New("invalid deduction plan")
	ErrInvalidGarnishment  = errors.New("invalid garnishment order")
	ErrInvalidSchedule     = errors.New("invalid pay schedule")
	ErrYtdYearMismatch     = errors.New("ytd year does not match check year")
	ErrCurrencyMismatch    = errors.New("paycheck amounts use more than one currency")
	ErrUnknownCompensation = errors.New("unknown base compensation")
)
