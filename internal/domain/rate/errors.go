package rate

import "errors"

var (
	ErrSelfDeductionNotFound      = errors.New("no self deduction amount active at calculation time")
	ErrDependentDeductionNotFound = errors.New("no dependent deduction amount active at calculation time")
	ErrNoTaxBrackets              = errors.New("no income tax brackets active at calculation time")
	ErrMalformedBracketSet        = errors.New("income tax brackets are not contiguous from zero")
)
