package signup

import "errors"

// Sentinel kinds for signup errors.
var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrFormClosed     = errors.New("form closed")
	ErrNoVacancies    = errors.New("no vacancies configured")
)
