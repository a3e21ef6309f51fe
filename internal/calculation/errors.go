package calculation

import (
	"errors"
	"fmt"
)

// ErrAggregateInput marks a structurally malformed calculation request. It
// aborts the whole calculation and no partial result is returned.
var ErrAggregateInput = errors.New("malformed calculation input")

var (
	// ErrNoIncomeRecords is returned when the W-2 aggregator receives no records.
	ErrNoIncomeRecords = fmt.Errorf("%w: no income records supplied", ErrAggregateInput)

	// ErrInvalidLoanInput is returned when required loan fields are missing or out of range.
	ErrInvalidLoanInput = fmt.Errorf("%w: invalid loan input", ErrAggregateInput)

	// ErrInvalidPresenceQuery is returned when the presence query lacks a usable entry date or year.
	ErrInvalidPresenceQuery = fmt.Errorf("%w: invalid presence query", ErrAggregateInput)

	// ErrInvalidFilingContext is returned when the tax year is unusable.
	ErrInvalidFilingContext = fmt.Errorf("%w: invalid filing context", ErrAggregateInput)
)
