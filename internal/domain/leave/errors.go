package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrBalanceNotFound  = errors.New("leave balance not found")
	ErrAlreadyProcessed = errors.New("leave request already processed")
	ErrNoWorkingDays    = errors.New("leave span contains no working days")
)

// ErrInsufficientBalance is the sentinel callers match with errors.Is;
// the wrapping InsufficientBalanceError carries the figures.
var ErrInsufficientBalance = errors.New("insufficient leave balance")

type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: available %s hours, requested %s hours",
		e.Available.String(), e.Requested.String())
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
