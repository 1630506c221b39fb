package service

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

// Redemption precondition failures. All four are detected before any
// write and are not retryable until the caller changes something.
var ErrUserNotFound = errors.New("user profile not found")
var ErrItemNotFound = errors.New("item not found")
var ErrOutOfStock = errors.New("this item is out of stock")

// InsufficientBalanceError reports how many more points the user needs.
type InsufficientBalanceError struct {
	Shortfall int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("not enough karma points: need %d more", e.Shortfall)
}

// TransactionFailedError wraps a storage failure during the redemption
// write step. The transaction rolled back, so no partial effect is
// visible and the request is safe to retry.
type TransactionFailedError struct {
	Err error
}

func (e *TransactionFailedError) Error() string {
	return "redemption transaction failed: " + e.Err.Error()
}

func (e *TransactionFailedError) Unwrap() error {
	return e.Err
}
