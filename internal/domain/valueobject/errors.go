package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidStatusTransition is matched by InvalidTransitionError.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrOverpayment is matched by OverpaymentError.
	ErrOverpayment = errors.New("payment exceeds outstanding balance")

	// ErrLoanNotPayable is returned when a repayment is applied to a loan
	// that is not in a payable status.
	ErrLoanNotPayable = errors.New("loan is not in a payable status")

	// ErrConcurrencyConflict is returned when an optimistic-locking write
	// loses against a concurrent update.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")

	// ErrDuplicateTransaction is returned when a repayment with the same
	// transaction reference has already been applied to the loan.
	ErrDuplicateTransaction = errors.New("duplicate transaction reference")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the acting staff member lacks
	// the role a transition requires.
	ErrPermissionDenied = errors.New("permission denied")
)

// ---------------------------------------------------------------------------
// Typed errors
// ---------------------------------------------------------------------------

// ValidationError reports malformed or out-of-range input, naming the
// violated field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) ValidationError {
	return ValidationError{Field: field, Reason: reason}
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// InvalidTransitionError reports an attempted lifecycle transition from a
// status that does not permit it.
type InvalidTransitionError struct {
	Current   string
	Attempted string
}

// NewInvalidTransition creates an InvalidTransitionError.
func NewInvalidTransition(current, attempted string) InvalidTransitionError {
	return InvalidTransitionError{Current: current, Attempted: attempted}
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: cannot %s a loan in status %s", e.Attempted, e.Current)
}

// Is makes errors.Is(err, ErrInvalidStatusTransition) match.
func (e InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

// OverpaymentError reports a payment larger than the loan's outstanding
// balance. The payment is rejected outright; no partial acceptance.
type OverpaymentError struct {
	Outstanding decimal.Decimal
	Attempted   decimal.Decimal
}

func (e OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds outstanding balance of %s", e.Attempted, e.Outstanding)
}

// Is makes errors.Is(err, ErrOverpayment) match.
func (e OverpaymentError) Is(target error) bool {
	return target == ErrOverpayment
}
