package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// CustomerStatus – immutable value object
// ---------------------------------------------------------------------------

// CustomerStatus represents the lifecycle stage of a customer record.
type CustomerStatus struct {
	value string
}

const (
	customerStatusPending  = "PENDING"
	customerStatusApproved = "APPROVED"
	customerStatusRejected = "REJECTED"
	customerStatusActive   = "ACTIVE"
	customerStatusInactive = "INACTIVE"
)

var (
	CustomerStatusPending  = CustomerStatus{value: customerStatusPending}
	CustomerStatusApproved = CustomerStatus{value: customerStatusApproved}
	CustomerStatusRejected = CustomerStatus{value: customerStatusRejected}
	CustomerStatusActive   = CustomerStatus{value: customerStatusActive}
	CustomerStatusInactive = CustomerStatus{value: customerStatusInactive}
)

var validCustomerStatuses = map[string]CustomerStatus{
	customerStatusPending:  CustomerStatusPending,
	customerStatusApproved: CustomerStatusApproved,
	customerStatusRejected: CustomerStatusRejected,
	customerStatusActive:   CustomerStatusActive,
	customerStatusInactive: CustomerStatusInactive,
}

// NewCustomerStatus creates a CustomerStatus from a raw string.
func NewCustomerStatus(s string) (CustomerStatus, error) {
	v, ok := validCustomerStatuses[s]
	if !ok {
		return CustomerStatus{}, fmt.Errorf("invalid customer status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s CustomerStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s CustomerStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s CustomerStatus) Equal(other CustomerStatus) bool { return s.value == other.value }

// IsLoanEligible reports whether a loan may reference this customer.
// A customer must have been approved; Active implies prior approval.
func (s CustomerStatus) IsLoanEligible() bool {
	return s.value == customerStatusApproved || s.value == customerStatusActive
}

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending   = "PENDING"
	loanStatusApproved  = "APPROVED"
	loanStatusRejected  = "REJECTED"
	loanStatusDisbursed = "DISBURSED"
	loanStatusActive    = "ACTIVE"
	loanStatusCompleted = "COMPLETED"
	loanStatusOverdue   = "OVERDUE"
	loanStatusDefaulted = "DEFAULTED"
)

var (
	LoanStatusPending   = LoanStatus{value: loanStatusPending}
	LoanStatusApproved  = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected  = LoanStatus{value: loanStatusRejected}
	LoanStatusDisbursed = LoanStatus{value: loanStatusDisbursed}
	LoanStatusActive    = LoanStatus{value: loanStatusActive}
	LoanStatusCompleted = LoanStatus{value: loanStatusCompleted}
	LoanStatusOverdue   = LoanStatus{value: loanStatusOverdue}
	LoanStatusDefaulted = LoanStatus{value: loanStatusDefaulted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:   LoanStatusPending,
	loanStatusApproved:  LoanStatusApproved,
	loanStatusRejected:  LoanStatusRejected,
	loanStatusDisbursed: LoanStatusDisbursed,
	loanStatusActive:    LoanStatusActive,
	loanStatusCompleted: LoanStatusCompleted,
	loanStatusOverdue:   LoanStatusOverdue,
	loanStatusDefaulted: LoanStatusDefaulted,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsPayable reports whether repayments may be applied in this status.
func (s LoanStatus) IsPayable() bool {
	return s.value == loanStatusActive || s.value == loanStatusOverdue
}

// IsTerminal reports whether the status admits no further transitions.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusRejected || s.value == loanStatusCompleted || s.value == loanStatusDefaulted
}

// ---------------------------------------------------------------------------
// RepaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// RepaymentStatus represents the review state of a recorded repayment.
// The allocator does not gate on it; review is a back-office workflow.
type RepaymentStatus struct {
	value string
}

const (
	repaymentStatusPending  = "PENDING"
	repaymentStatusApproved = "APPROVED"
	repaymentStatusRejected = "REJECTED"
)

var (
	RepaymentStatusPending  = RepaymentStatus{value: repaymentStatusPending}
	RepaymentStatusApproved = RepaymentStatus{value: repaymentStatusApproved}
	RepaymentStatusRejected = RepaymentStatus{value: repaymentStatusRejected}
)

var validRepaymentStatuses = map[string]RepaymentStatus{
	repaymentStatusPending:  RepaymentStatusPending,
	repaymentStatusApproved: RepaymentStatusApproved,
	repaymentStatusRejected: RepaymentStatusRejected,
}

// NewRepaymentStatus creates a RepaymentStatus from a raw string.
func NewRepaymentStatus(s string) (RepaymentStatus, error) {
	v, ok := validRepaymentStatuses[s]
	if !ok {
		return RepaymentStatus{}, fmt.Errorf("invalid repayment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s RepaymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s RepaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s RepaymentStatus) Equal(other RepaymentStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// PaymentMethod – immutable value object
// ---------------------------------------------------------------------------

// PaymentMethod identifies how a repayment was tendered.
type PaymentMethod struct {
	value string
}

const (
	paymentMethodCash         = "CASH"
	paymentMethodBankTransfer = "BANK_TRANSFER"
	paymentMethodMobileMoney  = "MOBILE_MONEY"
	paymentMethodCheque       = "CHEQUE"
)

var (
	PaymentMethodCash         = PaymentMethod{value: paymentMethodCash}
	PaymentMethodBankTransfer = PaymentMethod{value: paymentMethodBankTransfer}
	PaymentMethodMobileMoney  = PaymentMethod{value: paymentMethodMobileMoney}
	PaymentMethodCheque       = PaymentMethod{value: paymentMethodCheque}
)

var validPaymentMethods = map[string]PaymentMethod{
	paymentMethodCash:         PaymentMethodCash,
	paymentMethodBankTransfer: PaymentMethodBankTransfer,
	paymentMethodMobileMoney:  PaymentMethodMobileMoney,
	paymentMethodCheque:       PaymentMethodCheque,
}

// NewPaymentMethod creates a PaymentMethod from a raw string.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	v, ok := validPaymentMethods[s]
	if !ok {
		return PaymentMethod{}, fmt.Errorf("invalid payment method: %q", s)
	}
	return v, nil
}

// String returns the string representation of the method.
func (m PaymentMethod) String() string { return m.value }

// IsZero returns true if the method has not been initialised.
func (m PaymentMethod) IsZero() bool { return m.value == "" }

// Equal returns true when both methods carry the same value.
func (m PaymentMethod) Equal(other PaymentMethod) bool { return m.value == other.value }
