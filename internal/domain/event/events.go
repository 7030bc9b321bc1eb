package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Customer events
// ---------------------------------------------------------------------------

// CustomerRegistered is raised when a loan officer registers a new customer.
type CustomerRegistered struct {
	events.BaseEvent
	Name         string `json:"name"`
	LoanProduct  string `json:"loan_product"`
	RegisteredBy string `json:"registered_by"`
}

func NewCustomerRegistered(customerID, name, loanProduct, registeredBy string) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:    events.NewBaseEvent("loanbook.customer.registered", customerID, "Customer"),
		Name:         name,
		LoanProduct:  loanProduct,
		RegisteredBy: registeredBy,
	}
}

// CustomerApproved is raised when an admin approves a customer.
type CustomerApproved struct {
	events.BaseEvent
	ApprovedBy string `json:"approved_by"`
}

func NewCustomerApproved(customerID, approvedBy string) CustomerApproved {
	return CustomerApproved{
		BaseEvent:  events.NewBaseEvent("loanbook.customer.approved", customerID, "Customer"),
		ApprovedBy: approvedBy,
	}
}

// CustomerRejected is raised when an admin rejects a customer.
type CustomerRejected struct {
	events.BaseEvent
	RejectedBy string `json:"rejected_by"`
	Reason     string `json:"reason,omitempty"`
}

func NewCustomerRejected(customerID, rejectedBy, reason string) CustomerRejected {
	return CustomerRejected{
		BaseEvent:  events.NewBaseEvent("loanbook.customer.rejected", customerID, "Customer"),
		RejectedBy: rejectedBy,
		Reason:     reason,
	}
}

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanApplied is raised when a new loan application enters the book.
type LoanApplied struct {
	events.BaseEvent
	CustomerID      string          `json:"customer_id"`
	LoanProduct     string          `json:"loan_product"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	Tenure          int             `json:"tenure"`
	TenureUnit      string          `json:"tenure_unit"`
	CreatedBy       string          `json:"created_by"`
}

func NewLoanApplied(
	loanID, customerID, loanProduct string,
	principal, totalPayable decimal.Decimal,
	tenure int, tenureUnit, createdBy string,
) LoanApplied {
	return LoanApplied{
		BaseEvent:       events.NewBaseEvent("loanbook.loan.applied", loanID, "Loan"),
		CustomerID:      customerID,
		LoanProduct:     loanProduct,
		PrincipalAmount: principal,
		TotalPayable:    totalPayable,
		Tenure:          tenure,
		TenureUnit:      tenureUnit,
		CreatedBy:       createdBy,
	}
}

// LoanApproved is raised when an admin approves a loan application.
type LoanApproved struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	ApprovedBy string `json:"approved_by"`
}

func NewLoanApproved(loanID, customerID, approvedBy string) LoanApproved {
	return LoanApproved{
		BaseEvent:  events.NewBaseEvent("loanbook.loan.approved", loanID, "Loan"),
		CustomerID: customerID,
		ApprovedBy: approvedBy,
	}
}

// LoanRejected is raised when an admin rejects a loan application.
type LoanRejected struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	RejectedBy string `json:"rejected_by"`
	Reason     string `json:"reason,omitempty"`
}

func NewLoanRejected(loanID, customerID, rejectedBy, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:  events.NewBaseEvent("loanbook.loan.rejected", loanID, "Loan"),
		CustomerID: customerID,
		RejectedBy: rejectedBy,
		Reason:     reason,
	}
}

// LoanDisbursed is raised when approved funds are released and the
// repayment clock starts.
type LoanDisbursed struct {
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	events.BaseEvent
	CustomerID      string          `json:"customer_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	DisbursedBy     string          `json:"disbursed_by"`
}

func NewLoanDisbursed(
	loanID, customerID string,
	principal, totalPayable decimal.Decimal,
	startDate, endDate time.Time, disbursedBy string,
) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:       events.NewBaseEvent("loanbook.loan.disbursed", loanID, "Loan"),
		CustomerID:      customerID,
		PrincipalAmount: principal,
		TotalPayable:    totalPayable,
		StartDate:       startDate,
		EndDate:         endDate,
		DisbursedBy:     disbursedBy,
	}
}

// RepaymentRecorded is raised when a repayment is applied to a loan.
type RepaymentRecorded struct {
	events.BaseEvent
	LoanID           string          `json:"loan_id"`
	CustomerID       string          `json:"customer_id"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentMethod    string          `json:"payment_method"`
	RecordedBy       string          `json:"recorded_by"`
}

func NewRepaymentRecorded(
	receiptID, loanID, customerID string,
	amount, interestPaid, principalPaid, remainingBalance decimal.Decimal,
	method, recordedBy string,
) RepaymentRecorded {
	return RepaymentRecorded{
		BaseEvent:        events.NewBaseEvent("loanbook.repayment.recorded", receiptID, "Repayment"),
		LoanID:           loanID,
		CustomerID:       customerID,
		PaymentAmount:    amount,
		InterestPaid:     interestPaid,
		PrincipalPaid:    principalPaid,
		RemainingBalance: remainingBalance,
		PaymentMethod:    method,
		RecordedBy:       recordedBy,
	}
}

// LoanCompleted is raised when a loan is fully repaid.
type LoanCompleted struct {
	events.BaseEvent
	CustomerID string          `json:"customer_id"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}

func NewLoanCompleted(loanID, customerID string, totalPaid decimal.Decimal) LoanCompleted {
	return LoanCompleted{
		BaseEvent:  events.NewBaseEvent("loanbook.loan.completed", loanID, "Loan"),
		CustomerID: customerID,
		TotalPaid:  totalPaid,
	}
}

// LoanMarkedOverdue is raised when the overdue sweep flags a loan.
type LoanMarkedOverdue struct {
	EndDate          time.Time `json:"end_date"`
	events.BaseEvent
	CustomerID       string          `json:"customer_id"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func NewLoanMarkedOverdue(loanID, customerID string, remainingBalance decimal.Decimal, endDate time.Time) LoanMarkedOverdue {
	return LoanMarkedOverdue{
		BaseEvent:        events.NewBaseEvent("loanbook.loan.overdue", loanID, "Loan"),
		CustomerID:       customerID,
		RemainingBalance: remainingBalance,
		EndDate:          endDate,
	}
}

// LoanDefaulted is raised when a loan is written down as defaulted.
type LoanDefaulted struct {
	events.BaseEvent
	CustomerID       string          `json:"customer_id"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	MarkedBy         string          `json:"marked_by"`
}

func NewLoanDefaulted(loanID, customerID string, remainingBalance decimal.Decimal, markedBy string) LoanDefaulted {
	return LoanDefaulted{
		BaseEvent:        events.NewBaseEvent("loanbook.loan.defaulted", loanID, "Loan"),
		CustomerID:       customerID,
		RemainingBalance: remainingBalance,
		MarkedBy:         markedBy,
	}
}
