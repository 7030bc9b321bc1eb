package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// Repayment is the immutable ledger record for a single payment. The
// remaining* fields snapshot the loan balances immediately after this
// payment was applied, so the full history doubles as an audit trail.
type Repayment struct {
	receiptID  string
	loanID     string
	customerID string

	amount        decimal.Decimal
	interestPaid  decimal.Decimal
	principalPaid decimal.Decimal

	remainingInterest  decimal.Decimal
	remainingPrincipal decimal.Decimal
	remainingBalance   decimal.Decimal

	paymentDate    time.Time
	method         valueobject.PaymentMethod
	status         valueobject.RepaymentStatus
	transactionRef string
	recordedBy     string
	createdAt      time.Time
}

// newRepayment is only reachable through Loan.ApplyPayment, which computes
// the allocation. Records are created already approved because the staff
// member recording the payment is the approver.
func newRepayment(
	receiptID, loanID, customerID string,
	amount, interestPaid, principalPaid decimal.Decimal,
	remainingInterest, remainingPrincipal, remainingBalance decimal.Decimal,
	method valueobject.PaymentMethod,
	transactionRef, recordedBy string,
	now time.Time,
) Repayment {
	return Repayment{
		receiptID:          receiptID,
		loanID:             loanID,
		customerID:         customerID,
		amount:             amount,
		interestPaid:       interestPaid,
		principalPaid:      principalPaid,
		remainingInterest:  remainingInterest,
		remainingPrincipal: remainingPrincipal,
		remainingBalance:   remainingBalance,
		paymentDate:        now,
		method:             method,
		status:             valueobject.RepaymentStatusApproved,
		transactionRef:     transactionRef,
		recordedBy:         recordedBy,
		createdAt:          now,
	}
}

// ReconstructRepayment rebuilds a Repayment from persistence.
func ReconstructRepayment(
	receiptID, loanID, customerID string,
	amount, interestPaid, principalPaid decimal.Decimal,
	remainingInterest, remainingPrincipal, remainingBalance decimal.Decimal,
	paymentDate time.Time,
	method valueobject.PaymentMethod,
	status valueobject.RepaymentStatus,
	transactionRef, recordedBy string,
	createdAt time.Time,
) Repayment {
	return Repayment{
		receiptID:          receiptID,
		loanID:             loanID,
		customerID:         customerID,
		amount:             amount,
		interestPaid:       interestPaid,
		principalPaid:      principalPaid,
		remainingInterest:  remainingInterest,
		remainingPrincipal: remainingPrincipal,
		remainingBalance:   remainingBalance,
		paymentDate:        paymentDate,
		method:             method,
		status:             status,
		transactionRef:     transactionRef,
		recordedBy:         recordedBy,
		createdAt:          createdAt,
	}
}

func (r Repayment) ReceiptID() string                         { return r.receiptID }
func (r Repayment) LoanID() string                            { return r.loanID }
func (r Repayment) CustomerID() string                        { return r.customerID }
func (r Repayment) Amount() decimal.Decimal                   { return r.amount }
func (r Repayment) InterestPaid() decimal.Decimal             { return r.interestPaid }
func (r Repayment) PrincipalPaid() decimal.Decimal            { return r.principalPaid }
func (r Repayment) RemainingInterest() decimal.Decimal        { return r.remainingInterest }
func (r Repayment) RemainingPrincipal() decimal.Decimal       { return r.remainingPrincipal }
func (r Repayment) RemainingBalance() decimal.Decimal         { return r.remainingBalance }
func (r Repayment) PaymentDate() time.Time                    { return r.paymentDate }
func (r Repayment) Method() valueobject.PaymentMethod         { return r.method }
func (r Repayment) Status() valueobject.RepaymentStatus       { return r.status }
func (r Repayment) TransactionRef() string                    { return r.transactionRef }
func (r Repayment) RecordedBy() string                        { return r.recordedBy }
func (r Repayment) CreatedAt() time.Time                      { return r.createdAt }
