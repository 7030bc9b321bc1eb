package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

var minimumPayment = decimal.NewFromInt(1)

// LoanTerms carries the derived financial terms a loan is written with.
type LoanTerms struct {
	InterestRate      decimal.Decimal
	InterestAmount    decimal.Decimal
	TotalPayable      decimal.Decimal
	InstallmentAmount decimal.Decimal
	TenureUnit        valueobject.TenureUnit
}

// Loan is an immutable aggregate. Mutations return a new copy.
//
// The running totals (totalPaid, interestPaid, principalPaid) are the mutable
// projection of the loan's append-only Repayment ledger: replaying every
// repayment in chronological order must reproduce them exactly.
type Loan struct {
	id         string
	customerID string

	product   valueobject.LoanProduct
	principal decimal.Decimal

	interestRate      decimal.Decimal
	interestAmount    decimal.Decimal
	totalPayable      decimal.Decimal
	installmentAmount decimal.Decimal
	tenure            int
	tenureUnit        valueobject.TenureUnit

	totalPaid        decimal.Decimal
	interestPaid     decimal.Decimal
	principalPaid    decimal.Decimal
	remainingBalance decimal.Decimal

	status valueobject.LoanStatus

	appliedAt   time.Time
	reviewedAt  time.Time
	disbursedAt time.Time
	startDate   time.Time
	endDate     time.Time

	createdBy      string
	reviewedBy     string
	decisionReason string
	disbursedBy    string

	version   int
	createdAt time.Time
	updatedAt time.Time

	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates a loan application in PENDING status. The financial terms
// are expected to come from the interest policy; NewLoan only checks their
// internal consistency.
func NewLoan(
	id, customerID string,
	product valueobject.LoanProduct,
	principal decimal.Decimal,
	tenure int,
	terms LoanTerms,
	createdBy string,
	now time.Time,
) (Loan, error) {
	if id == "" {
		return Loan{}, valueobject.NewValidationError("loanId", "is required")
	}
	if customerID == "" {
		return Loan{}, valueobject.NewValidationError("customerId", "is required")
	}
	if product.IsZero() {
		return Loan{}, valueobject.NewValidationError("loanProduct", "unknown loan product")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, valueobject.NewValidationError("principalAmount", "must be positive")
	}
	if tenure <= 0 {
		return Loan{}, valueobject.NewValidationError("tenure", "must be a positive integer")
	}
	if terms.TenureUnit.IsZero() {
		return Loan{}, valueobject.NewValidationError("tenureUnit", "is required")
	}
	if !terms.TotalPayable.Equal(principal.Add(terms.InterestAmount)) {
		return Loan{}, valueobject.NewValidationError("totalPayable",
			"must equal principal plus interest")
	}
	if createdBy == "" {
		return Loan{}, valueobject.NewValidationError("createdBy", "is required")
	}

	loan := Loan{
		id:                id,
		customerID:        customerID,
		product:           product,
		principal:         principal,
		interestRate:      terms.InterestRate,
		interestAmount:    terms.InterestAmount,
		totalPayable:      terms.TotalPayable,
		installmentAmount: terms.InstallmentAmount,
		tenure:            tenure,
		tenureUnit:        terms.TenureUnit,
		totalPaid:         decimal.Zero,
		interestPaid:      decimal.Zero,
		principalPaid:     decimal.Zero,
		remainingBalance:  terms.TotalPayable,
		status:            valueobject.LoanStatusPending,
		appliedAt:         now,
		createdBy:         createdBy,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanApplied(
		id, customerID, product.String(),
		principal, terms.TotalPayable,
		tenure, terms.TenureUnit.String(), createdBy,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence without side-effects.
func ReconstructLoan(
	id, customerID string,
	product valueobject.LoanProduct,
	principal decimal.Decimal,
	terms LoanTerms,
	tenure int,
	totalPaid, interestPaid, principalPaid, remainingBalance decimal.Decimal,
	status valueobject.LoanStatus,
	appliedAt, reviewedAt, disbursedAt, startDate, endDate time.Time,
	createdBy, reviewedBy, decisionReason, disbursedBy string,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                id,
		customerID:        customerID,
		product:           product,
		principal:         principal,
		interestRate:      terms.InterestRate,
		interestAmount:    terms.InterestAmount,
		totalPayable:      terms.TotalPayable,
		installmentAmount: terms.InstallmentAmount,
		tenure:            tenure,
		tenureUnit:        terms.TenureUnit,
		totalPaid:         totalPaid,
		interestPaid:      interestPaid,
		principalPaid:     principalPaid,
		remainingBalance:  remainingBalance,
		status:            status,
		appliedAt:         appliedAt,
		reviewedAt:        reviewedAt,
		disbursedAt:       disbursedAt,
		startDate:         startDate,
		endDate:           endDate,
		createdBy:         createdBy,
		reviewedBy:        reviewedBy,
		decisionReason:    decisionReason,
		disbursedBy:       disbursedBy,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions PENDING -> APPROVED. The review date and actor are
// stamped in the same copy as the status change.
func (l Loan) Approve(approvedBy string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, valueobject.NewInvalidTransition(l.status.String(), "approve")
	}
	next := l
	next.status = valueobject.LoanStatusApproved
	next.reviewedAt = now
	next.reviewedBy = approvedBy
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(l.id, l.customerID, approvedBy))
	return next, nil
}

// Reject transitions PENDING -> REJECTED.
func (l Loan) Reject(rejectedBy, reason string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, valueobject.NewInvalidTransition(l.status.String(), "reject")
	}
	next := l
	next.status = valueobject.LoanStatusRejected
	next.reviewedAt = now
	next.reviewedBy = rejectedBy
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, l.customerID, rejectedBy, reason))
	return next, nil
}

// Disburse transitions APPROVED -> DISBURSED, stamps the disbursement
// instant as the start date, and derives the end date from the tenure when
// it has not been set already.
func (l Loan) Disburse(disbursedBy string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusApproved) {
		return l, valueobject.NewInvalidTransition(l.status.String(), "disburse")
	}
	next := l
	next.status = valueobject.LoanStatusDisbursed
	next.disbursedAt = now
	next.disbursedBy = disbursedBy
	next.startDate = now
	if next.endDate.IsZero() {
		next.endDate = l.tenureUnit.AddToDate(now, l.tenure)
	}
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDisbursed(
		l.id, l.customerID, l.principal, l.totalPayable, next.startDate, next.endDate, disbursedBy,
	))
	return next, nil
}

// Activate transitions DISBURSED -> ACTIVE. Disbursement and activation
// happen in the same transaction; the split keeps both statuses observable.
func (l Loan) Activate(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusDisbursed) {
		return l, valueobject.NewInvalidTransition(l.status.String(), "activate")
	}
	next := l
	next.status = valueobject.LoanStatusActive
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next, nil
}

// MarkOverdue transitions ACTIVE -> OVERDUE. Callers are expected to have
// checked IsOverdue first; the transition itself only guards the status.
func (l Loan) MarkOverdue(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.NewInvalidTransition(l.status.String(), "mark overdue")
	}
	next := l
	next.status = valueobject.LoanStatusOverdue
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanMarkedOverdue(
		l.id, l.customerID, l.remainingBalance, l.endDate,
	))
	return next, nil
}

// Reactivate transitions OVERDUE -> ACTIVE, for when a rescheduled or
// extended loan is no longer past due.
func (l Loan) Reactivate(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusOverdue) {
		return l, valueobject.NewInvalidTransition(l.status.String(), "reactivate")
	}
	next := l
	next.status = valueobject.LoanStatusActive
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next, nil
}

// MarkDefaulted transitions ACTIVE or OVERDUE -> DEFAULTED.
func (l Loan) MarkDefaulted(markedBy string, now time.Time) (Loan, error) {
	if !l.status.IsPayable() {
		return l, valueobject.NewInvalidTransition(l.status.String(), "mark defaulted")
	}
	next := l
	next.status = valueobject.LoanStatusDefaulted
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDefaulted(
		l.id, l.customerID, l.remainingBalance, markedBy,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Payment allocation (interest-first waterfall)
// ---------------------------------------------------------------------------

// ApplyPayment splits a payment between outstanding interest and outstanding
// principal, interest first, and returns the updated loan together with the
// immutable Repayment record snapshotting the post-payment balances.
//
// The operation is deliberately non-idempotent: applying the same amount
// twice records two payments and double-counts. Duplicate protection is the
// transaction-reference uniqueness enforced at persistence.
func (l Loan) ApplyPayment(
	receiptID string,
	amount decimal.Decimal,
	method valueobject.PaymentMethod,
	transactionRef, recordedBy string,
	now time.Time,
) (Loan, Repayment, error) {
	if !l.status.IsPayable() {
		return l, Repayment{}, valueobject.ErrLoanNotPayable
	}
	if receiptID == "" {
		return l, Repayment{}, valueobject.NewValidationError("receiptId", "is required")
	}
	if amount.LessThan(minimumPayment) {
		return l, Repayment{}, valueobject.NewValidationError("paymentAmount", "must be at least 1")
	}
	if method.IsZero() {
		return l, Repayment{}, valueobject.NewValidationError("paymentMethod", "unknown payment method")
	}
	if amount.GreaterThan(l.remainingBalance) {
		return l, Repayment{}, valueobject.OverpaymentError{
			Outstanding: l.remainingBalance,
			Attempted:   amount,
		}
	}

	remainingInterest := maxZero(l.interestAmount.Sub(l.interestPaid))
	remainingPrincipal := maxZero(l.principal.Sub(l.principalPaid))

	interestPortion := decimal.Min(amount, remainingInterest)
	principalPortion := decimal.Min(amount.Sub(interestPortion), remainingPrincipal)

	next := l
	next.totalPaid = l.totalPaid.Add(amount)
	next.interestPaid = l.interestPaid.Add(interestPortion)
	next.principalPaid = l.principalPaid.Add(principalPortion)
	next.remainingBalance = maxZero(l.totalPayable.Sub(next.totalPaid))
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewRepaymentRecorded(
		receiptID, l.id, l.customerID,
		amount, interestPortion, principalPortion, next.remainingBalance,
		method.String(), recordedBy,
	))

	if next.remainingBalance.IsZero() {
		completed, err := next.complete(now)
		if err != nil {
			return l, Repayment{}, err
		}
		next = completed
	}

	repayment := newRepayment(
		receiptID, l.id, l.customerID,
		amount, interestPortion, principalPortion,
		maxZero(next.interestAmount.Sub(next.interestPaid)),
		maxZero(next.principal.Sub(next.principalPaid)),
		next.remainingBalance,
		method, transactionRef, recordedBy, now,
	)

	return next, repayment, nil
}

// complete transitions ACTIVE or OVERDUE -> COMPLETED once the balance
// reaches zero. It is only reachable through ApplyPayment.
func (l Loan) complete(now time.Time) (Loan, error) {
	if !l.status.IsPayable() {
		return l, valueobject.NewInvalidTransition(l.status.String(), "complete")
	}
	next := l
	next.status = valueobject.LoanStatusCompleted
	next.updatedAt = now
	next.domainEvents = append(copyEvents(l.domainEvents), event.NewLoanCompleted(
		l.id, l.customerID, l.totalPaid,
	))
	return next, nil
}

// IsOverdue reports whether the loan is active, past its end date, and
// still carries a balance. It does not mutate status; the overdue sweep
// applies the transition.
func (l Loan) IsOverdue(asOf time.Time) bool {
	return l.status.Equal(valueobject.LoanStatusActive) &&
		!l.endDate.IsZero() &&
		l.endDate.Before(asOf) &&
		l.remainingBalance.GreaterThan(decimal.Zero)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                           { return l.id }
func (l Loan) CustomerID() string                   { return l.customerID }
func (l Loan) Product() valueobject.LoanProduct     { return l.product }
func (l Loan) Principal() decimal.Decimal           { return l.principal }
func (l Loan) InterestRate() decimal.Decimal        { return l.interestRate }
func (l Loan) InterestAmount() decimal.Decimal      { return l.interestAmount }
func (l Loan) TotalPayable() decimal.Decimal        { return l.totalPayable }
func (l Loan) InstallmentAmount() decimal.Decimal   { return l.installmentAmount }
func (l Loan) Tenure() int                          { return l.tenure }
func (l Loan) TenureUnit() valueobject.TenureUnit   { return l.tenureUnit }
func (l Loan) TotalPaid() decimal.Decimal           { return l.totalPaid }
func (l Loan) InterestPaid() decimal.Decimal        { return l.interestPaid }
func (l Loan) PrincipalPaid() decimal.Decimal       { return l.principalPaid }
func (l Loan) RemainingBalance() decimal.Decimal    { return l.remainingBalance }
func (l Loan) Status() valueobject.LoanStatus       { return l.status }
func (l Loan) AppliedAt() time.Time                 { return l.appliedAt }
func (l Loan) ReviewedAt() time.Time                { return l.reviewedAt }
func (l Loan) DisbursedAt() time.Time               { return l.disbursedAt }
func (l Loan) StartDate() time.Time                 { return l.startDate }
func (l Loan) EndDate() time.Time                   { return l.endDate }
func (l Loan) CreatedBy() string                    { return l.createdBy }
func (l Loan) ReviewedBy() string                   { return l.reviewedBy }
func (l Loan) DecisionReason() string               { return l.decisionReason }
func (l Loan) DisbursedBy() string                  { return l.disbursedBy }
func (l Loan) Version() int                         { return l.version }
func (l Loan) CreatedAt() time.Time                 { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                 { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent    { return l.domainEvents }

// Terms returns the loan's financial terms as a single value.
func (l Loan) Terms() LoanTerms {
	return LoanTerms{
		InterestRate:      l.interestRate,
		InterestAmount:    l.interestAmount,
		TotalPayable:      l.totalPayable,
		InstallmentAmount: l.installmentAmount,
		TenureUnit:        l.tenureUnit,
	}
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
