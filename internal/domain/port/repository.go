package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/service"
)

// CustomerRepository persists Customer aggregates.
type CustomerRepository interface {
	Save(ctx context.Context, customer model.Customer) error
	FindByID(ctx context.Context, id string) (model.Customer, error)
	FindByNationalID(ctx context.Context, nationalID string) (model.Customer, error)
	List(ctx context.Context, limit, offset int) ([]model.Customer, error)
}

// LoanRepository persists Loan aggregates. Save enforces optimistic
// concurrency on the aggregate version and returns
// valueobject.ErrConcurrencyConflict when the stored version moved.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.Loan, error)
	FindActivePastDue(ctx context.Context, asOf time.Time) ([]model.Loan, error)
	PortfolioTotals(ctx context.Context) (PortfolioTotals, error)
}

// PortfolioTotals is the aggregate view backing the portfolio report.
type PortfolioTotals struct {
	LoansByStatus      map[string]int
	LoansByProduct     map[string]int
	PrincipalDisbursed decimal.Decimal
	InterestCharged    decimal.Decimal
	TotalCollected     decimal.Decimal
	OutstandingBalance decimal.Decimal
	MonthlyCollections []MonthlyCollection
}

// MonthlyCollection is one month's collected repayment total.
type MonthlyCollection struct {
	Month  string
	Amount decimal.Decimal
}

// RepaymentRepository persists the append-only repayment ledger. Save
// returns valueobject.ErrDuplicateTransaction when the loan already has a
// repayment with the same transaction reference.
type RepaymentRepository interface {
	Save(ctx context.Context, repayment model.Repayment) error
	FindByReceiptID(ctx context.Context, receiptID string) (model.Repayment, error)
	FindByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error)
}

// PaymentStore persists a payment's loan update and ledger entry as one
// atomic write. A failure of either save leaves neither; the loan's running
// totals must always be reproducible by replaying its ledger. Save errors
// carry the same sentinels as the underlying repositories.
type PaymentStore interface {
	SavePayment(ctx context.Context, loan model.Loan, repayment model.Repayment) error
}

// SequenceRepository hands out monotonically increasing sequence numbers
// per entity kind. Next never returns the same value twice for a kind,
// across concurrent callers and restarts.
type SequenceRepository interface {
	Next(ctx context.Context, kind service.EntityKind) (int64, error)
}

// EventPublisher pushes domain events to the message bus. Publishing
// happens after the save commits; a failed publish surfaces to the caller
// but never rolls back persisted state.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
	Close() error
}
