package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	pgdb "github.com/jengacredit/loanbook/pkg/postgres"
)

const repaymentColumns = `
	receipt_id, loan_id, customer_id,
	amount, interest_paid, principal_paid,
	remaining_interest, remaining_principal, remaining_balance,
	payment_date, payment_method, status, transaction_ref, recorded_by, created_at`

// RepaymentRepo implements port.RepaymentRepository on PostgreSQL. The
// ledger is append-only; there is no update path.
type RepaymentRepo struct {
	db pgdb.Querier
}

// NewRepaymentRepo creates a PostgreSQL-backed repayment repository.
func NewRepaymentRepo(db pgdb.Querier) *RepaymentRepo {
	return &RepaymentRepo{db: db}
}

// Save appends a ledger entry. A repeated (loan_id, transaction_ref) pair
// trips the unique index and surfaces as ErrDuplicateTransaction.
func (r *RepaymentRepo) Save(ctx context.Context, rep model.Repayment) error {
	query := `
		INSERT INTO repayments (` + repaymentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	_, err := r.db.Exec(ctx, query,
		rep.ReceiptID(), rep.LoanID(), rep.CustomerID(),
		rep.Amount(), rep.InterestPaid(), rep.PrincipalPaid(),
		rep.RemainingInterest(), rep.RemainingPrincipal(), rep.RemainingBalance(),
		rep.PaymentDate(), rep.Method().String(), rep.Status().String(),
		nullStr(rep.TransactionRef()), rep.RecordedBy(), rep.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err, "repayments_loan_txref_key") {
			return fmt.Errorf("repayment %s on loan %s: %w",
				rep.TransactionRef(), rep.LoanID(), valueobject.ErrDuplicateTransaction)
		}
		return fmt.Errorf("save repayment: %w", err)
	}
	return nil
}

// FindByReceiptID retrieves one ledger entry.
func (r *RepaymentRepo) FindByReceiptID(ctx context.Context, receiptID string) (model.Repayment, error) {
	query := `SELECT ` + repaymentColumns + ` FROM repayments WHERE receipt_id = $1`
	rep, err := scanRepayment(r.db.QueryRow(ctx, query, receiptID))
	if err != nil {
		return model.Repayment{}, mapFindErr(err, "repayment", receiptID)
	}
	return rep, nil
}

// FindByLoanID lists a loan's ledger in chronological order.
func (r *RepaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error) {
	query := `SELECT ` + repaymentColumns + ` FROM repayments WHERE loan_id = $1 ORDER BY payment_date, receipt_id`
	rows, err := r.db.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query repayments: %w", err)
	}
	defer rows.Close()

	var reps []model.Repayment
	for rows.Next() {
		rep, err := scanRepayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repayment: %w", err)
		}
		reps = append(reps, rep)
	}
	return reps, rows.Err()
}

func scanRepayment(s scannable) (model.Repayment, error) {
	var (
		receiptID, loanID, customerID           string
		amount, interestPaid, principalPaid     decimal.Decimal
		remInterest, remPrincipal, remBalance   decimal.Decimal
		paymentDate, createdAt                  time.Time
		methodStr, statusStr                    string
		transactionRef                          *string
		recordedBy                              string
	)

	err := s.Scan(
		&receiptID, &loanID, &customerID,
		&amount, &interestPaid, &principalPaid,
		&remInterest, &remPrincipal, &remBalance,
		&paymentDate, &methodStr, &statusStr, &transactionRef, &recordedBy, &createdAt,
	)
	if err != nil {
		return model.Repayment{}, err
	}

	method, err := valueobject.NewPaymentMethod(methodStr)
	if err != nil {
		return model.Repayment{}, fmt.Errorf("parse payment method: %w", err)
	}
	status, err := valueobject.NewRepaymentStatus(statusStr)
	if err != nil {
		return model.Repayment{}, fmt.Errorf("parse repayment status: %w", err)
	}

	return model.ReconstructRepayment(
		receiptID, loanID, customerID,
		amount, interestPaid, principalPaid,
		remInterest, remPrincipal, remBalance,
		paymentDate, method, status,
		derefStr(transactionRef), recordedBy, createdAt,
	), nil
}
