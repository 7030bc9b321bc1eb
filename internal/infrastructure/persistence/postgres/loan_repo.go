package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	pgdb "github.com/jengacredit/loanbook/pkg/postgres"
)

const loanColumns = `
	id, customer_id, loan_product, principal,
	interest_rate, interest_amount, total_payable, installment_amount,
	tenure, tenure_unit,
	total_paid, interest_paid, principal_paid, remaining_balance,
	status,
	applied_at, reviewed_at, disbursed_at, start_date, end_date,
	created_by, reviewed_by, decision_reason, disbursed_by,
	version, created_at, updated_at`

// LoanRepo implements port.LoanRepository on PostgreSQL.
type LoanRepo struct {
	db pgdb.Querier
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(db pgdb.Querier) *LoanRepo {
	return &LoanRepo{db: db}
}

// Save upserts a loan. Updates only land when the stored version matches
// the aggregate's version; a mismatch means a concurrent writer won.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
		        $16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
		ON CONFLICT (id) DO UPDATE SET
			total_paid        = EXCLUDED.total_paid,
			interest_paid     = EXCLUDED.interest_paid,
			principal_paid    = EXCLUDED.principal_paid,
			remaining_balance = EXCLUDED.remaining_balance,
			status            = EXCLUDED.status,
			reviewed_at       = EXCLUDED.reviewed_at,
			disbursed_at      = EXCLUDED.disbursed_at,
			start_date        = EXCLUDED.start_date,
			end_date          = EXCLUDED.end_date,
			reviewed_by       = EXCLUDED.reviewed_by,
			decision_reason   = EXCLUDED.decision_reason,
			disbursed_by      = EXCLUDED.disbursed_by,
			version           = loans.version + 1,
			updated_at        = EXCLUDED.updated_at
		WHERE loans.version = $25
	`
	tag, err := r.db.Exec(ctx, query,
		loan.ID(), loan.CustomerID(), loan.Product().String(), loan.Principal(),
		loan.InterestRate(), loan.InterestAmount(), loan.TotalPayable(), loan.InstallmentAmount(),
		loan.Tenure(), loan.TenureUnit().String(),
		loan.TotalPaid(), loan.InterestPaid(), loan.PrincipalPaid(), loan.RemainingBalance(),
		loan.Status().String(),
		loan.AppliedAt(), nullTime(loan.ReviewedAt()), nullTime(loan.DisbursedAt()),
		nullTime(loan.StartDate()), nullTime(loan.EndDate()),
		loan.CreatedBy(), nullStr(loan.ReviewedBy()), nullStr(loan.DecisionReason()), nullStr(loan.DisbursedBy()),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s: %w", loan.ID(), valueobject.ErrConcurrencyConflict)
	}
	return nil
}

// FindByID retrieves a loan by its identifier.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Loan{}, mapFindErr(err, "loan", id)
	}
	return loan, nil
}

// FindByCustomerID lists a customer's loans, newest application first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY applied_at DESC`
	return r.queryLoans(ctx, query, customerID)
}

// FindActivePastDue lists active loans whose end date has passed and still
// carry a balance, the overdue sweep's work list.
func (r *LoanRepo) FindActivePastDue(ctx context.Context, asOf time.Time) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + `
		FROM loans
		WHERE status = 'ACTIVE' AND end_date IS NOT NULL AND end_date < $1 AND remaining_balance > 0
		ORDER BY end_date`
	return r.queryLoans(ctx, query, asOf)
}

// PortfolioTotals aggregates the whole book: counts by status and product,
// money totals, and collected amounts per month for the trailing year.
func (r *LoanRepo) PortfolioTotals(ctx context.Context) (port.PortfolioTotals, error) {
	totals := port.PortfolioTotals{
		LoansByStatus:      make(map[string]int),
		LoansByProduct:     make(map[string]int),
		PrincipalDisbursed: decimal.Zero,
		InterestCharged:    decimal.Zero,
		TotalCollected:     decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}

	query := `
		SELECT status,
		       loan_product,
		       COUNT(*),
		       COALESCE(SUM(principal) FILTER (WHERE disbursed_at IS NOT NULL), 0),
		       COALESCE(SUM(interest_amount) FILTER (WHERE disbursed_at IS NOT NULL), 0),
		       COALESCE(SUM(total_paid), 0),
		       COALESCE(SUM(remaining_balance) FILTER (WHERE status IN ('ACTIVE','OVERDUE','DEFAULTED')), 0)
		FROM loans
		GROUP BY status, loan_product
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return port.PortfolioTotals{}, fmt.Errorf("query portfolio totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status, product                           string
			count                                     int
			principal, interest, collected, remaining decimal.Decimal
		)
		if err := rows.Scan(&status, &product, &count, &principal, &interest, &collected, &remaining); err != nil {
			return port.PortfolioTotals{}, fmt.Errorf("scan portfolio totals: %w", err)
		}
		totals.LoansByStatus[status] += count
		totals.LoansByProduct[product] += count
		totals.PrincipalDisbursed = totals.PrincipalDisbursed.Add(principal)
		totals.InterestCharged = totals.InterestCharged.Add(interest)
		totals.TotalCollected = totals.TotalCollected.Add(collected)
		totals.OutstandingBalance = totals.OutstandingBalance.Add(remaining)
	}
	if err := rows.Err(); err != nil {
		return port.PortfolioTotals{}, fmt.Errorf("portfolio totals rows: %w", err)
	}

	monthly, err := r.monthlyCollections(ctx)
	if err != nil {
		return port.PortfolioTotals{}, err
	}
	totals.MonthlyCollections = monthly
	return totals, nil
}

func (r *LoanRepo) monthlyCollections(ctx context.Context) ([]port.MonthlyCollection, error) {
	query := `
		SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(amount), 0)
		FROM repayments
		WHERE payment_date >= date_trunc('month', now()) - INTERVAL '11 months'
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query monthly collections: %w", err)
	}
	defer rows.Close()

	var out []port.MonthlyCollection
	for rows.Next() {
		var mc port.MonthlyCollection
		if err := rows.Scan(&mc.Month, &mc.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly collections: %w", err)
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, customerID, productStr, tenureUnitStr, statusStr string
		principal                                            decimal.Decimal
		interestRate, interestAmount                         decimal.Decimal
		totalPayable, installmentAmount                      decimal.Decimal
		tenure                                               int
		totalPaid, interestPaid, principalPaid               decimal.Decimal
		remainingBalance                                     decimal.Decimal
		appliedAt, createdAt, updatedAt                      time.Time
		reviewedAt, disbursedAt, startDate, endDate          *time.Time
		createdBy                                            string
		reviewedBy, decisionReason, disbursedBy              *string
		version                                              int
	)

	err := s.Scan(
		&id, &customerID, &productStr, &principal,
		&interestRate, &interestAmount, &totalPayable, &installmentAmount,
		&tenure, &tenureUnitStr,
		&totalPaid, &interestPaid, &principalPaid, &remainingBalance,
		&statusStr,
		&appliedAt, &reviewedAt, &disbursedAt, &startDate, &endDate,
		&createdBy, &reviewedBy, &decisionReason, &disbursedBy,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, err
	}

	product, err := valueobject.NewLoanProduct(productStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan product: %w", err)
	}
	tenureUnit, err := valueobject.NewTenureUnit(tenureUnitStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse tenure unit: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, customerID, product, principal,
		model.LoanTerms{
			InterestRate:      interestRate,
			InterestAmount:    interestAmount,
			TotalPayable:      totalPayable,
			InstallmentAmount: installmentAmount,
			TenureUnit:        tenureUnit,
		},
		tenure,
		totalPaid, interestPaid, principalPaid, remainingBalance,
		status,
		appliedAt, deref(reviewedAt), deref(disbursedAt), deref(startDate), deref(endDate),
		createdBy, derefStr(reviewedBy), derefStr(decisionReason), derefStr(disbursedBy),
		version, createdAt, updatedAt,
	), nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
