package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	pgRepo "github.com/jengacredit/loanbook/internal/infrastructure/persistence/postgres"
	"github.com/jengacredit/loanbook/pkg/postgres"
	"github.com/jengacredit/loanbook/pkg/testutil"
)

// TestRepositories_Integration runs the repository suite against a real
// PostgreSQL instance. One container serves all subtests; later subtests
// build on rows created by earlier ones, so they run in order.
func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Cleanup(t)

	require.NoError(t, postgres.RunMigrations(pc.DSN, "file://../../../../migrations"))

	customerRepo := pgRepo.NewCustomerRepo(pc.Pool)
	loanRepo := pgRepo.NewLoanRepo(pc.Pool)
	repaymentRepo := pgRepo.NewRepaymentRepo(pc.Pool)
	sequenceRepo := pgRepo.NewSequenceRepo(pc.Pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("sequences are monotonic per kind", func(t *testing.T) {
		first, err := sequenceRepo.Next(ctx, service.EntityCustomer)
		require.NoError(t, err)
		second, err := sequenceRepo.Next(ctx, service.EntityCustomer)
		require.NoError(t, err)
		assert.Equal(t, first+1, second)

		loanSeq, err := sequenceRepo.Next(ctx, service.EntityLoan)
		require.NoError(t, err)
		assert.Equal(t, int64(1), loanSeq)
	})

	t.Run("sequence repo rejects unknown kind", func(t *testing.T) {
		_, err := sequenceRepo.Next(ctx, service.EntityKind("invoice"))
		assert.Error(t, err)
	})

	t.Run("customer round trip with group roster", func(t *testing.T) {
		product, err := valueobject.NewLoanProduct("WEEKLY")
		require.NoError(t, err)

		customer, err := model.NewCustomer(
			"CU10001", "Umoja Traders", "+254711000111", "G-55231", "Gikomba Market, Nairobi",
			model.ClassificationGroup,
			[]model.GroupMember{
				{Name: "Achieng Odhiambo", Phone: "+254711000112", Role: "Chairperson"},
				{Name: "Njeri Mwangi", Phone: "+254711000113", Role: "Treasurer"},
			},
			model.NextOfKin{},
			product, "ST0002", now,
		)
		require.NoError(t, err)

		require.NoError(t, customerRepo.Save(ctx, customer))

		got, err := customerRepo.FindByID(ctx, "CU10001")
		require.NoError(t, err)
		assert.Equal(t, "Umoja Traders", got.Name())
		assert.Equal(t, model.ClassificationGroup, got.Classification())
		require.Len(t, got.GroupMembers(), 2)
		assert.Equal(t, "Achieng Odhiambo", got.GroupMembers()[0].Name)

		byNID, err := customerRepo.FindByNationalID(ctx, "G-55231")
		require.NoError(t, err)
		assert.Equal(t, "CU10001", byNID.ID())
	})

	t.Run("missing customer maps to not found", func(t *testing.T) {
		_, err := customerRepo.FindByID(ctx, "CU99999")
		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})

	t.Run("loan save enforces optimistic concurrency", func(t *testing.T) {
		loan := newPendingLoan(t, "LN100001", "CU10001", now)
		require.NoError(t, loanRepo.Save(ctx, loan))

		stored, err := loanRepo.FindByID(ctx, "LN100001")
		require.NoError(t, err)
		assert.Equal(t, valueobject.LoanStatusPending, stored.Status())

		approved, err := stored.Approve("ST0001", now)
		require.NoError(t, err)
		require.NoError(t, loanRepo.Save(ctx, approved))

		// A second writer holding the pre-approval snapshot loses.
		staleApproved, err := stored.Approve("ST0003", now)
		require.NoError(t, err)
		err = loanRepo.Save(ctx, staleApproved)
		assert.ErrorIs(t, err, valueobject.ErrConcurrencyConflict)

		reloaded, err := loanRepo.FindByID(ctx, "LN100001")
		require.NoError(t, err)
		assert.Equal(t, valueobject.LoanStatusApproved, reloaded.Status())
		assert.Equal(t, "ST0001", reloaded.ReviewedBy())
	})

	t.Run("repayment ledger rejects duplicate transaction references", func(t *testing.T) {
		loan := activeLoan(t, "LN100002", "CU10001", now)
		require.NoError(t, loanRepo.Save(ctx, loan))

		method, err := valueobject.NewPaymentMethod("MOBILE_MONEY")
		require.NoError(t, err)

		paid, receipt, err := loan.ApplyPayment(
			"RC1000001", decimal.NewFromInt(2000), method, "MPESA-AA11BB", "ST0002", now,
		)
		require.NoError(t, err)
		require.NoError(t, loanRepo.Save(ctx, paid))
		require.NoError(t, repaymentRepo.Save(ctx, receipt))

		reloaded, err := loanRepo.FindByID(ctx, "LN100002")
		require.NoError(t, err)
		_, dup, err := reloaded.ApplyPayment(
			"RC1000002", decimal.NewFromInt(500), method, "MPESA-AA11BB", "ST0002", now,
		)
		require.NoError(t, err)
		err = repaymentRepo.Save(ctx, dup)
		assert.ErrorIs(t, err, valueobject.ErrDuplicateTransaction)

		ledger, err := repaymentRepo.FindByLoanID(ctx, "LN100002")
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, "RC1000001", ledger[0].ReceiptID())
		assert.True(t, ledger[0].InterestPaid().Equal(decimal.NewFromInt(2000)))
	})

	t.Run("transaction rolls back loan write when ledger insert fails", func(t *testing.T) {
		before, err := loanRepo.FindByID(ctx, "LN100002")
		require.NoError(t, err)

		method, err := valueobject.NewPaymentMethod("CASH")
		require.NoError(t, err)

		err = postgres.WithTransaction(ctx, pc.Pool, func(tx pgx.Tx) error {
			txLoans := pgRepo.NewLoanRepo(tx)
			txRepayments := pgRepo.NewRepaymentRepo(tx)

			loan, err := txLoans.FindByID(ctx, "LN100002")
			if err != nil {
				return err
			}
			paid, receipt, err := loan.ApplyPayment(
				"RC1000003", decimal.NewFromInt(1000), method, "MPESA-AA11BB", "ST0002", now,
			)
			if err != nil {
				return err
			}
			if err := txLoans.Save(ctx, paid); err != nil {
				return err
			}
			return txRepayments.Save(ctx, receipt)
		})
		assert.ErrorIs(t, err, valueobject.ErrDuplicateTransaction)

		after, err := loanRepo.FindByID(ctx, "LN100002")
		require.NoError(t, err)
		assert.True(t, after.RemainingBalance().Equal(before.RemainingBalance()))
		assert.Equal(t, before.Version(), after.Version())
	})

	t.Run("active past due picks only overdue candidates", func(t *testing.T) {
		past := activeLoan(t, "LN100003", "CU10001", now.AddDate(0, -6, 0))
		current := activeLoan(t, "LN100004", "CU10001", now)
		require.NoError(t, loanRepo.Save(ctx, past))
		require.NoError(t, loanRepo.Save(ctx, current))

		due, err := loanRepo.FindActivePastDue(ctx, now)
		require.NoError(t, err)

		ids := make([]string, 0, len(due))
		for _, l := range due {
			ids = append(ids, l.ID())
		}
		assert.Contains(t, ids, "LN100003")
		assert.NotContains(t, ids, "LN100004")
	})

	t.Run("portfolio totals aggregate across statuses", func(t *testing.T) {
		totals, err := loanRepo.PortfolioTotals(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, totals.LoansByStatus["ACTIVE"], 2)
		assert.GreaterOrEqual(t, totals.LoansByProduct["MONTHLY"], 2)
		assert.True(t, totals.PrincipalDisbursed.GreaterThan(decimal.Zero))
		assert.True(t, totals.OutstandingBalance.GreaterThan(decimal.Zero))

		// The RC1000001 payment landed this month.
		require.NotEmpty(t, totals.MonthlyCollections)
		latest := totals.MonthlyCollections[len(totals.MonthlyCollections)-1]
		assert.True(t, latest.Amount.GreaterThanOrEqual(decimal.NewFromInt(2000)))
	})
}

func newPendingLoan(t *testing.T, id, customerID string, now time.Time) model.Loan {
	t.Helper()

	product, err := valueobject.NewLoanProduct("MONTHLY")
	require.NoError(t, err)

	policy := service.NewInterestPolicy()
	principal := decimal.NewFromInt(10000)
	fin, err := policy.DeriveFinancials(product, principal, 3, service.Financials{})
	require.NoError(t, err)

	loan, err := model.NewLoan(id, customerID, product, principal, 3, model.LoanTerms{
		InterestRate:      fin.InterestRate,
		InterestAmount:    fin.InterestAmount,
		TotalPayable:      fin.TotalPayable,
		InstallmentAmount: fin.InstallmentAmount,
		TenureUnit:        fin.TenureUnit,
	}, "ST0002", now)
	require.NoError(t, err)
	return loan
}

func activeLoan(t *testing.T, id, customerID string, disbursedAt time.Time) model.Loan {
	t.Helper()

	loan := newPendingLoan(t, id, customerID, disbursedAt)
	approved, err := loan.Approve("ST0001", disbursedAt)
	require.NoError(t, err)
	disbursed, err := approved.Disburse("ST0001", disbursedAt)
	require.NoError(t, err)
	active, err := disbursed.Activate(disbursedAt)
	require.NoError(t, err)
	return active
}
