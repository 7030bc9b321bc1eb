package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jengacredit/loanbook/internal/domain/model"
	pgdb "github.com/jengacredit/loanbook/pkg/postgres"
)

// PaymentStore implements port.PaymentStore. The loan upsert and the ledger
// insert share one transaction; a version conflict or duplicate transaction
// reference rolls both back.
type PaymentStore struct {
	pool *pgxpool.Pool
}

// NewPaymentStore creates a PaymentStore backed by the given pool.
func NewPaymentStore(pool *pgxpool.Pool) *PaymentStore {
	return &PaymentStore{pool: pool}
}

// SavePayment writes the updated loan and its receipt atomically.
func (s *PaymentStore) SavePayment(ctx context.Context, loan model.Loan, repayment model.Repayment) error {
	return pgdb.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := NewLoanRepo(tx).Save(ctx, loan); err != nil {
			return err
		}
		return NewRepaymentRepo(tx).Save(ctx, repayment)
	})
}
