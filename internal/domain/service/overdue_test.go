package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

func activeLoan(t *testing.T, id string, disbursedAt time.Time, tenure int) model.Loan {
	t.Helper()

	policy := NewInterestPolicy()
	fin, err := policy.DeriveFinancials(valueobject.LoanProductDaily, dec("2000"), tenure, Financials{})
	require.NoError(t, err)

	loan, err := model.NewLoan("LN"+id, "CU00001", valueobject.LoanProductDaily, dec("2000"), tenure,
		model.LoanTerms{
			InterestRate:      fin.InterestRate,
			InterestAmount:    fin.InterestAmount,
			TotalPayable:      fin.TotalPayable,
			InstallmentAmount: fin.InstallmentAmount,
			TenureUnit:        fin.TenureUnit,
		}, "ST0002", disbursedAt.Add(-48*time.Hour))
	require.NoError(t, err)

	loan, err = loan.Approve("ST0001", disbursedAt.Add(-24*time.Hour))
	require.NoError(t, err)
	loan, err = loan.Disburse("ST0001", disbursedAt)
	require.NoError(t, err)
	loan, err = loan.Activate(disbursedAt)
	require.NoError(t, err)
	return loan
}

func TestOverdueDetector(t *testing.T) {
	detector := NewOverdueDetector()
	disbursed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("active loan past end date is overdue", func(t *testing.T) {
		loan := activeLoan(t, "000001", disbursed, 5)
		assert.True(t, detector.IsOverdue(loan, disbursed.AddDate(0, 0, 6)))
	})

	t.Run("active loan before end date is not overdue", func(t *testing.T) {
		loan := activeLoan(t, "000002", disbursed, 5)
		assert.False(t, detector.IsOverdue(loan, disbursed.AddDate(0, 0, 4)))
	})

	t.Run("loan exactly at end date is not overdue", func(t *testing.T) {
		loan := activeLoan(t, "000003", disbursed, 5)
		assert.False(t, detector.IsOverdue(loan, loan.EndDate()))
	})

	t.Run("pending loan is never overdue", func(t *testing.T) {
		policy := NewInterestPolicy()
		fin, err := policy.DeriveFinancials(valueobject.LoanProductDaily, dec("2000"), 5, Financials{})
		require.NoError(t, err)

		loan, err := model.NewLoan("LN000004", "CU00001", valueobject.LoanProductDaily, dec("2000"), 5,
			model.LoanTerms{
				InterestRate:      fin.InterestRate,
				InterestAmount:    fin.InterestAmount,
				TotalPayable:      fin.TotalPayable,
				InstallmentAmount: fin.InstallmentAmount,
				TenureUnit:        fin.TenureUnit,
			}, "ST0002", disbursed)
		require.NoError(t, err)

		assert.False(t, detector.IsOverdue(loan, disbursed.AddDate(1, 0, 0)))
	})

	t.Run("paid off loan past end date is not overdue", func(t *testing.T) {
		loan := activeLoan(t, "000005", disbursed, 5)
		loan, _, err := loan.ApplyPayment("RC0000001", loan.RemainingBalance(),
			valueobject.PaymentMethodCash, "MPESA-1", "ST0002", disbursed.AddDate(0, 0, 2))
		require.NoError(t, err)

		assert.False(t, detector.IsOverdue(loan, disbursed.AddDate(0, 0, 10)))
	})

	t.Run("filter preserves order", func(t *testing.T) {
		a := activeLoan(t, "000006", disbursed, 5)
		b := activeLoan(t, "000007", disbursed, 20)
		c := activeLoan(t, "000008", disbursed, 3)

		overdue := detector.FilterOverdue([]model.Loan{a, b, c}, disbursed.AddDate(0, 0, 6))
		require.Len(t, overdue, 2)
		assert.Equal(t, a.ID(), overdue[0].ID())
		assert.Equal(t, c.ID(), overdue[1].ID())
	})
}
