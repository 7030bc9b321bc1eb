package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/application/usecase"
	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	"github.com/jengacredit/loanbook/pkg/auth"
)

func approvedLoan(t *testing.T) model.Loan {
	t.Helper()
	now := time.Now().UTC()
	loan, err := model.NewLoan("LN000001", "CU00001", valueobject.LoanProductWeekly,
		dec("5000"), 10, model.LoanTerms{
			InterestRate:      dec("27"),
			InterestAmount:    dec("1350"),
			TotalPayable:      dec("6350"),
			InstallmentAmount: dec("635"),
			TenureUnit:        valueobject.TenureUnitWeeks,
		}, "ST0002", now)
	require.NoError(t, err)
	loan, err = loan.Approve("ST0001", now)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestDisburseLoan_Execute(t *testing.T) {
	newUC := func(loans *mockLoanRepository, customers *mockCustomerRepository,
		publisher *mockEventPublisher) *usecase.DisburseLoanUseCase {
		return usecase.NewDisburseLoanUseCase(loans, customers, publisher)
	}

	t.Run("disburses and activates in one step", func(t *testing.T) {
		loan := approvedLoan(t)
		customer := approvedCustomer(t)
		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return loan, nil
			},
		}
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}
		publisher := &mockEventPublisher{}

		resp, err := newUC(loans, customers, publisher).Execute(
			ctxWithRole(auth.RoleAdmin), dto.DisburseLoanRequest{LoanID: "LN000001"})
		require.NoError(t, err)

		assert.Equal(t, "ACTIVE", resp.Status)
		require.NotNil(t, resp.StartDate)
		require.NotNil(t, resp.EndDate)
		assert.Equal(t, resp.StartDate.AddDate(0, 0, 70), *resp.EndDate, "ten weeks out")

		require.Len(t, loans.savedLoans, 1)
		assert.True(t, loans.savedLoans[0].Status().Equal(valueobject.LoanStatusActive))

		require.Len(t, customers.savedCustomers, 1)
		assert.True(t, customers.savedCustomers[0].Status().Equal(valueobject.CustomerStatusActive))

		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("already active customer is left alone", func(t *testing.T) {
		loan := approvedLoan(t)
		customer := approvedCustomer(t)
		customer, err := customer.Activate(time.Now().UTC())
		require.NoError(t, err)

		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return loan, nil
			},
		}
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}

		_, err = newUC(loans, customers, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleAdmin), dto.DisburseLoanRequest{LoanID: "LN000001"})
		require.NoError(t, err)
		assert.Empty(t, customers.savedCustomers)
	})

	t.Run("refuses a pending loan", func(t *testing.T) {
		now := time.Now().UTC()
		pending, err := model.NewLoan("LN000001", "CU00001", valueobject.LoanProductWeekly,
			dec("5000"), 10, model.LoanTerms{
				InterestRate:      dec("27"),
				InterestAmount:    dec("1350"),
				TotalPayable:      dec("6350"),
				InstallmentAmount: dec("635"),
				TenureUnit:        valueobject.TenureUnitWeeks,
			}, "ST0002", now)
		require.NoError(t, err)

		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return pending, nil
			},
		}

		_, err = newUC(loans, &mockCustomerRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleAdmin), dto.DisburseLoanRequest{LoanID: "LN000001"})
		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("refuses a loan officer", func(t *testing.T) {
		_, err := newUC(&mockLoanRepository{}, &mockCustomerRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), dto.DisburseLoanRequest{LoanID: "LN000001"})
		assert.ErrorIs(t, err, valueobject.ErrPermissionDenied)
	})
}
