package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/application/usecase"
	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	"github.com/jengacredit/loanbook/pkg/auth"
)

// --- Mocks ---

type mockCustomerRepository struct {
	saveFunc       func(ctx context.Context, c model.Customer) error
	findByIDFunc   func(ctx context.Context, id string) (model.Customer, error)
	savedCustomers []model.Customer
}

func (m *mockCustomerRepository) Save(ctx context.Context, c model.Customer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, c)
	}
	m.savedCustomers = append(m.savedCustomers, c)
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Customer{}, valueobject.ErrNotFound
}

func (m *mockCustomerRepository) FindByNationalID(_ context.Context, _ string) (model.Customer, error) {
	return model.Customer{}, valueobject.ErrNotFound
}

func (m *mockCustomerRepository) List(_ context.Context, _, _ int) ([]model.Customer, error) {
	return nil, nil
}

type mockLoanRepository struct {
	saveFunc              func(ctx context.Context, loan model.Loan) error
	findByIDFunc          func(ctx context.Context, id string) (model.Loan, error)
	findByCustomerIDFunc  func(ctx context.Context, customerID string) ([]model.Loan, error)
	findActivePastDueFunc func(ctx context.Context, asOf time.Time) ([]model.Loan, error)
	savedLoans            []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, valueobject.ErrNotFound
}

func (m *mockLoanRepository) FindByCustomerID(ctx context.Context, customerID string) ([]model.Loan, error) {
	if m.findByCustomerIDFunc != nil {
		return m.findByCustomerIDFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockLoanRepository) FindActivePastDue(ctx context.Context, asOf time.Time) ([]model.Loan, error) {
	if m.findActivePastDueFunc != nil {
		return m.findActivePastDueFunc(ctx, asOf)
	}
	return nil, nil
}

func (m *mockLoanRepository) PortfolioTotals(_ context.Context) (port.PortfolioTotals, error) {
	return port.PortfolioTotals{}, nil
}

type mockRepaymentRepository struct {
	saveFunc         func(ctx context.Context, rep model.Repayment) error
	findByLoanIDFunc func(ctx context.Context, loanID string) ([]model.Repayment, error)
	savedRepayments  []model.Repayment
}

func (m *mockRepaymentRepository) Save(ctx context.Context, rep model.Repayment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, rep)
	}
	m.savedRepayments = append(m.savedRepayments, rep)
	return nil
}

func (m *mockRepaymentRepository) FindByReceiptID(_ context.Context, _ string) (model.Repayment, error) {
	return model.Repayment{}, valueobject.ErrNotFound
}

func (m *mockRepaymentRepository) FindByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

type mockSequenceRepository struct {
	counter int64
}

func (m *mockSequenceRepository) Next(_ context.Context, _ service.EntityKind) (int64, error) {
	return atomic.AddInt64(&m.counter, 1), nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) Close() error { return nil }

// --- Helpers ---

func ctxWithRole(role string) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{
		StaffID: "ST0001",
		Name:    "Test Staff",
		Roles:   []string{role},
	})
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func approvedCustomer(t *testing.T) model.Customer {
	t.Helper()
	now := time.Now().UTC()
	c, err := model.NewCustomer("CU00001", "Wanjiru Kamau", "+254700111222", "12345678",
		"Nairobi", model.ClassificationIndividual, nil, model.NextOfKin{},
		valueobject.LoanProductMonthly, "ST0002", now)
	require.NoError(t, err)
	c, err = c.Approve("ST0001", now)
	require.NoError(t, err)
	return c.ClearEvents()
}

// --- Tests ---

func validSubmitRequest() dto.SubmitLoanApplicationRequest {
	return dto.SubmitLoanApplicationRequest{
		CustomerID:      "CU00001",
		LoanProduct:     "MONTHLY",
		PrincipalAmount: dec("10000"),
		Tenure:          3,
	}
}

func TestSubmitLoanApplication_Execute(t *testing.T) {
	newUC := func(customers *mockCustomerRepository, loans *mockLoanRepository,
		publisher *mockEventPublisher) *usecase.SubmitLoanApplicationUseCase {
		return usecase.NewSubmitLoanApplicationUseCase(
			customers, loans, &mockSequenceRepository{}, publisher, service.NewInterestPolicy())
	}

	t.Run("derives financial terms from the product", func(t *testing.T) {
		customer := approvedCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}
		loans := &mockLoanRepository{}
		publisher := &mockEventPublisher{}

		resp, err := newUC(customers, loans, publisher).Execute(
			ctxWithRole(auth.RoleLoanOfficer), validSubmitRequest())
		require.NoError(t, err)

		assert.Equal(t, "LN000001", resp.ID)
		assert.Equal(t, "PENDING", resp.Status)
		assert.True(t, dec("25").Equal(resp.InterestRate))
		assert.True(t, dec("2500").Equal(resp.InterestAmount))
		assert.True(t, dec("12500").Equal(resp.TotalPayable))
		assert.True(t, dec("4166.67").Equal(resp.InstallmentAmount))
		assert.Equal(t, "months", resp.TenureUnit)

		require.Len(t, loans.savedLoans, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("refuses an unapproved customer", func(t *testing.T) {
		now := time.Now().UTC()
		pending, err := model.NewCustomer("CU00001", "Wanjiru Kamau", "+254700111222", "",
			"Nairobi", model.ClassificationIndividual, nil, model.NextOfKin{},
			valueobject.LoanProductMonthly, "ST0002", now)
		require.NoError(t, err)

		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return pending, nil
			},
		}

		_, err = newUC(customers, &mockLoanRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), validSubmitRequest())
		require.Error(t, err)
		assert.True(t, valueobject.IsValidationError(err))
	})

	t.Run("refuses tenure above the product ceiling", func(t *testing.T) {
		customer := approvedCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}

		req := validSubmitRequest()
		req.Tenure = 7
		_, err := newUC(customers, &mockLoanRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validate tenure")
	})

	t.Run("refuses principal below the minimum", func(t *testing.T) {
		customer := approvedCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}

		req := validSubmitRequest()
		req.PrincipalAmount = dec("500")
		_, err := newUC(customers, &mockLoanRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "derive financials")
	})

	t.Run("refuses an unauthenticated caller", func(t *testing.T) {
		_, err := newUC(&mockCustomerRepository{}, &mockLoanRepository{}, &mockEventPublisher{}).Execute(
			context.Background(), validSubmitRequest())
		assert.ErrorIs(t, err, valueobject.ErrPermissionDenied)
	})

	t.Run("refuses an auditor", func(t *testing.T) {
		_, err := newUC(&mockCustomerRepository{}, &mockLoanRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleAuditor), validSubmitRequest())
		assert.ErrorIs(t, err, valueobject.ErrPermissionDenied)
	})

	t.Run("fails when loan save fails", func(t *testing.T) {
		customer := approvedCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}
		loans := &mockLoanRepository{
			saveFunc: func(ctx context.Context, l model.Loan) error {
				return fmt.Errorf("database unavailable")
			},
		}

		_, err := newUC(customers, loans, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), validSubmitRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save loan")
	})
}
