package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/application/usecase"
	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	"github.com/jengacredit/loanbook/pkg/auth"
)

func validRegisterRequest() dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		Name:           "Wanjiru Kamau",
		Phone:          "+254700111222",
		NationalID:     "12345678",
		Address:        "Kawangware, Nairobi",
		Classification: "INDIVIDUAL",
		NextOfKin: dto.NextOfKin{
			Name:         "Peter Kamau",
			Relationship: "spouse",
			Phone:        "+254700333444",
		},
		PreferredProduct: "MONTHLY",
	}
}

func TestRegisterCustomer_Execute(t *testing.T) {
	newUC := func(customers *mockCustomerRepository, publisher *mockEventPublisher) *usecase.RegisterCustomerUseCase {
		return usecase.NewRegisterCustomerUseCase(customers, &mockSequenceRepository{}, publisher)
	}

	t.Run("registers a pending customer with an assigned id", func(t *testing.T) {
		customers := &mockCustomerRepository{}
		publisher := &mockEventPublisher{}

		resp, err := newUC(customers, publisher).Execute(
			ctxWithRole(auth.RoleLoanOfficer), validRegisterRequest())
		require.NoError(t, err)

		assert.Equal(t, "CU00001", resp.ID)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "ST0001", resp.RegisteredBy)
		require.Len(t, customers.savedCustomers, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("concurrent registrations draw dense unique ids", func(t *testing.T) {
		const n = 1000

		customers := &mockCustomerRepository{
			saveFunc: func(context.Context, model.Customer) error { return nil },
		}
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...event.DomainEvent) error { return nil },
		}
		uc := newUC(customers, publisher)

		type outcome struct {
			id  string
			err error
		}
		outcomes := make(chan outcome, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := uc.Execute(ctxWithRole(auth.RoleLoanOfficer), validRegisterRequest())
				outcomes <- outcome{id: resp.ID, err: err}
			}()
		}
		wg.Wait()
		close(outcomes)

		seen := make(map[string]bool, n)
		for out := range outcomes {
			require.NoError(t, out.err)
			assert.False(t, seen[out.id], "duplicate id %s", out.id)
			seen[out.id] = true
		}
		require.Len(t, seen, n)
		// Dense and sequential: every id in [1, n] was issued exactly once.
		for seq := 1; seq <= n; seq++ {
			id, err := service.FormatID(service.EntityCustomer, int64(seq))
			require.NoError(t, err)
			assert.True(t, seen[id], "missing id %s", id)
		}
	})

	t.Run("group registration carries the roster", func(t *testing.T) {
		customers := &mockCustomerRepository{}
		req := validRegisterRequest()
		req.Name = "Umoja Chama"
		req.Classification = "GROUP"
		req.GroupMembers = []dto.GroupMember{
			{Name: "Amina Said", Phone: "+254700777888", Role: "chair"},
			{Name: "Grace Otieno", Phone: "+254700999000", Role: "treasurer"},
		}

		resp, err := newUC(customers, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), req)
		require.NoError(t, err)
		assert.Len(t, resp.GroupMembers, 2)
	})

	t.Run("unknown product is refused", func(t *testing.T) {
		req := validRegisterRequest()
		req.PreferredProduct = "FORTNIGHTLY"
		_, err := newUC(&mockCustomerRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse product")
	})

	t.Run("refuses an unauthenticated caller", func(t *testing.T) {
		_, err := newUC(&mockCustomerRepository{}, &mockEventPublisher{}).Execute(
			context.Background(), validRegisterRequest())
		assert.ErrorIs(t, err, valueobject.ErrPermissionDenied)
	})
}

func TestReviewCustomer_Execute(t *testing.T) {
	newUC := func(customers *mockCustomerRepository, publisher *mockEventPublisher) *usecase.ReviewCustomerUseCase {
		return usecase.NewReviewCustomerUseCase(customers, publisher)
	}

	pendingCustomer := func(t *testing.T) model.Customer {
		t.Helper()
		req := validRegisterRequest()
		pending, err := model.NewCustomer("CU00001", req.Name, req.Phone, req.NationalID,
			req.Address, model.ClassificationIndividual, nil, model.NextOfKin{},
			valueobject.LoanProductMonthly, "ST0002", time.Now().UTC())
		require.NoError(t, err)
		return pending.ClearEvents()
	}

	t.Run("approves a pending customer", func(t *testing.T) {
		customer := pendingCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}
		publisher := &mockEventPublisher{}

		resp, err := newUC(customers, publisher).Execute(
			ctxWithRole(auth.RoleAdmin),
			dto.ReviewCustomerRequest{CustomerID: "CU00001", Approve: true})
		require.NoError(t, err)

		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, "ST0001", resp.ReviewedBy)
		require.Len(t, customers.savedCustomers, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("rejects with a reason", func(t *testing.T) {
		customer := pendingCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}

		resp, err := newUC(customers, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleAdmin),
			dto.ReviewCustomerRequest{CustomerID: "CU00001", Approve: false, Reason: "id mismatch"})
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, "id mismatch", resp.DecisionReason)
	})

	t.Run("review is not repeatable", func(t *testing.T) {
		customer := approvedCustomer(t)
		customers := &mockCustomerRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Customer, error) {
				return customer, nil
			},
		}

		_, err := newUC(customers, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleAdmin),
			dto.ReviewCustomerRequest{CustomerID: "CU00001", Approve: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("refuses a loan officer", func(t *testing.T) {
		_, err := newUC(&mockCustomerRepository{}, &mockEventPublisher{}).Execute(
			ctxWithRole(auth.RoleLoanOfficer),
			dto.ReviewCustomerRequest{CustomerID: "CU00001", Approve: true})
		assert.ErrorIs(t, err, valueobject.ErrPermissionDenied)
	})
}
