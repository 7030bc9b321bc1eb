package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// DisburseLoanUseCase releases the funds of an approved loan. Disbursement
// and activation happen back to back so a persisted loan is never left in
// DISBURSED limbo, and the customer moves to ACTIVE on first disbursement.
type DisburseLoanUseCase struct {
	loanRepo     port.LoanRepository
	customerRepo port.CustomerRepository
	publisher    port.EventPublisher
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(
	loanRepo port.LoanRepository,
	customerRepo port.CustomerRepository,
	publisher port.EventPublisher,
) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

// Execute disburses an approved loan. Only admins disburse.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Resolve and authorize the actor.
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.LoanResponse{}, err
	}
	if err := requireRole(claims); err != nil {
		return dto.LoanResponse{}, err
	}

	// 2. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 3. Disburse, then activate in the same persisted step.
	loan, err = loan.Disburse(claims.StaffID, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("disburse loan: %w", err)
	}
	loan, err = loan.Activate(now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("activate loan: %w", err)
	}

	// 4. Persist the loan.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 5. First disbursement activates the customer. An already active
	//    customer stays as is.
	customer, err := uc.customerRepo.FindByID(ctx, loan.CustomerID())
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find customer: %w", err)
	}
	if activated, err := customer.Activate(now); err == nil {
		if err := uc.customerRepo.Save(ctx, activated); err != nil {
			return dto.LoanResponse{}, fmt.Errorf("save customer: %w", err)
		}
	} else if !errors.Is(err, valueobject.ErrInvalidStatusTransition) {
		return dto.LoanResponse{}, fmt.Errorf("activate customer: %w", err)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
