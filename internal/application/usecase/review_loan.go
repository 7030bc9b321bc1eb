package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
)

// ReviewLoanUseCase approves or rejects a pending loan application.
type ReviewLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewReviewLoanUseCase wires dependencies.
func NewReviewLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *ReviewLoanUseCase {
	return &ReviewLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute applies a review decision. Only admins decide.
func (uc *ReviewLoanUseCase) Execute(
	ctx context.Context,
	req dto.ReviewLoanRequest,
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

	// 3. Apply the decision.
	if req.Approve {
		loan, err = loan.Approve(claims.StaffID, now)
	} else {
		loan, err = loan.Reject(claims.StaffID, req.Reason, now)
	}
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("review loan: %w", err)
	}

	// 4. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
