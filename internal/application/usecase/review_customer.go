package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
)

// ReviewCustomerUseCase approves or rejects a customer pending KYC review.
type ReviewCustomerUseCase struct {
	customerRepo port.CustomerRepository
	publisher    port.EventPublisher
}

// NewReviewCustomerUseCase wires dependencies.
func NewReviewCustomerUseCase(
	customerRepo port.CustomerRepository,
	publisher port.EventPublisher,
) *ReviewCustomerUseCase {
	return &ReviewCustomerUseCase{
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

// Execute applies a review decision. Only admins decide.
func (uc *ReviewCustomerUseCase) Execute(
	ctx context.Context,
	req dto.ReviewCustomerRequest,
) (dto.CustomerResponse, error) {
	now := time.Now().UTC()

	// 1. Resolve and authorize the actor.
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.CustomerResponse{}, err
	}
	if err := requireRole(claims); err != nil {
		return dto.CustomerResponse{}, err
	}

	// 2. Retrieve the customer.
	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("find customer: %w", err)
	}

	// 3. Apply the decision.
	if req.Approve {
		customer, err = customer.Approve(claims.StaffID, now)
	} else {
		customer, err = customer.Reject(claims.StaffID, req.Reason, now)
	}
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("review customer: %w", err)
	}

	// 4. Persist.
	if err := uc.customerRepo.Save(ctx, customer); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, customer.DomainEvents()...); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toCustomerResponse(customer), nil
}
