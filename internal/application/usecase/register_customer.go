package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	"github.com/jengacredit/loanbook/pkg/auth"
)

// RegisterCustomerUseCase registers a new customer pending KYC review.
type RegisterCustomerUseCase struct {
	customerRepo port.CustomerRepository
	sequences    port.SequenceRepository
	publisher    port.EventPublisher
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(
	customerRepo port.CustomerRepository,
	sequences port.SequenceRepository,
	publisher port.EventPublisher,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customerRepo: customerRepo,
		sequences:    sequences,
		publisher:    publisher,
	}
}

// Execute registers a customer and returns the assigned identifier.
func (uc *RegisterCustomerUseCase) Execute(
	ctx context.Context,
	req dto.RegisterCustomerRequest,
) (dto.CustomerResponse, error) {
	now := time.Now().UTC()

	// 1. Resolve and authorize the actor.
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.CustomerResponse{}, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer); err != nil {
		return dto.CustomerResponse{}, err
	}

	// 2. Parse the preferred product.
	product, err := valueobject.NewLoanProduct(req.PreferredProduct)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("parse product: %w", err)
	}

	// 3. Assign the next customer identifier.
	id, err := nextID(ctx, uc.sequences, service.EntityCustomer)
	if err != nil {
		return dto.CustomerResponse{}, err
	}

	// 4. Create the aggregate.
	members := make([]model.GroupMember, 0, len(req.GroupMembers))
	for _, m := range req.GroupMembers {
		members = append(members, model.GroupMember{Name: m.Name, Phone: m.Phone, Role: m.Role})
	}
	customer, err := model.NewCustomer(
		id, req.Name, req.Phone, req.NationalID, req.Address,
		model.Classification(req.Classification), members,
		model.NextOfKin{
			Name:         req.NextOfKin.Name,
			Relationship: req.NextOfKin.Relationship,
			Phone:        req.NextOfKin.Phone,
			Address:      req.NextOfKin.Address,
		},
		product, claims.StaffID, now,
	)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("create customer: %w", err)
	}

	// 5. Persist.
	if err := uc.customerRepo.Save(ctx, customer); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, customer.DomainEvents()...); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toCustomerResponse(customer), nil
}
