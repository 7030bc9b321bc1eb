package usecase

import (
	"context"
	"fmt"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/pkg/auth"
)

// GetCustomerUseCase retrieves a single customer.
type GetCustomerUseCase struct {
	customerRepo port.CustomerRepository
}

// NewGetCustomerUseCase wires dependencies.
func NewGetCustomerUseCase(customerRepo port.CustomerRepository) *GetCustomerUseCase {
	return &GetCustomerUseCase{customerRepo: customerRepo}
}

// Execute fetches a customer by ID.
func (uc *GetCustomerUseCase) Execute(
	ctx context.Context,
	req dto.GetCustomerRequest,
) (dto.CustomerResponse, error) {
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.CustomerResponse{}, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer, auth.RoleAuditor); err != nil {
		return dto.CustomerResponse{}, err
	}

	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("find customer: %w", err)
	}
	return toCustomerResponse(customer), nil
}
