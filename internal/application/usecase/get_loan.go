package usecase

import (
	"context"
	"fmt"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/pkg/auth"
)

// GetLoanUseCase retrieves a single loan.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute fetches a loan by ID.
func (uc *GetLoanUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanResponse, error) {
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.LoanResponse{}, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer, auth.RoleAuditor); err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return toLoanResponse(loan), nil
}

// ListCustomerLoansUseCase lists every loan held by a customer.
type ListCustomerLoansUseCase struct {
	loanRepo port.LoanRepository
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(loanRepo port.LoanRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{loanRepo: loanRepo}
}

// Execute lists a customer's loans, newest first per repository ordering.
func (uc *ListCustomerLoansUseCase) Execute(
	ctx context.Context,
	req dto.ListCustomerLoansRequest,
) ([]dto.LoanResponse, error) {
	claims, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer, auth.RoleAuditor); err != nil {
		return nil, err
	}

	loans, err := uc.loanRepo.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("find customer loans: %w", err)
	}

	out := make([]dto.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, toLoanResponse(loan))
	}
	return out, nil
}

// ListLoanRepaymentsUseCase lists the repayment ledger of a loan in
// chronological order.
type ListLoanRepaymentsUseCase struct {
	repaymentRepo port.RepaymentRepository
}

// NewListLoanRepaymentsUseCase wires dependencies.
func NewListLoanRepaymentsUseCase(repaymentRepo port.RepaymentRepository) *ListLoanRepaymentsUseCase {
	return &ListLoanRepaymentsUseCase{repaymentRepo: repaymentRepo}
}

// Execute lists a loan's repayments.
func (uc *ListLoanRepaymentsUseCase) Execute(
	ctx context.Context,
	req dto.ListLoanRepaymentsRequest,
) ([]dto.RepaymentResponse, error) {
	claims, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer, auth.RoleAuditor); err != nil {
		return nil, err
	}

	repayments, err := uc.repaymentRepo.FindByLoanID(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("find loan repayments: %w", err)
	}

	out := make([]dto.RepaymentResponse, 0, len(repayments))
	for _, rep := range repayments {
		out = append(out, toRepaymentResponse(rep))
	}
	return out, nil
}
