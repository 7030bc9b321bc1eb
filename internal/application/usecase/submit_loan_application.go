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

// SubmitLoanApplicationUseCase opens a loan application for an eligible
// customer, derives its financial terms, and leaves it pending review.
type SubmitLoanApplicationUseCase struct {
	customerRepo port.CustomerRepository
	loanRepo     port.LoanRepository
	sequences    port.SequenceRepository
	publisher    port.EventPublisher
	policy       *service.InterestPolicy
}

// NewSubmitLoanApplicationUseCase wires dependencies.
func NewSubmitLoanApplicationUseCase(
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	sequences port.SequenceRepository,
	publisher port.EventPublisher,
	policy *service.InterestPolicy,
) *SubmitLoanApplicationUseCase {
	return &SubmitLoanApplicationUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		sequences:    sequences,
		publisher:    publisher,
		policy:       policy,
	}
}

// Execute creates a loan application in PENDING status.
func (uc *SubmitLoanApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitLoanApplicationRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Resolve and authorize the actor.
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.LoanResponse{}, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer); err != nil {
		return dto.LoanResponse{}, err
	}

	// 2. The customer must exist and be loan eligible.
	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find customer: %w", err)
	}
	if !customer.Status().IsLoanEligible() {
		return dto.LoanResponse{}, valueobject.NewValidationError(
			"customerId", fmt.Sprintf("customer %s is not approved for lending", customer.ID()))
	}

	// 3. Parse the product and enforce its tenure ceiling.
	product, err := valueobject.NewLoanProduct(req.LoanProduct)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("parse product: %w", err)
	}
	if err := uc.policy.ValidateTenure(product, req.Tenure); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("validate tenure: %w", err)
	}

	// 4. Derive financial terms, honoring any quoted figures.
	fin, err := uc.policy.DeriveFinancials(product, req.PrincipalAmount, req.Tenure, service.Financials{
		InterestRate:      req.InterestRate,
		InterestAmount:    req.InterestAmount,
		TotalPayable:      req.TotalPayable,
		InstallmentAmount: req.InstallmentAmount,
	})
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("derive financials: %w", err)
	}

	// 5. Assign the next loan identifier.
	id, err := nextID(ctx, uc.sequences, service.EntityLoan)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 6. Create the aggregate.
	loan, err := model.NewLoan(id, customer.ID(), product, req.PrincipalAmount, req.Tenure,
		model.LoanTerms{
			InterestRate:      fin.InterestRate,
			InterestAmount:    fin.InterestAmount,
			TotalPayable:      fin.TotalPayable,
			InstallmentAmount: fin.InstallmentAmount,
			TenureUnit:        fin.TenureUnit,
		}, claims.StaffID, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	// 7. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 8. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
