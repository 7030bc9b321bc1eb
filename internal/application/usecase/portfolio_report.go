package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/pkg/auth"
)

// PortfolioReportUseCase builds the aggregated portfolio view for branch
// management and auditors.
type PortfolioReportUseCase struct {
	loanRepo port.LoanRepository
}

// NewPortfolioReportUseCase wires dependencies.
func NewPortfolioReportUseCase(loanRepo port.LoanRepository) *PortfolioReportUseCase {
	return &PortfolioReportUseCase{loanRepo: loanRepo}
}

// Execute computes the portfolio totals as of now.
func (uc *PortfolioReportUseCase) Execute(ctx context.Context) (dto.PortfolioReportResponse, error) {
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.PortfolioReportResponse{}, err
	}
	if err := requireRole(claims, auth.RoleAuditor); err != nil {
		return dto.PortfolioReportResponse{}, err
	}

	totals, err := uc.loanRepo.PortfolioTotals(ctx)
	if err != nil {
		return dto.PortfolioReportResponse{}, fmt.Errorf("portfolio totals: %w", err)
	}

	monthly := make([]dto.MonthlyCollection, 0, len(totals.MonthlyCollections))
	for _, mc := range totals.MonthlyCollections {
		monthly = append(monthly, dto.MonthlyCollection{Month: mc.Month, Amount: mc.Amount})
	}

	return dto.PortfolioReportResponse{
		LoansByStatus:      totals.LoansByStatus,
		LoansByProduct:     totals.LoansByProduct,
		PrincipalDisbursed: totals.PrincipalDisbursed,
		InterestCharged:    totals.InterestCharged,
		TotalCollected:     totals.TotalCollected,
		OutstandingBalance: totals.OutstandingBalance,
		MonthlyCollections: monthly,
		GeneratedAt:        time.Now().UTC(),
	}, nil
}
