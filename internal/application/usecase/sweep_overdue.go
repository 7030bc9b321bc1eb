package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// SweepOverdueLoansUseCase flags active loans past their end date as
// overdue. It runs on a schedule and is also callable on demand.
type SweepOverdueLoansUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	detector  service.OverdueDetector
	logger    *slog.Logger
}

// NewSweepOverdueLoansUseCase wires dependencies.
func NewSweepOverdueLoansUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	detector service.OverdueDetector,
	logger *slog.Logger,
) *SweepOverdueLoansUseCase {
	return &SweepOverdueLoansUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		detector:  detector,
		logger:    logger,
	}
}

// Execute sweeps once. A loan that fails to transition is logged and
// skipped; one bad loan must not stall the sweep. Flagging is idempotent
// because an already overdue loan no longer matches the query.
func (uc *SweepOverdueLoansUseCase) Execute(ctx context.Context) (dto.SweepOverdueResponse, error) {
	now := time.Now().UTC()

	candidates, err := uc.loanRepo.FindActivePastDue(ctx, now)
	if err != nil {
		return dto.SweepOverdueResponse{}, fmt.Errorf("find past due loans: %w", err)
	}

	resp := dto.SweepOverdueResponse{Examined: len(candidates), SweptAsOf: now}
	for _, loan := range uc.detector.FilterOverdue(candidates, now) {
		flagged, err := loan.MarkOverdue(now)
		if err != nil {
			uc.logger.WarnContext(ctx, "skipping loan in overdue sweep",
				"loan_id", loan.ID(), "error", err)
			continue
		}
		if err := uc.loanRepo.Save(ctx, flagged); err != nil {
			// A conflict means someone else just touched the loan; the
			// next sweep picks it up again if still past due.
			if errors.Is(err, valueobject.ErrConcurrencyConflict) {
				uc.logger.WarnContext(ctx, "overdue flag lost a concurrent update",
					"loan_id", loan.ID())
				continue
			}
			return resp, fmt.Errorf("save loan %s: %w", loan.ID(), err)
		}
		if err := uc.publisher.Publish(ctx, flagged.DomainEvents()...); err != nil {
			uc.logger.ErrorContext(ctx, "publishing overdue event failed",
				"loan_id", loan.ID(), "error", err)
		}
		resp.Flagged++
		resp.LoanIDs = append(resp.LoanIDs, loan.ID())
	}

	return resp, nil
}
