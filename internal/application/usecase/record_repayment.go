package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jengacredit/loanbook/internal/application/dto"
	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/port"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	"github.com/jengacredit/loanbook/pkg/auth"
)

const recordRepaymentMaxRetries = 3

// RecordRepaymentUseCase applies a payment to a payable loan and writes the
// receipt to the repayment ledger. A concurrent update to the same loan
// surfaces as a version conflict; the use case reloads and retries a few
// times before giving up.
type RecordRepaymentUseCase struct {
	loanRepo  port.LoanRepository
	payments  port.PaymentStore
	sequences port.SequenceRepository
	publisher port.EventPublisher
}

// NewRecordRepaymentUseCase wires dependencies.
func NewRecordRepaymentUseCase(
	loanRepo port.LoanRepository,
	payments port.PaymentStore,
	sequences port.SequenceRepository,
	publisher port.EventPublisher,
) *RecordRepaymentUseCase {
	return &RecordRepaymentUseCase{
		loanRepo:  loanRepo,
		payments:  payments,
		sequences: sequences,
		publisher: publisher,
	}
}

// Execute records a payment. Each call is one payment; recording the same
// amount twice yields two ledger entries. The transaction reference is the
// dedupe key for retried deliveries of the same real-world payment.
func (uc *RecordRepaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordRepaymentRequest,
) (dto.RepaymentResponse, error) {
	// 1. Resolve and authorize the actor.
	claims, err := actorFromContext(ctx)
	if err != nil {
		return dto.RepaymentResponse{}, err
	}
	if err := requireRole(claims, auth.RoleLoanOfficer); err != nil {
		return dto.RepaymentResponse{}, err
	}

	// 2. Parse the payment method.
	method, err := valueobject.NewPaymentMethod(req.PaymentMethod)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("parse payment method: %w", err)
	}
	if req.TransactionRef == "" {
		return dto.RepaymentResponse{}, valueobject.NewValidationError("transactionRef", "is required")
	}

	// 3. Draw the receipt identifier once; it survives retries.
	receiptID, err := nextID(ctx, uc.sequences, service.EntityRepayment)
	if err != nil {
		return dto.RepaymentResponse{}, err
	}

	// 4. Apply the payment, retrying on version conflicts with a fresh
	//    load each attempt.
	var repayment model.Repayment
	attempt := func() error {
		now := time.Now().UTC()

		loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("find loan: %w", err))
		}

		next, rep, err := loan.ApplyPayment(
			receiptID, req.Amount, method, req.TransactionRef, claims.StaffID, now)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("apply payment: %w", err))
		}

		// Loan and receipt land atomically. Only a version conflict is
		// worth retrying; a duplicate transaction reference never
		// resolves itself.
		if err := uc.payments.SavePayment(ctx, next, rep); err != nil {
			if errors.Is(err, valueobject.ErrConcurrencyConflict) {
				return fmt.Errorf("save payment: %w", err)
			}
			return backoff.Permanent(fmt.Errorf("save payment: %w", err))
		}

		repayment = rep
		if err := uc.publisher.Publish(ctx, next.DomainEvents()...); err != nil {
			return backoff.Permanent(fmt.Errorf("publish events: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), recordRepaymentMaxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return dto.RepaymentResponse{}, err
	}

	return toRepaymentResponse(repayment), nil
}
