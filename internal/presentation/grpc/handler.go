package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jengacredit/loanbook/internal/application/usecase"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	"github.com/jengacredit/loanbook/pkg/auth"
)

// LoanHandler exposes the application use cases over gRPC.
type LoanHandler struct {
	UnimplementedLoanServiceServer

	registerCustomer   *usecase.RegisterCustomerUseCase
	reviewCustomer     *usecase.ReviewCustomerUseCase
	getCustomer        *usecase.GetCustomerUseCase
	submitLoan         *usecase.SubmitLoanApplicationUseCase
	reviewLoan         *usecase.ReviewLoanUseCase
	disburseLoan       *usecase.DisburseLoanUseCase
	recordRepayment    *usecase.RecordRepaymentUseCase
	getLoan            *usecase.GetLoanUseCase
	listCustomerLoans  *usecase.ListCustomerLoansUseCase
	listLoanRepayments *usecase.ListLoanRepaymentsUseCase
	sweepOverdue       *usecase.SweepOverdueLoansUseCase
	portfolioReport    *usecase.PortfolioReportUseCase
	logger             *slog.Logger
}

// NewLoanHandler wires the use cases into a gRPC-facing handler.
func NewLoanHandler(
	registerCustomer *usecase.RegisterCustomerUseCase,
	reviewCustomer *usecase.ReviewCustomerUseCase,
	getCustomer *usecase.GetCustomerUseCase,
	submitLoan *usecase.SubmitLoanApplicationUseCase,
	reviewLoan *usecase.ReviewLoanUseCase,
	disburseLoan *usecase.DisburseLoanUseCase,
	recordRepayment *usecase.RecordRepaymentUseCase,
	getLoan *usecase.GetLoanUseCase,
	listCustomerLoans *usecase.ListCustomerLoansUseCase,
	listLoanRepayments *usecase.ListLoanRepaymentsUseCase,
	sweepOverdue *usecase.SweepOverdueLoansUseCase,
	portfolioReport *usecase.PortfolioReportUseCase,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		registerCustomer:   registerCustomer,
		reviewCustomer:     reviewCustomer,
		getCustomer:        getCustomer,
		submitLoan:         submitLoan,
		reviewLoan:         reviewLoan,
		disburseLoan:       disburseLoan,
		recordRepayment:    recordRepayment,
		getLoan:            getLoan,
		listCustomerLoans:  listCustomerLoans,
		listLoanRepayments: listLoanRepayments,
		sweepOverdue:       sweepOverdue,
		portfolioReport:    portfolioReport,
		logger:             logger,
	}
}

func (h *LoanHandler) RegisterCustomer(ctx context.Context, req *RegisterCustomerRequest) (*CustomerResponse, error) {
	resp, err := h.registerCustomer.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "RegisterCustomer", err)
	}
	return &resp, nil
}

func (h *LoanHandler) ReviewCustomer(ctx context.Context, req *ReviewCustomerRequest) (*CustomerResponse, error) {
	resp, err := h.reviewCustomer.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "ReviewCustomer", err)
	}
	return &resp, nil
}

func (h *LoanHandler) GetCustomer(ctx context.Context, req *GetCustomerRequest) (*CustomerResponse, error) {
	resp, err := h.getCustomer.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "GetCustomer", err)
	}
	return &resp, nil
}

func (h *LoanHandler) SubmitLoanApplication(ctx context.Context, req *SubmitLoanRequest) (*LoanResponse, error) {
	resp, err := h.submitLoan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "SubmitLoanApplication", err)
	}
	return &resp, nil
}

func (h *LoanHandler) ReviewLoan(ctx context.Context, req *ReviewLoanRequest) (*LoanResponse, error) {
	resp, err := h.reviewLoan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "ReviewLoan", err)
	}
	return &resp, nil
}

func (h *LoanHandler) DisburseLoan(ctx context.Context, req *DisburseLoanRequest) (*LoanResponse, error) {
	resp, err := h.disburseLoan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "DisburseLoan", err)
	}
	return &resp, nil
}

func (h *LoanHandler) RecordRepayment(ctx context.Context, req *RecordRepaymentRequest) (*RepaymentResponse, error) {
	resp, err := h.recordRepayment.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "RecordRepayment", err)
	}
	return &resp, nil
}

func (h *LoanHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*LoanResponse, error) {
	resp, err := h.getLoan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "GetLoan", err)
	}
	return &resp, nil
}

func (h *LoanHandler) ListCustomerLoans(ctx context.Context, req *ListCustomerLoansRequest) (*ListLoansResponse, error) {
	loans, err := h.listCustomerLoans.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "ListCustomerLoans", err)
	}
	return &ListLoansResponse{Loans: loans}, nil
}

func (h *LoanHandler) ListLoanRepayments(ctx context.Context, req *ListRepaymentsRequest) (*ListRepaymentsResponse, error) {
	repayments, err := h.listLoanRepayments.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatusErr(ctx, "ListLoanRepayments", err)
	}
	return &ListRepaymentsResponse{Repayments: repayments}, nil
}

// SweepOverdueLoans triggers a sweep on demand. The scheduled sweep runs
// without a request actor, so the admin gate lives here rather than in the
// use case.
func (h *LoanHandler) SweepOverdueLoans(ctx context.Context, _ *SweepOverdueRequest) (*SweepOverdueResponse, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || !claims.HasRole(auth.RoleAdmin) {
		return nil, status.Error(codes.PermissionDenied, "admin role required")
	}
	resp, err := h.sweepOverdue.Execute(ctx)
	if err != nil {
		return nil, h.toStatusErr(ctx, "SweepOverdueLoans", err)
	}
	return &resp, nil
}

func (h *LoanHandler) GetPortfolioReport(ctx context.Context, _ *PortfolioReportRequest) (*PortfolioReportResponse, error) {
	resp, err := h.portfolioReport.Execute(ctx)
	if err != nil {
		return nil, h.toStatusErr(ctx, "GetPortfolioReport", err)
	}
	return &resp, nil
}

// toStatusErr maps domain errors onto gRPC status codes. Unmapped errors
// surface as Internal with the detail logged rather than leaked.
func (h *LoanHandler) toStatusErr(ctx context.Context, method string, err error) error {
	switch {
	case valueobject.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, valueobject.ErrOverpayment),
		errors.Is(err, valueobject.ErrLoanNotPayable),
		errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrDuplicateTransaction):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, valueobject.ErrConcurrencyConflict):
		return status.Error(codes.Aborted, err.Error())
	default:
		h.logger.ErrorContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}
