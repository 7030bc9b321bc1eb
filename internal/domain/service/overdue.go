package service

import (
	"time"

	"github.com/jengacredit/loanbook/internal/domain/model"
)

// OverdueDetector decides which active loans are past due. It is a pure
// read: the sweep use case applies the status transition.
type OverdueDetector struct{}

func NewOverdueDetector() OverdueDetector {
	return OverdueDetector{}
}

// IsOverdue reports whether the loan should be flagged overdue as of the
// given instant. Loans without an end date (never disbursed) are never
// overdue, and a zero remaining balance means there is nothing to chase.
func (d OverdueDetector) IsOverdue(loan model.Loan, asOf time.Time) bool {
	return loan.IsOverdue(asOf)
}

// FilterOverdue returns the subset of loans that are past due as of the
// given instant, preserving input order.
func (d OverdueDetector) FilterOverdue(loans []model.Loan, asOf time.Time) []model.Loan {
	var overdue []model.Loan
	for _, loan := range loans {
		if loan.IsOverdue(asOf) {
			overdue = append(overdue, loan)
		}
	}
	return overdue
}
