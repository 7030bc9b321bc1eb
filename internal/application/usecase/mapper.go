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

// actorFromContext resolves the authenticated staff member. Every use case
// runs on behalf of a staff identity; unauthenticated calls are refused.
func actorFromContext(ctx context.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.StaffID == "" {
		return nil, valueobject.ErrPermissionDenied
	}
	return claims, nil
}

// requireRole refuses actors holding none of the given roles. Admin passes
// every check.
func requireRole(claims *auth.Claims, roles ...string) error {
	if claims.HasRole(auth.RoleAdmin) {
		return nil
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return valueobject.ErrPermissionDenied
}

// nextID draws the next sequence value for the kind and renders it.
func nextID(ctx context.Context, sequences port.SequenceRepository, kind service.EntityKind) (string, error) {
	seq, err := sequences.Next(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("next %s sequence: %w", kind, err)
	}
	id, err := service.FormatID(kind, seq)
	if err != nil {
		return "", fmt.Errorf("format %s id: %w", kind, err)
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	members := make([]dto.GroupMember, 0, len(c.GroupMembers()))
	for _, m := range c.GroupMembers() {
		members = append(members, dto.GroupMember{Name: m.Name, Phone: m.Phone, Role: m.Role})
	}
	kin := c.NextOfKin()
	return dto.CustomerResponse{
		ID:             c.ID(),
		Name:           c.Name(),
		Phone:          c.Phone(),
		NationalID:     c.NationalID(),
		Address:        c.Address(),
		Classification: string(c.Classification()),
		GroupMembers:   members,
		NextOfKin: dto.NextOfKin{
			Name:         kin.Name,
			Relationship: kin.Relationship,
			Phone:        kin.Phone,
			Address:      kin.Address,
		},
		PreferredProduct: c.PreferredProduct().String(),
		Status:           c.Status().String(),
		RegisteredBy:     c.RegisteredBy(),
		ReviewedBy:       c.ReviewedBy(),
		DecisionReason:   c.DecisionReason(),
		CreatedAt:        c.CreatedAt(),
		UpdatedAt:        c.UpdatedAt(),
	}
}

func toLoanResponse(l model.Loan) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:                l.ID(),
		CustomerID:        l.CustomerID(),
		LoanProduct:       l.Product().String(),
		PrincipalAmount:   l.Principal(),
		InterestRate:      l.InterestRate(),
		InterestAmount:    l.InterestAmount(),
		TotalPayable:      l.TotalPayable(),
		InstallmentAmount: l.InstallmentAmount(),
		Tenure:            l.Tenure(),
		TenureUnit:        l.TenureUnit().String(),
		TotalPaid:         l.TotalPaid(),
		InterestPaid:      l.InterestPaid(),
		PrincipalPaid:     l.PrincipalPaid(),
		RemainingBalance:  l.RemainingBalance(),
		Status:            l.Status().String(),
		AppliedAt:         l.AppliedAt(),
		CreatedBy:         l.CreatedBy(),
		ReviewedBy:        l.ReviewedBy(),
		DecisionReason:    l.DecisionReason(),
		DisbursedBy:       l.DisbursedBy(),
		CreatedAt:         l.CreatedAt(),
		UpdatedAt:         l.UpdatedAt(),
	}
	resp.StartDate = timePtr(l.StartDate())
	resp.EndDate = timePtr(l.EndDate())
	return resp
}

func toRepaymentResponse(r model.Repayment) dto.RepaymentResponse {
	return dto.RepaymentResponse{
		ReceiptID:          r.ReceiptID(),
		LoanID:             r.LoanID(),
		CustomerID:         r.CustomerID(),
		Amount:             r.Amount(),
		InterestPaid:       r.InterestPaid(),
		PrincipalPaid:      r.PrincipalPaid(),
		RemainingInterest:  r.RemainingInterest(),
		RemainingPrincipal: r.RemainingPrincipal(),
		RemainingBalance:   r.RemainingBalance(),
		PaymentDate:        r.PaymentDate(),
		PaymentMethod:      r.Method().String(),
		Status:             r.Status().String(),
		TransactionRef:     r.TransactionRef(),
		RecordedBy:         r.RecordedBy(),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
