package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// minimumPrincipal is the smallest principal a loan may be written for.
var minimumPrincipal = decimal.NewFromInt(1000)

// Financials are the derived financial terms of a loan. A zero field on the
// input quote means "not supplied, compute it"; a non-zero field passes
// through unmodified so an upstream quoting step can precompute figures.
type Financials struct {
	InterestRate      decimal.Decimal
	InterestAmount    decimal.Decimal
	TotalPayable      decimal.Decimal
	InstallmentAmount decimal.Decimal
	TenureUnit        valueobject.TenureUnit
}

// InterestPolicy maps a loan product to its financial terms.
type InterestPolicy struct{}

// NewInterestPolicy creates the policy.
func NewInterestPolicy() *InterestPolicy {
	return &InterestPolicy{}
}

// DeriveFinancials computes the interest rate, tenure unit, interest amount,
// total payable, and per-installment amount for a loan. Fields already set on
// quoted take precedence over computed values; the policy fills gaps only.
func (p *InterestPolicy) DeriveFinancials(
	product valueobject.LoanProduct,
	principal decimal.Decimal,
	tenure int,
	quoted Financials,
) (Financials, error) {
	if product.IsZero() {
		return Financials{}, valueobject.NewValidationError("loanProduct", "unknown loan product")
	}
	if principal.LessThan(minimumPrincipal) {
		return Financials{}, valueobject.NewValidationError("principalAmount",
			fmt.Sprintf("must be at least %s", minimumPrincipal))
	}
	if tenure <= 0 {
		return Financials{}, valueobject.NewValidationError("tenure", "must be a positive integer")
	}

	out := quoted

	if out.InterestRate.IsZero() {
		out.InterestRate = product.InterestRate()
	}
	if out.TenureUnit.IsZero() {
		out.TenureUnit = product.TenureUnit()
	}
	if out.InterestAmount.IsZero() {
		out.InterestAmount = principal.Mul(out.InterestRate).Div(decimal.NewFromInt(100)).Round(2)
	}
	if out.TotalPayable.IsZero() {
		out.TotalPayable = principal.Add(out.InterestAmount)
	}
	if out.InstallmentAmount.IsZero() {
		out.InstallmentAmount = out.TotalPayable.Div(decimal.NewFromInt(int64(tenure))).Round(2)
	}

	// A quote may precompute figures but never contradict them. The ledger
	// identity totalPaid = interestPaid + principalPaid holds only when
	// totalPayable is exactly principal plus interest.
	if !quoted.InterestRate.IsZero() && !quoted.InterestAmount.IsZero() {
		want := principal.Mul(out.InterestRate).Div(decimal.NewFromInt(100)).Round(2)
		if !out.InterestAmount.Equal(want) {
			return Financials{}, valueobject.NewValidationError("interestAmount",
				fmt.Sprintf("disagrees with quoted rate: expected %s, got %s", want, out.InterestAmount))
		}
	}
	if !out.TotalPayable.Equal(principal.Add(out.InterestAmount)) {
		return Financials{}, valueobject.NewValidationError("totalPayable",
			fmt.Sprintf("must equal principal plus interest (%s)", principal.Add(out.InterestAmount)))
	}

	return out, nil
}

// ValidateTenure enforces the product's tenure ceiling. Stated separately
// from DeriveFinancials because it is a product-sales constraint, not a
// property of the arithmetic.
func (p *InterestPolicy) ValidateTenure(product valueobject.LoanProduct, tenure int) error {
	if tenure <= 0 {
		return valueobject.NewValidationError("tenure", "must be a positive integer")
	}
	if max := product.MaxTenure(); tenure > max {
		return valueobject.NewValidationError("tenure",
			fmt.Sprintf("exceeds %s product ceiling of %d %s", product, max, product.TenureUnit()))
	}
	return nil
}
