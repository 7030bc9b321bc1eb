package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// TenureUnit – immutable value object
// ---------------------------------------------------------------------------

// TenureUnit is the calendar unit a loan's tenure is denominated in.
type TenureUnit struct {
	value string
}

const (
	tenureUnitDays   = "days"
	tenureUnitWeeks  = "weeks"
	tenureUnitMonths = "months"
)

var (
	TenureUnitDays   = TenureUnit{value: tenureUnitDays}
	TenureUnitWeeks  = TenureUnit{value: tenureUnitWeeks}
	TenureUnitMonths = TenureUnit{value: tenureUnitMonths}
)

var validTenureUnits = map[string]TenureUnit{
	tenureUnitDays:   TenureUnitDays,
	tenureUnitWeeks:  TenureUnitWeeks,
	tenureUnitMonths: TenureUnitMonths,
}

// NewTenureUnit creates a TenureUnit from a raw string.
func NewTenureUnit(s string) (TenureUnit, error) {
	v, ok := validTenureUnits[s]
	if !ok {
		return TenureUnit{}, fmt.Errorf("invalid tenure unit: %q", s)
	}
	return v, nil
}

// String returns the string representation of the unit.
func (u TenureUnit) String() string { return u.value }

// IsZero returns true if the unit has not been initialised.
func (u TenureUnit) IsZero() bool { return u.value == "" }

// Equal returns true when both units carry the same value.
func (u TenureUnit) Equal(other TenureUnit) bool { return u.value == other.value }

// AddToDate advances t by n units using calendar arithmetic. Month increments
// follow time.AddDate normalisation, so the day-of-month can shift on short
// months.
func (u TenureUnit) AddToDate(t time.Time, n int) time.Time {
	switch u.value {
	case tenureUnitDays:
		return t.AddDate(0, 0, n)
	case tenureUnitWeeks:
		return t.AddDate(0, 0, n*7)
	case tenureUnitMonths:
		return t.AddDate(0, n, 0)
	default:
		return t
	}
}

// ---------------------------------------------------------------------------
// LoanProduct – immutable value object
// ---------------------------------------------------------------------------

// LoanProduct identifies the repayment cadence a loan is sold under. Each
// product carries a fixed interest rate, its natural tenure unit, and the
// maximum tenure the product may be written for.
type LoanProduct struct {
	value string
}

const (
	loanProductMonthly = "MONTHLY"
	loanProductWeekly  = "WEEKLY"
	loanProductDaily   = "DAILY"
)

var (
	LoanProductMonthly = LoanProduct{value: loanProductMonthly}
	LoanProductWeekly  = LoanProduct{value: loanProductWeekly}
	LoanProductDaily   = LoanProduct{value: loanProductDaily}
)

var validLoanProducts = map[string]LoanProduct{
	loanProductMonthly: LoanProductMonthly,
	loanProductWeekly:  LoanProductWeekly,
	loanProductDaily:   LoanProductDaily,
}

type productTerms struct {
	rate      decimal.Decimal
	unit      TenureUnit
	maxTenure int
}

var loanProductTerms = map[string]productTerms{
	loanProductMonthly: {rate: decimal.NewFromInt(25), unit: TenureUnitMonths, maxTenure: 6},
	loanProductWeekly:  {rate: decimal.NewFromInt(27), unit: TenureUnitWeeks, maxTenure: 24},
	loanProductDaily:   {rate: decimal.NewFromInt(18), unit: TenureUnitDays, maxTenure: 20},
}

// NewLoanProduct creates a LoanProduct from a raw string.
func NewLoanProduct(s string) (LoanProduct, error) {
	v, ok := validLoanProducts[s]
	if !ok {
		return LoanProduct{}, fmt.Errorf("invalid loan product: %q", s)
	}
	return v, nil
}

// String returns the string representation of the product.
func (p LoanProduct) String() string { return p.value }

// IsZero returns true if the product has not been initialised.
func (p LoanProduct) IsZero() bool { return p.value == "" }

// Equal returns true when both products carry the same value.
func (p LoanProduct) Equal(other LoanProduct) bool { return p.value == other.value }

// InterestRate returns the product's flat interest rate as a percentage.
func (p LoanProduct) InterestRate() decimal.Decimal { return loanProductTerms[p.value].rate }

// TenureUnit returns the product's natural tenure unit.
func (p LoanProduct) TenureUnit() TenureUnit { return loanProductTerms[p.value].unit }

// MaxTenure returns the product's tenure ceiling in tenure units.
func (p LoanProduct) MaxTenure() int { return loanProductTerms[p.value].maxTenure }
