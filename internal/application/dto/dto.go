package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// GroupMember is one member of a group-lending customer.
type GroupMember struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role,omitempty"`
}

// NextOfKin is the emergency contact captured at registration.
type NextOfKin struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
}

// RegisterCustomerRequest carries the data needed to register a customer.
type RegisterCustomerRequest struct {
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	NationalID       string        `json:"national_id,omitempty"`
	Address          string        `json:"address,omitempty"`
	Classification   string        `json:"classification"`
	GroupMembers     []GroupMember `json:"group_members,omitempty"`
	NextOfKin        NextOfKin     `json:"next_of_kin"`
	PreferredProduct string        `json:"preferred_product"`
}

// ReviewCustomerRequest approves or rejects a pending customer.
type ReviewCustomerRequest struct {
	CustomerID string `json:"customer_id"`
	Approve    bool   `json:"approve"`
	Reason     string `json:"reason,omitempty"`
}

// GetCustomerRequest identifies a customer to retrieve.
type GetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// SubmitLoanApplicationRequest carries a new loan application. The quoted
// financial fields are optional; zero values are derived from the product.
type SubmitLoanApplicationRequest struct {
	CustomerID        string          `json:"customer_id"`
	LoanProduct       string          `json:"loan_product"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	Tenure            int             `json:"tenure"`
	InterestRate      decimal.Decimal `json:"interest_rate,omitempty"`
	InterestAmount    decimal.Decimal `json:"interest_amount,omitempty"`
	TotalPayable      decimal.Decimal `json:"total_payable,omitempty"`
	InstallmentAmount decimal.Decimal `json:"installment_amount,omitempty"`
}

// ReviewLoanRequest approves or rejects a pending loan application.
type ReviewLoanRequest struct {
	LoanID  string `json:"loan_id"`
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

// DisburseLoanRequest releases funds for an approved loan.
type DisburseLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// RecordRepaymentRequest carries a payment against an active loan.
type RecordRepaymentRequest struct {
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	TransactionRef string          `json:"transaction_ref"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ListCustomerLoansRequest lists all loans held by a customer.
type ListCustomerLoansRequest struct {
	CustomerID string `json:"customer_id"`
}

// ListLoanRepaymentsRequest lists the repayment ledger of a loan.
type ListLoanRepaymentsRequest struct {
	LoanID string `json:"loan_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// CustomerResponse is the external representation of a customer.
type CustomerResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	NationalID       string        `json:"national_id,omitempty"`
	Address          string        `json:"address,omitempty"`
	Classification   string        `json:"classification"`
	GroupMembers     []GroupMember `json:"group_members,omitempty"`
	NextOfKin        NextOfKin     `json:"next_of_kin"`
	PreferredProduct string        `json:"preferred_product"`
	Status           string        `json:"status"`
	RegisteredBy     string        `json:"registered_by"`
	ReviewedBy       string        `json:"reviewed_by,omitempty"`
	DecisionReason   string        `json:"decision_reason,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	LoanProduct       string          `json:"loan_product"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Tenure            int             `json:"tenure"`
	TenureUnit        string          `json:"tenure_unit"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	InterestPaid      decimal.Decimal `json:"interest_paid"`
	PrincipalPaid     decimal.Decimal `json:"principal_paid"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	Status            string          `json:"status"`
	AppliedAt         time.Time       `json:"applied_at"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	CreatedBy         string          `json:"created_by"`
	ReviewedBy        string          `json:"reviewed_by,omitempty"`
	DecisionReason    string          `json:"decision_reason,omitempty"`
	DisbursedBy       string          `json:"disbursed_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// RepaymentResponse is the external representation of one ledger entry.
type RepaymentResponse struct {
	ReceiptID          string          `json:"receipt_id"`
	LoanID             string          `json:"loan_id"`
	CustomerID         string          `json:"customer_id"`
	Amount             decimal.Decimal `json:"amount"`
	InterestPaid       decimal.Decimal `json:"interest_paid"`
	PrincipalPaid      decimal.Decimal `json:"principal_paid"`
	RemainingInterest  decimal.Decimal `json:"remaining_interest"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	PaymentDate        time.Time       `json:"payment_date"`
	PaymentMethod      string          `json:"payment_method"`
	Status             string          `json:"status"`
	TransactionRef     string          `json:"transaction_ref,omitempty"`
	RecordedBy         string          `json:"recorded_by"`
}

// SweepOverdueResponse summarizes one overdue sweep run.
type SweepOverdueResponse struct {
	Examined  int       `json:"examined"`
	Flagged   int       `json:"flagged"`
	LoanIDs   []string  `json:"loan_ids,omitempty"`
	SweptAsOf time.Time `json:"swept_as_of"`
}

// PortfolioReportResponse is the aggregate portfolio view.
type PortfolioReportResponse struct {
	LoansByStatus      map[string]int      `json:"loans_by_status"`
	LoansByProduct     map[string]int      `json:"loans_by_product"`
	PrincipalDisbursed decimal.Decimal     `json:"principal_disbursed"`
	InterestCharged    decimal.Decimal     `json:"interest_charged"`
	TotalCollected     decimal.Decimal     `json:"total_collected"`
	OutstandingBalance decimal.Decimal     `json:"outstanding_balance"`
	MonthlyCollections []MonthlyCollection `json:"monthly_collections"`
	GeneratedAt        time.Time           `json:"generated_at"`
}

// MonthlyCollection is one month's collected total, month formatted YYYY-MM.
type MonthlyCollection struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}
