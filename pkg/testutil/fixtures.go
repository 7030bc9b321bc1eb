package testutil

// Fixed identifiers for deterministic testing.
const (
	TestAdminID    = "ST0001"
	TestOfficerID  = "ST0002"
	TestCustomerID = "CU00001"
	TestLoanID     = "LN000001"
	TestReceiptID  = "RC0000001"
)
