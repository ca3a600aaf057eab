package domain

// AccountCode is the closed set of ledger accounts the finance core posts
// against. It is deliberately not user-extensible: every money-moving event
// in the hospital maps onto these eight accounts.
type AccountCode string

const (
	AccountCash             AccountCode = "CASH"
	AccountBank             AccountCode = "BANK"
	AccountExpense          AccountCode = "EXPENSE"
	AccountOPDRevenue       AccountCode = "OPD_REVENUE"
	AccountIPDRevenue       AccountCode = "IPD_REVENUE"
	AccountProcedureRevenue AccountCode = "PROCEDURE_REVENUE"
	AccountDoctorPayable    AccountCode = "DOCTOR_PAYABLE"
	AccountAR               AccountCode = "AR" // accounts receivable (on-account / corporate)
)

// Valid reports whether the code belongs to the closed enum.
func (a AccountCode) Valid() bool {
	switch a {
	case AccountCash, AccountBank, AccountExpense, AccountOPDRevenue,
		AccountIPDRevenue, AccountProcedureRevenue, AccountDoctorPayable, AccountAR:
		return true
	}
	return false
}

// IsRevenue reports whether the code is one of the revenue accounts a
// doctor earning may be carved out of.
func (a AccountCode) IsRevenue() bool {
	switch a {
	case AccountOPDRevenue, AccountIPDRevenue, AccountProcedureRevenue:
		return true
	}
	return false
}
