package domain

// Operator is a counter/billing user who can open a cash drawer. Master
// staff data lives outside this core; this is the minimal identity slice
// the authenticated finance endpoints need.
type Operator struct {
	OperatorID   string `json:"operatorID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
