package dto

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed JWT for subsequent calls.
type LoginResponse struct {
	Token      string `json:"token"`
	OperatorID string `json:"operatorID"`
	FullName   string `json:"fullName"`
}

// RegisterOperatorRequest creates a new operator identity.
type RegisterOperatorRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

// OperatorResponse is the public view of an operator.
type OperatorResponse struct {
	OperatorID string `json:"operatorID"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
}
