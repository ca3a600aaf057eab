package services

import (
	"context"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
)

// OperatorSvcFacade authenticates and registers operator identities.
type OperatorSvcFacade interface {
	// Authenticate verifies credentials. Returns apperrors.ErrNotFound for
	// an unknown username and apperrors.ErrValidation for a bad password;
	// handlers collapse both into 401.
	Authenticate(ctx context.Context, username, password string) (*domain.Operator, error)

	// Register creates a new operator with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterOperatorRequest) (*domain.Operator, error)
}
