package repositories

import (
	"context"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
)

// OperatorRepositoryFacade defines persistence for operator identities.
type OperatorRepositoryFacade interface {
	// CreateOperator inserts a new operator. Returns apperrors.ErrDuplicate
	// when the username is taken.
	CreateOperator(ctx context.Context, operator domain.Operator) error

	// FindOperatorByUsername retrieves an operator by username, or
	// apperrors.ErrNotFound.
	FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error)
}
