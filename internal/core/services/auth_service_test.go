package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOperatorRepo struct {
	mu        sync.Mutex
	operators map[string]domain.Operator
}

func newMemOperatorRepo() *memOperatorRepo {
	return &memOperatorRepo{operators: map[string]domain.Operator{}}
}

func (r *memOperatorRepo) CreateOperator(_ context.Context, operator domain.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.operators[operator.Username]; exists {
		return apperrors.NewAppError(409, "username already taken", apperrors.ErrDuplicate)
	}
	r.operators[operator.Username] = operator
	return nil
}

func (r *memOperatorRepo) FindOperatorByUsername(_ context.Context, username string) (*domain.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op, ok := r.operators[username]; ok {
		return &op, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("operator %s not found", username))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewOperatorService(newMemOperatorRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, dto.RegisterOperatorRequest{
		Username: "cashier1",
		Password: "s3cret-pass",
		FullName: "Front Desk Cashier",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)

	operator, err := svc.Authenticate(ctx, "cashier1", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.OperatorID, operator.OperatorID)

	_, err = svc.Authenticate(ctx, "cashier1", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Authenticate(ctx, "ghost", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewOperatorService(newMemOperatorRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterOperatorRequest{
		Username: "cashier1", Password: "s3cret-pass", FullName: "A",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterOperatorRequest{
		Username: "cashier1", Password: "other-pass", FullName: "B",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
