package services

import (
	"context"
	"net/http"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/avencare/hospital_finance_app/internal/utils"
	"github.com/google/uuid"
)

// OperatorService authenticates and registers the people allowed to touch
// the ledger.
type OperatorService struct {
	operatorRepo portsrepo.OperatorRepositoryFacade
}

func NewOperatorService(operatorRepo portsrepo.OperatorRepositoryFacade) *OperatorService {
	return &OperatorService{operatorRepo: operatorRepo}
}

// Authenticate verifies username and password against the stored bcrypt
// hash. Disabled accounts fail the same way as wrong passwords.
func (s *OperatorService) Authenticate(ctx context.Context, username, password string) (*domain.Operator, error) {
	operator, err := s.operatorRepo.FindOperatorByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !operator.IsActive || !utils.CheckPasswordHash(password, operator.PasswordHash) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", apperrors.ErrValidation)
	}
	return operator, nil
}

// Register creates a new active operator.
func (s *OperatorService) Register(ctx context.Context, req dto.RegisterOperatorRequest) (*domain.Operator, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	operator := domain.Operator{
		OperatorID:   uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}
	if err := s.operatorRepo.CreateOperator(ctx, operator); err != nil {
		return nil, err
	}
	logger.Info("operator registered", "operatorID", operator.OperatorID, "username", operator.Username)
	return &operator, nil
}
