package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
	"github.com/avencare/hospital_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGOperatorRepository persists operator identities.
type PGOperatorRepository struct {
	BaseRepository
}

func NewPGOperatorRepository(pool *pgxpool.Pool) *PGOperatorRepository {
	return &PGOperatorRepository{BaseRepository: NewBaseRepository(pool)}
}

const insertOperatorSQL = `
	INSERT INTO operators (
		operator_id, username, password_hash, full_name, is_active,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *PGOperatorRepository) CreateOperator(ctx context.Context, operator domain.Operator) error {
	m := mapping.ToOperatorModel(operator)
	_, err := r.Pool.Exec(ctx, insertOperatorSQL,
		m.OperatorID, m.Username, m.PasswordHash, m.FullName, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewAppError(http.StatusConflict, "username already taken", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert operator: %w", err)
	}
	return nil
}

const selectOperatorSQL = `
	SELECT operator_id, username, password_hash, full_name, is_active,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM operators
	WHERE username = $1`

func (r *PGOperatorRepository) FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	var m models.OperatorModel
	err := r.Pool.QueryRow(ctx, selectOperatorSQL, username).Scan(
		&m.OperatorID, &m.Username, &m.PasswordHash, &m.FullName, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("operator %s not found", username))
		}
		return nil, fmt.Errorf("failed to query operator: %w", err)
	}
	op := mapping.ToDomainOperator(m)
	return &op, nil
}
