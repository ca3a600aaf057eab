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

const uniqueViolationCode = "23505"

// PGCashSessionRepository persists cash drawer sessions. A partial unique
// index on (operator_id) WHERE status='open' guarantees at most one open
// session per operator at the database level.
type PGCashSessionRepository struct {
	BaseRepository
}

func NewPGCashSessionRepository(pool *pgxpool.Pool) *PGCashSessionRepository {
	return &PGCashSessionRepository{BaseRepository: NewBaseRepository(pool)}
}

const insertSessionSQL = `
	INSERT INTO cash_sessions (
		session_id, session_date, operator_id, status, opening_float,
		counter_id, shift_id, note, start_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// CreateSession inserts a new open session. A concurrent open by the same
// operator loses the index race and comes back as ErrDuplicate.
func (r *PGCashSessionRepository) CreateSession(ctx context.Context, session domain.CashSession) error {
	m := mapping.ToCashSessionModel(session)
	_, err := r.Pool.Exec(ctx, insertSessionSQL,
		m.SessionID, m.SessionDate, m.OperatorID, m.Status, m.OpeningFloat,
		m.CounterID, m.ShiftID, m.Note, m.StartAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewAppError(http.StatusConflict,
				"operator already has an open cash session", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert cash session: %w", err)
	}
	return nil
}

const selectSessionSQL = `
	SELECT session_id, session_date, operator_id, status, opening_float,
	       counted_cash, cash_in, cash_out, net_cash, expected_closing, over_short,
	       counter_id, shift_id, note, start_at, end_at
	FROM cash_sessions`

func scanSessionRow(row pgx.Row) (models.CashSessionModel, error) {
	var m models.CashSessionModel
	err := row.Scan(&m.SessionID, &m.SessionDate, &m.OperatorID, &m.Status, &m.OpeningFloat,
		&m.CountedCash, &m.CashIn, &m.CashOut, &m.NetCash, &m.ExpectedClosing, &m.OverShort,
		&m.CounterID, &m.ShiftID, &m.Note, &m.StartAt, &m.EndAt)
	return m, err
}

// FindSessionByID retrieves a session by id.
func (r *PGCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	m, err := scanSessionRow(r.Pool.QueryRow(ctx, selectSessionSQL+" WHERE session_id = $1", sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("cash session %s not found", sessionID))
		}
		return nil, fmt.Errorf("failed to query cash session: %w", err)
	}
	s := mapping.ToDomainCashSession(m)
	return &s, nil
}

// FindOpenSessionByOperator retrieves the operator's open session.
func (r *PGCashSessionRepository) FindOpenSessionByOperator(ctx context.Context, operatorID string) (*domain.CashSession, error) {
	m, err := scanSessionRow(r.Pool.QueryRow(ctx,
		selectSessionSQL+" WHERE operator_id = $1 AND status = $2", operatorID, string(domain.SessionOpen)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no open cash session for operator")
		}
		return nil, fmt.Errorf("failed to query open cash session: %w", err)
	}
	s := mapping.ToDomainCashSession(m)
	return &s, nil
}

const closeSessionSQL = `
	UPDATE cash_sessions
	SET status = $1, counted_cash = $2, cash_in = $3, cash_out = $4,
	    net_cash = $5, expected_closing = $6, over_short = $7,
	    note = $8, end_at = $9
	WHERE session_id = $10 AND status = $11`

// CloseSession persists the reconciliation snapshot. The status guard makes
// the update a no-op when another close already won; callers re-fetch.
func (r *PGCashSessionRepository) CloseSession(ctx context.Context, session domain.CashSession) (bool, error) {
	m := mapping.ToCashSessionModel(session)
	tag, err := r.Pool.Exec(ctx, closeSessionSQL,
		m.Status, m.CountedCash, m.CashIn, m.CashOut,
		m.NetCash, m.ExpectedClosing, m.OverShort,
		m.Note, m.EndAt,
		m.SessionID, string(domain.SessionOpen))
	if err != nil {
		return false, fmt.Errorf("failed to close cash session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
