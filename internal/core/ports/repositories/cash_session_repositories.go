package repositories

import (
	"context"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
)

// CashSessionRepositoryFacade defines persistence for cash drawer sessions.
type CashSessionRepositoryFacade interface {
	// CreateSession inserts a new open session. Returns
	// apperrors.ErrDuplicate when the operator already holds an open
	// session (partial unique index), so callers can recover the winner of
	// a concurrent double-open.
	CreateSession(ctx context.Context, session domain.CashSession) error

	// FindSessionByID retrieves a session by id.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenSessionByOperator retrieves the operator's open session, or
	// apperrors.ErrNotFound when none is open.
	FindOpenSessionByOperator(ctx context.Context, operatorID string) (*domain.CashSession, error)

	// CloseSession persists the close-time reconciliation snapshot in one
	// guarded update (WHERE status='open'). Returns false when no open row
	// matched, i.e. the session was closed concurrently.
	CloseSession(ctx context.Context, session domain.CashSession) (bool, error)
}
