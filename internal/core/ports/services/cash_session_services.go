package services

import (
	"context"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
)

// CashSessionSvcFacade manages the cash drawer lifecycle per operator:
// none -> open -> closed (terminal).
type CashSessionSvcFacade interface {
	// Open returns the operator's existing open session unchanged
	// (created=false), or creates one. Idempotent under double-submission.
	Open(ctx context.Context, operatorID string, req dto.OpenCashSessionRequest) (session *domain.CashSession, created bool, err error)

	// Current returns the operator's open session, or apperrors.ErrNotFound.
	Current(ctx context.Context, operatorID string) (*domain.CashSession, error)

	// Close reconciles the drawer against the ledger and persists the
	// snapshot. Closing an already-closed session returns the stored
	// snapshot unchanged.
	Close(ctx context.Context, sessionID string, req dto.CloseCashSessionRequest, operatorID string) (*domain.CashSession, error)
}
