package services

import (
	"context"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
)

// CorporateSvcFacade maintains the append-only corporate billing ledger.
type CorporateSvcFacade interface {
	// Accrue writes one accrued transaction, applying the company rule's
	// co-pay and clamping against the encounter's coverage cap inside an
	// encounter-scoped critical section.
	Accrue(ctx context.Context, req dto.CorporateAccrualRequest) (*domain.CorporateTransaction, error)

	// AccrueFromBilling is the collaborator-facing wrapper: failures are
	// logged and parked in the outbox, never surfaced, so primary billing
	// always proceeds.
	AccrueFromBilling(ctx context.Context, req dto.CorporateAccrualRequest) error

	// ReverseAndReaccrue flags every active transaction for the item as
	// reversed, inserts negated companions, then accrues the updated item
	// fresh. History only ever grows.
	ReverseAndReaccrue(ctx context.Context, itemID string, req dto.CorporateAccrualRequest) (*dto.ReaccrualResponse, error)

	// EncounterSummary returns the encounter's signed net position and its
	// transaction history.
	EncounterSummary(ctx context.Context, encounterID string) (*dto.EncounterCorporateSummary, error)

	// ListOutbox exposes the pending-reconciliation queue.
	ListOutbox(ctx context.Context, status domain.OutboxStatus, limit int) ([]domain.CorporateOutboxEntry, error)

	// ProcessOutboxBatch retries due outbox entries once; used by the
	// background worker. Returns the number of entries attempted.
	ProcessOutboxBatch(ctx context.Context, now time.Time) (int, error)
}
