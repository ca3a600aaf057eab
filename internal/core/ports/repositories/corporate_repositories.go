package repositories

import (
	"context"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CorporateReader defines read operations over the corporate ledger and
// its pricing rules.
type CorporateReader interface {
	// FindRule resolves the corporate price rule for a service, or
	// apperrors.ErrNotFound when the company does not cover it.
	FindRule(ctx context.Context, companyID, serviceCode string) (*domain.CorporateRule, error)

	// SumNetByEncounter returns the signed sum of netToCorporate over all
	// transactions for an encounter, reversal companions included.
	SumNetByEncounter(ctx context.Context, encounterID string) (decimal.Decimal, error)

	// ListActiveByItem retrieves the still-accrued transactions referencing
	// a billed item.
	ListActiveByItem(ctx context.Context, refID string) ([]domain.CorporateTransaction, error)

	// ListByEncounter retrieves every transaction for an encounter, newest
	// first.
	ListByEncounter(ctx context.Context, encounterID string) ([]domain.CorporateTransaction, error)
}

// CorporateWriter defines the append-only write operations. MarkReversed is
// the single status flip a transaction may ever receive; amounts are never
// touched.
type CorporateWriter interface {
	InsertTransaction(ctx context.Context, txn domain.CorporateTransaction) error

	// MarkReversed flips an accrued transaction to reversed. Returns
	// apperrors.ErrNotFound when no accrued row matches.
	MarkReversed(ctx context.Context, corpTxnID string, updatedAt time.Time) error
}

// CorporateRepositoryFacade combines corporate reader and writer.
type CorporateRepositoryFacade interface {
	CorporateReader
	CorporateWriter
}

// CorporateRepositoryWithTx adds the encounter-scoped critical section the
// coverage-cap check needs: fn runs inside one DB transaction holding a
// per-encounter lock, so concurrent accruals cannot jointly exceed the cap.
type CorporateRepositoryWithTx interface {
	CorporateRepositoryFacade

	WithEncounterLock(ctx context.Context, encounterID string, fn func(repo CorporateRepositoryFacade) error) error
}

// OutboxRepositoryFacade persists deferred corporate accruals for the
// retry worker.
type OutboxRepositoryFacade interface {
	Enqueue(ctx context.Context, entry domain.CorporateOutboxEntry) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.CorporateOutboxEntry, error)
	ListByStatus(ctx context.Context, status domain.OutboxStatus, limit int) ([]domain.CorporateOutboxEntry, error)
	MarkDone(ctx context.Context, outboxID string, updatedAt time.Time) error
	MarkRetry(ctx context.Context, outboxID string, attempts int, lastError string, nextRetryAt time.Time) error
	MarkFailed(ctx context.Context, outboxID string, attempts int, lastError string, updatedAt time.Time) error
}
