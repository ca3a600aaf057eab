package services

import (
	"context"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
)

// PostingSvcFacade is the posting engine: it turns business events into
// balanced journal entries. Session context is always passed explicitly;
// the engine never looks up an operator's "current" session itself.
type PostingSvcFacade interface {
	// Post assembles and persists one balanced journal entry from the
	// event's matched debit/credit legs. Validation failures surface as
	// apperrors.ErrValidation before any row is written.
	Post(ctx context.Context, event dto.PostingEvent, creatorID string) (*domain.JournalEntry, error)

	// RecordExpense posts EXPENSE debit / CASH|BANK credit.
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error)

	// RecordIPDPayment posts CASH|BANK debit / IPD_REVENUE credit.
	RecordIPDPayment(ctx context.Context, req dto.RecordIPDPaymentRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}
