package repositories

import (
	"context"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindReversalOf retrieves the reversal entry whose RefID points at the
	// given entry, or apperrors.ErrNotFound when the entry is unreversed.
	// This is the reverse-lookup join: an entry is "reversed" iff such an
	// entry exists, no pointer is ever stored on the original.
	FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of journal entries, newest first, using
	// token-based pagination. Returns the entries and a next-page token.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListPayoutEntries retrieves the most recent doctor_payout entries
	// tagged with the given doctor, lines included.
	ListPayoutEntries(ctx context.Context, doctorID string, limit int) ([]domain.JournalEntry, error)
}

// JournalWriter defines the single write operation the ledger of record
// supports. There is deliberately no update or delete: corrections are new
// entries.
type JournalWriter interface {
	// SaveEntry persists an entry and all of its lines in one DB transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// LedgerAggregator defines the aggregation queries downstream engines
// derive balances from. All of them recompute from journal lines.
type LedgerAggregator interface {
	// SumAccountByTag sums debits and credits over lines on the given
	// account filtered by one tag.
	SumAccountByTag(ctx context.Context, account domain.AccountCode, tagKey, tagValue string) (debits, credits decimal.Decimal, err error)

	// SumAccountByTagInWindow is SumAccountByTag restricted to entries whose
	// business date falls in [from, to].
	SumAccountByTagInWindow(ctx context.Context, account domain.AccountCode, tagKey, tagValue string, from, to time.Time) (debits, credits decimal.Decimal, err error)

	// CashTotalsBySession sums CASH debits (cash in) and CASH credits
	// (cash out) over lines tagged with the given session.
	CashTotalsBySession(ctx context.Context, sessionID string) (cashIn, cashOut decimal.Decimal, err error)

	// ListEarningLines retrieves unreversed DOCTOR_PAYABLE credit lines,
	// optionally filtered by doctor and business-date window. Lines whose
	// entry has a reversal entry pointing at it are excluded.
	ListEarningLines(ctx context.Context, doctorID string, from, to *time.Time) ([]domain.EarningLine, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LedgerAggregator
}
