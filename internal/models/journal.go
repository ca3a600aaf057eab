package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryModel mirrors the journal_entries table.
type JournalEntryModel struct {
	EntryID   string    `db:"entry_id"`
	EntryDate time.Time `db:"entry_date"`
	RefType   string    `db:"ref_type"`
	RefID     string    `db:"ref_id"`
	Memo      string    `db:"memo"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

// JournalLineModel mirrors the journal_lines table. Exactly one of Debit
// and Credit is set per row, enforced by a table CHECK.
type JournalLineModel struct {
	LineID  string              `db:"line_id"`
	EntryID string              `db:"entry_id"`
	LineNo  int                 `db:"line_no"`
	Account string              `db:"account"`
	Debit   decimal.NullDecimal `db:"debit"`
	Credit  decimal.NullDecimal `db:"credit"`
	Tags    []byte              `db:"tags"`
}
