package dto

import (
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for business dates (date only, no clock).
const DateLayout = "2006-01-02"

// PostingContribution is one debit-or-credit leg a caller supplies to the
// posting engine. Exactly one of Debit/Credit must be set.
type PostingContribution struct {
	Account string            `json:"account" binding:"required,accountcode"`
	Debit   *decimal.Decimal  `json:"debit,omitempty"`
	Credit  *decimal.Decimal  `json:"credit,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// PostingEvent is the posting engine's input: a business event plus the
// matched legs that make it balance. The engine never infers balance.
// SessionID is the explicit session context; when set and the event touches
// CASH, all legs are stamped with it.
type PostingEvent struct {
	DateISO   string                `json:"dateIso,omitempty"`
	RefType   string                `json:"refType" binding:"required,reftype"`
	RefID     string                `json:"refId,omitempty"`
	Memo      string                `json:"memo,omitempty"`
	SessionID *string               `json:"sessionId,omitempty"`
	Lines     []PostingContribution `json:"lines" binding:"required"`
}

// RecordExpenseRequest records an expense payment: EXPENSE debit against a
// CASH or BANK credit for the same amount.
type RecordExpenseRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Method       string          `json:"method" binding:"required,oneof=Cash Bank cash bank"`
	DepartmentID string          `json:"departmentId,omitempty"`
	RefID        string          `json:"refId,omitempty"`
	Memo         string          `json:"memo,omitempty"`
	DateISO      string          `json:"dateIso,omitempty"`
}

// RecordIPDPaymentRequest records an inpatient payment received: CASH or
// BANK debit against an IPD_REVENUE credit.
type RecordIPDPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=Cash Bank cash bank"`
	EncounterID string          `json:"encounterId" binding:"required"`
	PatientID   string          `json:"patientId,omitempty"`
	RefID       string          `json:"refId,omitempty"`
	Memo        string          `json:"memo,omitempty"`
	DateISO     string          `json:"dateIso,omitempty"`
}

// JournalLineResponse mirrors the persisted line shape.
type JournalLineResponse struct {
	Account string            `json:"account"`
	Debit   *decimal.Decimal  `json:"debit,omitempty"`
	Credit  *decimal.Decimal  `json:"credit,omitempty"`
	Tags    map[string]string `json:"tags"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	ID      string                `json:"id"`
	DateISO string                `json:"dateIso"`
	RefType string                `json:"refType"`
	RefID   string                `json:"refId"`
	Memo    string                `json:"memo"`
	Amount  decimal.Decimal       `json:"amount"`
	Lines   []JournalLineResponse `json:"lines,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ListJournalsParams holds parameters for listing journal entries.
type ListJournalsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a page of journal entries plus the next token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its response DTO.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		Account: string(l.Account),
		Debit:   l.Debit,
		Credit:  l.Credit,
		Tags:    l.Tags,
	}
}

// ToJournalResponse converts a domain entry to its response DTO.
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToJournalLineResponse(l)
	}
	return JournalResponse{
		ID:        e.EntryID,
		DateISO:   e.EntryDate.Format(DateLayout),
		RefType:   string(e.RefType),
		RefID:     e.RefID,
		Memo:      e.Memo,
		Amount:    e.TotalDebits(),
		Lines:     lines,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
}
