package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefType identifies the kind of business event a journal entry records.
type RefType string

const (
	RefExpense             RefType = "expense"
	RefIPDPayment          RefType = "ipd_payment"
	RefManualDoctorEarning RefType = "manual_doctor_earning"
	RefOPDToken            RefType = "opd_token"
	RefDoctorPayout        RefType = "doctor_payout"
	RefReversal            RefType = "reversal"
)

// Valid reports whether the ref type is one the posting engine accepts.
func (r RefType) Valid() bool {
	switch r {
	case RefExpense, RefIPDPayment, RefManualDoctorEarning, RefOPDToken,
		RefDoctorPayout, RefReversal:
		return true
	}
	return false
}

// Well-known tag keys attached to journal lines. Tags are filtering
// metadata only; they never participate in balance calculation.
const (
	TagSessionID    = "sessionId"
	TagDoctorID     = "doctorId"
	TagEncounterID  = "encounterId"
	TagPatientID    = "patientId"
	TagDepartmentID = "departmentId"
	TagSharePercent = "sharePercent"
)

// JournalLine is a single debit or credit against one account. Exactly one
// of Debit/Credit is populated; the populated side encodes direction and
// the amount is always non-negative.
type JournalLine struct {
	LineID  string            `json:"lineID"`
	EntryID string            `json:"entryID"`
	Account AccountCode       `json:"account"`
	Debit   *decimal.Decimal  `json:"debit,omitempty"`
	Credit  *decimal.Decimal  `json:"credit,omitempty"`
	Tags    map[string]string `json:"tags"`
}

// DebitAmount returns the debit side, zero when this is a credit line.
func (l JournalLine) DebitAmount() decimal.Decimal {
	if l.Debit == nil {
		return decimal.Zero
	}
	return *l.Debit
}

// CreditAmount returns the credit side, zero when this is a debit line.
func (l JournalLine) CreditAmount() decimal.Decimal {
	if l.Credit == nil {
		return decimal.Zero
	}
	return *l.Credit
}

// JournalEntry is one balanced double-entry record. Entries are immutable
// once written: there is no update path, and a correction is a new entry
// whose RefID points at the entry being reversed.
type JournalEntry struct {
	EntryID   string        `json:"id"`
	EntryDate time.Time     `json:"dateIso"` // business date, not wall-clock
	RefType   RefType       `json:"refType"`
	RefID     string        `json:"refId"`
	Memo      string        `json:"memo"`
	Lines     []JournalLine `json:"lines"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy"`
}

// TotalDebits sums the debit side of all lines. For a balanced entry this
// equals TotalCredits and represents the economic value of the event.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.DebitAmount())
	}
	return sum
}

// TotalCredits sums the credit side of all lines.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.CreditAmount())
	}
	return sum
}

// IsBalanced reports whether debits equal credits across all lines.
func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}
