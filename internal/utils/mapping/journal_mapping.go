package mapping

import (
	"encoding/json"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToJournalEntryModel converts a domain entry header to its row model.
func ToJournalEntryModel(e domain.JournalEntry) models.JournalEntryModel {
	return models.JournalEntryModel{
		EntryID:   e.EntryID,
		EntryDate: e.EntryDate,
		RefType:   string(e.RefType),
		RefID:     e.RefID,
		Memo:      e.Memo,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
}

// ToJournalLineModel converts a domain line to its row model. Tag maps are
// stored as jsonb; a nil map becomes the empty object.
func ToJournalLineModel(l domain.JournalLine, entryID string, lineNo int) (models.JournalLineModel, error) {
	tags := l.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return models.JournalLineModel{}, err
	}
	m := models.JournalLineModel{
		LineID:  l.LineID,
		EntryID: entryID,
		LineNo:  lineNo,
		Account: string(l.Account),
		Tags:    raw,
	}
	if l.Debit != nil {
		m.Debit = decimal.NewNullDecimal(*l.Debit)
	}
	if l.Credit != nil {
		m.Credit = decimal.NewNullDecimal(*l.Credit)
	}
	return m, nil
}

// ToDomainJournalEntry rebuilds a domain entry from its header row and
// ordered line rows.
func ToDomainJournalEntry(e models.JournalEntryModel, lines []models.JournalLineModel) (domain.JournalEntry, error) {
	out := domain.JournalEntry{
		EntryID:   e.EntryID,
		EntryDate: e.EntryDate,
		RefType:   domain.RefType(e.RefType),
		RefID:     e.RefID,
		Memo:      e.Memo,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
	out.Lines = make([]domain.JournalLine, 0, len(lines))
	for _, lm := range lines {
		dl, err := ToDomainJournalLine(lm)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		out.Lines = append(out.Lines, dl)
	}
	return out, nil
}

// ToDomainJournalLine rebuilds a domain line from its row model.
func ToDomainJournalLine(m models.JournalLineModel) (domain.JournalLine, error) {
	l := domain.JournalLine{
		LineID:  m.LineID,
		EntryID: m.EntryID,
		Account: domain.AccountCode(m.Account),
	}
	if m.Debit.Valid {
		d := m.Debit.Decimal
		l.Debit = &d
	}
	if m.Credit.Valid {
		c := m.Credit.Decimal
		l.Credit = &c
	}
	if len(m.Tags) > 0 {
		if err := json.Unmarshal(m.Tags, &l.Tags); err != nil {
			return domain.JournalLine{}, err
		}
	}
	return l, nil
}
