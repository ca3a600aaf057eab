package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningLine is a read model: one unreversed DOCTOR_PAYABLE credit line
// joined with the context tags of its source entry.
type EarningLine struct {
	EntryID   string          `json:"id"`
	EntryDate time.Time       `json:"dateIso"`
	RefType   RefType         `json:"refType"`
	RefID     string          `json:"refId"`
	Memo      string          `json:"memo"`
	DoctorID  string          `json:"doctorId"`
	PatientID string          `json:"patientId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}
