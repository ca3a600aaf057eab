package dto

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ManualEarningRequest accrues a doctor earning: DOCTOR_PAYABLE credit
// against a revenue-account debit (or AR when paid on account).
type ManualEarningRequest struct {
	DoctorID       string           `json:"doctorId" binding:"required"`
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	RevenueAccount string           `json:"revenueAccount,omitempty" binding:"omitempty,accountcode"`
	PaidMethod     string           `json:"paidMethod,omitempty"` // cash | bank | on_account
	SharePercent   *decimal.Decimal `json:"sharePercent,omitempty"`
	PatientID      string           `json:"patientId,omitempty"`
	RefID          string           `json:"refId,omitempty"`
	Memo           string           `json:"memo,omitempty"`
	DateISO        string           `json:"dateIso,omitempty"`
}

// DoctorPayoutRequest pays a doctor out of the drawer or the bank:
// DOCTOR_PAYABLE debit against a CASH or BANK credit.
type DoctorPayoutRequest struct {
	DoctorID string          `json:"doctorId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Method   string          `json:"method" binding:"required,oneof=Cash Bank cash bank"`
	Memo     string          `json:"memo,omitempty"`
	DateISO  string          `json:"dateIso,omitempty"`
}

// ReverseJournalRequest optionally overrides the memo on the compensating
// entry.
type ReverseJournalRequest struct {
	Memo string `json:"memo,omitempty"`
}

// DoctorBalanceResponse is the ledger-derived outstanding payable.
type DoctorBalanceResponse struct {
	DoctorID string          `json:"doctorId"`
	Payable  decimal.Decimal `json:"payable"`
}

// PayoutResponse is one payout entry flattened for listing.
type PayoutResponse struct {
	ID      string          `json:"id"`
	RefID   string          `json:"refId"`
	DateISO string          `json:"dateIso"`
	Memo    string          `json:"memo"`
	Amount  decimal.Decimal `json:"amount"`
}

// ListPayoutsResponse wraps the payout listing.
type ListPayoutsResponse struct {
	Payouts []PayoutResponse `json:"payouts"`
}

// DoctorAccrualsResponse is the windowed payable aggregation used to
// prepare a payout.
type DoctorAccrualsResponse struct {
	DoctorID  string          `json:"doctorId"`
	Accruals  decimal.Decimal `json:"accruals"`
	Debits    decimal.Decimal `json:"debits"`
	Suggested decimal.Decimal `json:"suggested"`
}

// ListEarningsParams filters the unreversed-earnings listing.
type ListEarningsParams struct {
	DoctorID string `form:"doctorId"`
	From     string `form:"from"`
	To       string `form:"to"`
}

// EarningResponse is one unreversed DOCTOR_PAYABLE credit line with its
// source context.
type EarningResponse struct {
	ID        string          `json:"id"`
	DateISO   string          `json:"dateIso"`
	RefType   string          `json:"refType"`
	RefID     string          `json:"refId"`
	Memo      string          `json:"memo"`
	DoctorID  string          `json:"doctorId"`
	PatientID string          `json:"patientId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToEarningResponse converts a domain earning line to its response DTO.
func ToEarningResponse(l domain.EarningLine) EarningResponse {
	return EarningResponse{
		ID:        l.EntryID,
		DateISO:   l.EntryDate.Format(DateLayout),
		RefType:   string(l.RefType),
		RefID:     l.RefID,
		Memo:      l.Memo,
		DoctorID:  l.DoctorID,
		PatientID: l.PatientID,
		Amount:    l.Amount,
	}
}
