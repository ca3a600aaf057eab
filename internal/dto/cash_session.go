package dto

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenCashSessionRequest opens a drawer for the authenticated operator.
type OpenCashSessionRequest struct {
	OpeningFloat decimal.Decimal `json:"openingFloat"`
	CounterID    string          `json:"counterId,omitempty"`
	ShiftID      string          `json:"shiftId,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// CloseCashSessionRequest closes a drawer with the physically counted cash.
type CloseCashSessionRequest struct {
	CountedCash decimal.Decimal `json:"countedCash" binding:"required"`
	Note        string          `json:"note,omitempty"`
}

// CashSessionResponse mirrors the persisted session shape; the derived
// reconciliation fields are present only after close.
type CashSessionResponse struct {
	ID           string          `json:"id"`
	DateISO      string          `json:"dateIso"`
	OperatorID   string          `json:"operatorId"`
	Status       string          `json:"status"`
	OpeningFloat decimal.Decimal `json:"openingFloat"`
	CounterID    string          `json:"counterId,omitempty"`
	ShiftID      string          `json:"shiftId,omitempty"`
	Note         string          `json:"note,omitempty"`

	CountedCash     *decimal.Decimal `json:"countedCash,omitempty"`
	CashIn          *decimal.Decimal `json:"cashIn,omitempty"`
	CashOut         *decimal.Decimal `json:"cashOut,omitempty"`
	NetCash         *decimal.Decimal `json:"netCash,omitempty"`
	ExpectedClosing *decimal.Decimal `json:"expectedClosing,omitempty"`
	OverShort       *decimal.Decimal `json:"overShort,omitempty"`

	StartAt string  `json:"startAt"`
	EndAt   *string `json:"endAt,omitempty"`
}

// ToCashSessionResponse converts a domain session to its response DTO.
func ToCashSessionResponse(s *domain.CashSession) CashSessionResponse {
	resp := CashSessionResponse{
		ID:              s.SessionID,
		DateISO:         s.SessionDate.Format(DateLayout),
		OperatorID:      s.OperatorID,
		Status:          string(s.Status),
		OpeningFloat:    s.OpeningFloat,
		CounterID:       s.CounterID,
		ShiftID:         s.ShiftID,
		Note:            s.Note,
		CountedCash:     s.CountedCash,
		CashIn:          s.CashIn,
		CashOut:         s.CashOut,
		NetCash:         s.NetCash,
		ExpectedClosing: s.ExpectedClosing,
		OverShort:       s.OverShort,
		StartAt:         s.StartAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if s.EndAt != nil {
		endAt := s.EndAt.Format("2006-01-02T15:04:05Z07:00")
		resp.EndAt = &endAt
	}
	return resp
}
