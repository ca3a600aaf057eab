package mapping

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
	"github.com/shopspring/decimal"
)

func nullDec(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*p)
}

func decPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// ToCashSessionModel converts a domain session to its row model.
func ToCashSessionModel(s domain.CashSession) models.CashSessionModel {
	return models.CashSessionModel{
		SessionID:       s.SessionID,
		SessionDate:     s.SessionDate,
		OperatorID:      s.OperatorID,
		Status:          string(s.Status),
		OpeningFloat:    s.OpeningFloat,
		CountedCash:     nullDec(s.CountedCash),
		CashIn:          nullDec(s.CashIn),
		CashOut:         nullDec(s.CashOut),
		NetCash:         nullDec(s.NetCash),
		ExpectedClosing: nullDec(s.ExpectedClosing),
		OverShort:       nullDec(s.OverShort),
		CounterID:       s.CounterID,
		ShiftID:         s.ShiftID,
		Note:            s.Note,
		StartAt:         s.StartAt,
		EndAt:           s.EndAt,
	}
}

// ToDomainCashSession rebuilds a domain session from its row model.
func ToDomainCashSession(m models.CashSessionModel) domain.CashSession {
	return domain.CashSession{
		SessionID:       m.SessionID,
		SessionDate:     m.SessionDate,
		OperatorID:      m.OperatorID,
		Status:          domain.CashSessionStatus(m.Status),
		OpeningFloat:    m.OpeningFloat,
		CountedCash:     decPtr(m.CountedCash),
		CashIn:          decPtr(m.CashIn),
		CashOut:         decPtr(m.CashOut),
		NetCash:         decPtr(m.NetCash),
		ExpectedClosing: decPtr(m.ExpectedClosing),
		OverShort:       decPtr(m.OverShort),
		CounterID:       m.CounterID,
		ShiftID:         m.ShiftID,
		Note:            m.Note,
		StartAt:         m.StartAt,
		EndAt:           m.EndAt,
	}
}
