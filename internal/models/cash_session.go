package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSessionModel mirrors the cash_sessions table. The close-time columns
// stay NULL until the session is reconciled.
type CashSessionModel struct {
	SessionID       string              `db:"session_id"`
	SessionDate     time.Time           `db:"session_date"`
	OperatorID      string              `db:"operator_id"`
	Status          string              `db:"status"`
	OpeningFloat    decimal.Decimal     `db:"opening_float"`
	CountedCash     decimal.NullDecimal `db:"counted_cash"`
	CashIn          decimal.NullDecimal `db:"cash_in"`
	CashOut         decimal.NullDecimal `db:"cash_out"`
	NetCash         decimal.NullDecimal `db:"net_cash"`
	ExpectedClosing decimal.NullDecimal `db:"expected_closing"`
	OverShort       decimal.NullDecimal `db:"over_short"`
	CounterID       string              `db:"counter_id"`
	ShiftID         string              `db:"shift_id"`
	Note            string              `db:"note"`
	StartAt         time.Time           `db:"start_at"`
	EndAt           *time.Time          `db:"end_at"`
}
