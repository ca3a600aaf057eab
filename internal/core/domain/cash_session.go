package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSessionStatus indicates the lifecycle state of a cash drawer session.
type CashSessionStatus string

const (
	SessionOpen   CashSessionStatus = "open"
	SessionClosed CashSessionStatus = "closed"
)

// CashSession tracks a physical cash drawer opened by one operator for a
// shift or day. A session is mutated exactly once, at close, when the
// reconciliation snapshot is attached; it is immutable afterwards.
//
// Reconciliation is derived from the journal, not tracked incrementally:
// cashIn/cashOut are sums over CASH lines tagged with this session id, so
// the numbers are correct regardless of which components posted cash while
// the drawer was open.
type CashSession struct {
	SessionID    string            `json:"id"`
	SessionDate  time.Time         `json:"dateIso"`
	OperatorID   string            `json:"operatorId"`
	Status       CashSessionStatus `json:"status"`
	OpeningFloat decimal.Decimal   `json:"openingFloat"`
	CounterID    string            `json:"counterId,omitempty"`
	ShiftID      string            `json:"shiftId,omitempty"`
	Note         string            `json:"note,omitempty"`

	// Close-time snapshot, nil while the session is open.
	CountedCash     *decimal.Decimal `json:"countedCash,omitempty"`
	CashIn          *decimal.Decimal `json:"cashIn,omitempty"`
	CashOut         *decimal.Decimal `json:"cashOut,omitempty"`
	NetCash         *decimal.Decimal `json:"netCash,omitempty"`
	ExpectedClosing *decimal.Decimal `json:"expectedClosing,omitempty"`
	OverShort       *decimal.Decimal `json:"overShort,omitempty"`

	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`
}
