package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CorporateTxnStatus indicates whether a corporate ledger line is active.
type CorporateTxnStatus string

const (
	CorpAccrued  CorporateTxnStatus = "accrued"
	CorpReversed CorporateTxnStatus = "reversed"
)

// CorporateTransaction is one line in the append-only corporate (insurer)
// billing ledger. Reversing a transaction never deletes it: the original is
// flagged reversed and a companion with negated amounts and ReversalOf set
// is inserted, so the signed sum over an encounter always equals the net
// amount currently owed to the corporate payer.
type CorporateTransaction struct {
	CorpTxnID      string             `json:"id"`
	CompanyID      string             `json:"companyId"`
	RefType        string             `json:"refType"`
	RefID          string             `json:"refId"` // billed item id
	EncounterID    string             `json:"encounterId"`
	Qty            int                `json:"qty"`
	UnitPrice      decimal.Decimal    `json:"unitPrice"`
	CorpUnitPrice  decimal.Decimal    `json:"corpUnitPrice"`
	CoPay          decimal.Decimal    `json:"coPay"`
	NetToCorporate decimal.Decimal    `json:"netToCorporate"`
	Status         CorporateTxnStatus `json:"status"`
	CorpRuleID     string             `json:"corpRuleId"`
	ReversalOf     *string            `json:"reversalOf,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// CorporateRule prices a hospital service for one corporate payer. It backs
// the price-resolution collaborator: corp unit price, the co-pay the patient
// carries, and the per-encounter coverage cap.
type CorporateRule struct {
	RuleID        string          `json:"ruleId"`
	CompanyID     string          `json:"companyId"`
	ServiceCode   string          `json:"serviceCode"`
	CorpUnitPrice decimal.Decimal `json:"corpUnitPrice"`
	CoPayPercent  decimal.Decimal `json:"coPayPercent"`
	CoverageCap   decimal.Decimal `json:"coverageCap"` // 0 = uncapped
	AuditFields
}

// OutboxStatus is the retry state of a deferred corporate accrual.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxDone    OutboxStatus = "done"
	OutboxFailed  OutboxStatus = "failed"
)

// CorporateOutboxEntry is a durable record of a corporate accrual that
// failed during a primary billing operation. Billing never blocks on the
// corporate ledger; instead the failed accrual is parked here and retried
// by a background worker until it succeeds or exhausts its attempts.
type CorporateOutboxEntry struct {
	OutboxID    string          `json:"id"`
	RefType     string          `json:"refType"`
	RefID       string          `json:"refId"`
	Payload     json.RawMessage `json:"payload"`
	Status      OutboxStatus    `json:"status"`
	Attempts    int             `json:"attempts"`
	LastError   string          `json:"lastError,omitempty"`
	NextRetryAt time.Time       `json:"nextRetryAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
