package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CorporateTransactionModel mirrors the corporate_transactions table.
type CorporateTransactionModel struct {
	CorpTxnID      string          `db:"corp_txn_id"`
	CompanyID      string          `db:"company_id"`
	RefType        string          `db:"ref_type"`
	RefID          string          `db:"ref_id"`
	EncounterID    string          `db:"encounter_id"`
	Qty            int             `db:"qty"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	CorpUnitPrice  decimal.Decimal `db:"corp_unit_price"`
	CoPay          decimal.Decimal `db:"co_pay"`
	NetToCorporate decimal.Decimal `db:"net_to_corporate"`
	Status         string          `db:"status"`
	CorpRuleID     string          `db:"corp_rule_id"`
	ReversalOf     *string         `db:"reversal_of"`
	CreatedAt      time.Time       `db:"created_at"`
}

// CorporateRuleModel mirrors the corporate_rules table.
type CorporateRuleModel struct {
	RuleID        string          `db:"rule_id"`
	CompanyID     string          `db:"company_id"`
	ServiceCode   string          `db:"service_code"`
	CorpUnitPrice decimal.Decimal `db:"corp_unit_price"`
	CoPayPercent  decimal.Decimal `db:"co_pay_percent"`
	CoverageCap   decimal.Decimal `db:"coverage_cap"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}

// CorporateOutboxModel mirrors the corporate_outbox table.
type CorporateOutboxModel struct {
	OutboxID    string    `db:"outbox_id"`
	RefType     string    `db:"ref_type"`
	RefID       string    `db:"ref_id"`
	Payload     []byte    `db:"payload"`
	Status      string    `db:"status"`
	Attempts    int       `db:"attempts"`
	LastError   string    `db:"last_error"`
	NextRetryAt time.Time `db:"next_retry_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
