package dto

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CorporateAccrualRequest derives a corporate billing line from a priced
// hospital service. The corp unit price, co-pay and coverage cap come from
// the company's rule for the service code, not from the caller.
type CorporateAccrualRequest struct {
	CompanyID   string          `json:"companyId" binding:"required"`
	EncounterID string          `json:"encounterId" binding:"required"`
	RefType     string          `json:"refType,omitempty"`
	RefID       string          `json:"refId" binding:"required"` // billed item id
	ServiceCode string          `json:"serviceCode" binding:"required"`
	Qty         int             `json:"qty,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CorporateTransactionResponse mirrors the persisted transaction shape.
type CorporateTransactionResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"companyId"`
	RefType        string          `json:"refType"`
	RefID          string          `json:"refId"`
	EncounterID    string          `json:"encounterId"`
	Qty            int             `json:"qty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	CorpUnitPrice  decimal.Decimal `json:"corpUnitPrice"`
	CoPay          decimal.Decimal `json:"coPay"`
	NetToCorporate decimal.Decimal `json:"netToCorporate"`
	Status         string          `json:"status"`
	CorpRuleID     string          `json:"corpRuleId"`
	ReversalOf     *string         `json:"reversalOf,omitempty"`
}

// ReaccrualResponse summarizes one reverse-and-reaccrue pass.
type ReaccrualResponse struct {
	Reversed       int                           `json:"reversed"`
	NewTransaction *CorporateTransactionResponse `json:"newTransaction,omitempty"`
}

// EncounterCorporateSummary is the derived position of one encounter
// against its corporate payer.
type EncounterCorporateSummary struct {
	EncounterID    string                         `json:"encounterId"`
	NetToCorporate decimal.Decimal                `json:"netToCorporate"`
	Transactions   []CorporateTransactionResponse `json:"transactions"`
}

// ToCorporateTransactionResponse converts a domain transaction to its
// response DTO.
func ToCorporateTransactionResponse(t *domain.CorporateTransaction) CorporateTransactionResponse {
	return CorporateTransactionResponse{
		ID:             t.CorpTxnID,
		CompanyID:      t.CompanyID,
		RefType:        t.RefType,
		RefID:          t.RefID,
		EncounterID:    t.EncounterID,
		Qty:            t.Qty,
		UnitPrice:      t.UnitPrice,
		CorpUnitPrice:  t.CorpUnitPrice,
		CoPay:          t.CoPay,
		NetToCorporate: t.NetToCorporate,
		Status:         string(t.Status),
		CorpRuleID:     t.CorpRuleID,
		ReversalOf:     t.ReversalOf,
	}
}
