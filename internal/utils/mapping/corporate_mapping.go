package mapping

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
)

// ToCorporateTransactionModel converts a domain corporate transaction to
// its row model.
func ToCorporateTransactionModel(t domain.CorporateTransaction) models.CorporateTransactionModel {
	return models.CorporateTransactionModel{
		CorpTxnID:      t.CorpTxnID,
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
		CreatedAt:      t.CreatedAt,
	}
}

// ToDomainCorporateTransaction rebuilds a domain corporate transaction.
func ToDomainCorporateTransaction(m models.CorporateTransactionModel) domain.CorporateTransaction {
	return domain.CorporateTransaction{
		CorpTxnID:      m.CorpTxnID,
		CompanyID:      m.CompanyID,
		RefType:        m.RefType,
		RefID:          m.RefID,
		EncounterID:    m.EncounterID,
		Qty:            m.Qty,
		UnitPrice:      m.UnitPrice,
		CorpUnitPrice:  m.CorpUnitPrice,
		CoPay:          m.CoPay,
		NetToCorporate: m.NetToCorporate,
		Status:         domain.CorporateTxnStatus(m.Status),
		CorpRuleID:     m.CorpRuleID,
		ReversalOf:     m.ReversalOf,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainCorporateRule rebuilds a domain rule from its row model.
func ToDomainCorporateRule(m models.CorporateRuleModel) domain.CorporateRule {
	return domain.CorporateRule{
		RuleID:        m.RuleID,
		CompanyID:     m.CompanyID,
		ServiceCode:   m.ServiceCode,
		CorpUnitPrice: m.CorpUnitPrice,
		CoPayPercent:  m.CoPayPercent,
		CoverageCap:   m.CoverageCap,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainOutboxEntry rebuilds a domain outbox entry from its row model.
func ToDomainOutboxEntry(m models.CorporateOutboxModel) domain.CorporateOutboxEntry {
	return domain.CorporateOutboxEntry{
		OutboxID:    m.OutboxID,
		RefType:     m.RefType,
		RefID:       m.RefID,
		Payload:     m.Payload,
		Status:      domain.OutboxStatus(m.Status),
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		NextRetryAt: m.NextRetryAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
