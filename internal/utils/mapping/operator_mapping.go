package mapping

import (
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
)

// ToDomainOperator rebuilds a domain operator from its row model.
func ToDomainOperator(m models.OperatorModel) domain.Operator {
	return domain.Operator{
		OperatorID:   m.OperatorID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToOperatorModel converts a domain operator to its row model.
func ToOperatorModel(o domain.Operator) models.OperatorModel {
	return models.OperatorModel{
		OperatorID:    o.OperatorID,
		Username:      o.Username,
		PasswordHash:  o.PasswordHash,
		FullName:      o.FullName,
		IsActive:      o.IsActive,
		CreatedAt:     o.CreatedAt,
		CreatedBy:     o.CreatedBy,
		LastUpdatedAt: o.LastUpdatedAt,
		LastUpdatedBy: o.LastUpdatedBy,
	}
}
