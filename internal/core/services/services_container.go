package services

import (
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
)

// NewServiceContainer wires all services onto the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, outboxMaxAttempts int) *portssvc.ServiceContainer {
	posting := NewPostingService(repos.JournalRepo)
	return &portssvc.ServiceContainer{
		Posting:       posting,
		CashSession:   NewCashSessionService(repos.CashSessionRepo, repos.JournalRepo),
		DoctorPayable: NewDoctorPayableService(repos.JournalRepo, posting),
		Corporate:     NewCorporateAccrualService(repos.CorporateRepo, repos.OutboxRepo, outboxMaxAttempts),
		Operator:      NewOperatorService(repos.OperatorRepo),
	}
}
