package services

// ServiceContainer holds all service facades for dependency injection into
// the HTTP layer.
type ServiceContainer struct {
	Posting       PostingSvcFacade
	CashSession   CashSessionSvcFacade
	DoctorPayable DoctorPayableSvcFacade
	Corporate     CorporateSvcFacade
	Operator      OperatorSvcFacade
}
