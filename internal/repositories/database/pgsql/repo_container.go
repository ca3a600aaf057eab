package pgsql

import (
	"github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *repositories.RepositoryProvider {
	return &repositories.RepositoryProvider{
		JournalRepo:     NewPGJournalRepository(pool),
		CashSessionRepo: NewPGCashSessionRepository(pool),
		CorporateRepo:   NewPGCorporateRepository(pool),
		OutboxRepo:      NewPGOutboxRepository(pool),
		OperatorRepo:    NewPGOperatorRepository(pool),
	}
}
