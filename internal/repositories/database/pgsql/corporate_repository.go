package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/avencare/hospital_finance_app/internal/models"
	"github.com/avencare/hospital_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGCorporateRepository persists the corporate billing ledger. All methods
// run on q, which is the pool by default and a transaction inside
// WithEncounterLock, so the same code serves both paths.
type PGCorporateRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewPGCorporateRepository(pool *pgxpool.Pool) *PGCorporateRepository {
	return &PGCorporateRepository{pool: pool, q: pool}
}

// WithEncounterLock runs fn inside one DB transaction holding an advisory
// lock keyed on the encounter. Concurrent accruals for the same encounter
// serialize here, which is what keeps the coverage cap exact.
func (r *PGCorporateRepository) WithEncounterLock(ctx context.Context, encounterID string, fn func(repo repositories.CorporateRepositoryFacade) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", encounterID); err != nil {
		return fmt.Errorf("failed to acquire encounter lock: %w", err)
	}

	txRepo := &PGCorporateRepository{pool: r.pool, q: tx}
	if err := fn(txRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit corporate transaction: %w", err)
	}
	return nil
}

const selectRuleSQL = `
	SELECT rule_id, company_id, service_code, corp_unit_price, co_pay_percent, coverage_cap,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM corporate_rules
	WHERE company_id = $1 AND service_code = $2`

// FindRule resolves the company's price rule for a service code.
func (r *PGCorporateRepository) FindRule(ctx context.Context, companyID, serviceCode string) (*domain.CorporateRule, error) {
	var m models.CorporateRuleModel
	err := r.q.QueryRow(ctx, selectRuleSQL, companyID, serviceCode).Scan(
		&m.RuleID, &m.CompanyID, &m.ServiceCode, &m.CorpUnitPrice, &m.CoPayPercent, &m.CoverageCap,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("no corporate rule for company %s service %s", companyID, serviceCode))
		}
		return nil, fmt.Errorf("failed to query corporate rule: %w", err)
	}
	rule := mapping.ToDomainCorporateRule(m)
	return &rule, nil
}

// SumNetByEncounter sums signed netToCorporate for the encounter. Reversal
// companions carry negative amounts, so the sum is the live position.
func (r *PGCorporateRepository) SumNetByEncounter(ctx context.Context, encounterID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		"SELECT COALESCE(SUM(net_to_corporate), 0) FROM corporate_transactions WHERE encounter_id = $1",
		encounterID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum corporate net: %w", err)
	}
	return total, nil
}

const selectCorpTxnSQL = `
	SELECT corp_txn_id, company_id, ref_type, ref_id, encounter_id, qty,
	       unit_price, corp_unit_price, co_pay, net_to_corporate,
	       status, corp_rule_id, reversal_of, created_at
	FROM corporate_transactions`

func (r *PGCorporateRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.CorporateTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query corporate transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.CorporateTransaction
	for rows.Next() {
		var m models.CorporateTransactionModel
		if err := rows.Scan(&m.CorpTxnID, &m.CompanyID, &m.RefType, &m.RefID, &m.EncounterID, &m.Qty,
			&m.UnitPrice, &m.CorpUnitPrice, &m.CoPay, &m.NetToCorporate,
			&m.Status, &m.CorpRuleID, &m.ReversalOf, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan corporate transaction: %w", err)
		}
		out = append(out, mapping.ToDomainCorporateTransaction(m))
	}
	return out, rows.Err()
}

// ListActiveByItem retrieves the still-accrued transactions for a billed item.
func (r *PGCorporateRepository) ListActiveByItem(ctx context.Context, refID string) ([]domain.CorporateTransaction, error) {
	return r.queryTransactions(ctx,
		selectCorpTxnSQL+" WHERE ref_id = $1 AND status = $2 ORDER BY created_at",
		refID, string(domain.CorpAccrued))
}

// ListByEncounter retrieves the encounter's full transaction history.
func (r *PGCorporateRepository) ListByEncounter(ctx context.Context, encounterID string) ([]domain.CorporateTransaction, error) {
	return r.queryTransactions(ctx,
		selectCorpTxnSQL+" WHERE encounter_id = $1 ORDER BY created_at DESC",
		encounterID)
}

const insertCorpTxnSQL = `
	INSERT INTO corporate_transactions (
		corp_txn_id, company_id, ref_type, ref_id, encounter_id, qty,
		unit_price, corp_unit_price, co_pay, net_to_corporate,
		status, corp_rule_id, reversal_of, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// InsertTransaction appends one row; existing rows are never rewritten.
func (r *PGCorporateRepository) InsertTransaction(ctx context.Context, txn domain.CorporateTransaction) error {
	m := mapping.ToCorporateTransactionModel(txn)
	_, err := r.q.Exec(ctx, insertCorpTxnSQL,
		m.CorpTxnID, m.CompanyID, m.RefType, m.RefID, m.EncounterID, m.Qty,
		m.UnitPrice, m.CorpUnitPrice, m.CoPay, m.NetToCorporate,
		m.Status, m.CorpRuleID, m.ReversalOf, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert corporate transaction: %w", err)
	}
	return nil
}

// MarkReversed flips one accrued transaction to reversed.
func (r *PGCorporateRepository) MarkReversed(ctx context.Context, corpTxnID string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		"UPDATE corporate_transactions SET status = $1 WHERE corp_txn_id = $2 AND status = $3",
		string(domain.CorpReversed), corpTxnID, string(domain.CorpAccrued))
	if err != nil {
		return fmt.Errorf("failed to mark corporate transaction reversed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("accrued corporate transaction %s not found", corpTxnID))
	}
	return nil
}
