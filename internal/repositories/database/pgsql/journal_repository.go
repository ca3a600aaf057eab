package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
	"github.com/avencare/hospital_finance_app/internal/utils/mapping"
	"github.com/avencare/hospital_finance_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGJournalRepository persists journal entries in PostgreSQL. The ledger
// is append-only: there is no update or delete path for posted entries.
type PGJournalRepository struct {
	BaseRepository
}

func NewPGJournalRepository(pool *pgxpool.Pool) *PGJournalRepository {
	return &PGJournalRepository{BaseRepository: NewBaseRepository(pool)}
}

const insertEntrySQL = `
	INSERT INTO journal_entries (entry_id, entry_date, ref_type, ref_id, memo, created_at, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const insertLineSQL = `
	INSERT INTO journal_lines (line_id, entry_id, line_no, account, debit, credit, tags)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// SaveEntry writes the header and all lines in one transaction. Lines go
// through a batch so multi-line entries cost a single round trip.
func (r *PGJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	em := mapping.ToJournalEntryModel(entry)
	if _, err := tx.Exec(ctx, insertEntrySQL,
		em.EntryID, em.EntryDate, em.RefType, em.RefID, em.Memo, em.CreatedAt, em.CreatedBy); err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	batch := &pgx.Batch{}
	for i, line := range entry.Lines {
		lm, err := mapping.ToJournalLineModel(line, entry.EntryID, i+1)
		if err != nil {
			return fmt.Errorf("failed to encode journal line tags: %w", err)
		}
		batch.Queue(insertLineSQL, lm.LineID, lm.EntryID, lm.LineNo, lm.Account, lm.Debit, lm.Credit, lm.Tags)
	}
	br := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal entry: %w", err)
	}
	return nil
}

const selectEntrySQL = `
	SELECT entry_id, entry_date, ref_type, ref_id, memo, created_at, created_by
	FROM journal_entries`

const selectLinesSQL = `
	SELECT line_id, entry_id, line_no, account, debit, credit, tags
	FROM journal_lines
	WHERE entry_id = $1
	ORDER BY line_no`

func scanEntryRow(row pgx.Row) (models.JournalEntryModel, error) {
	var m models.JournalEntryModel
	err := row.Scan(&m.EntryID, &m.EntryDate, &m.RefType, &m.RefID, &m.Memo, &m.CreatedAt, &m.CreatedBy)
	return m, err
}

func (r *PGJournalRepository) loadLines(ctx context.Context, entryID string) ([]models.JournalLineModel, error) {
	rows, err := r.Pool.Query(ctx, selectLinesSQL, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	var out []models.JournalLineModel
	for rows.Next() {
		var lm models.JournalLineModel
		if err := rows.Scan(&lm.LineID, &lm.EntryID, &lm.LineNo, &lm.Account, &lm.Debit, &lm.Credit, &lm.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		out = append(out, lm)
	}
	return out, rows.Err()
}

// FindEntryByID loads one entry with its lines.
func (r *PGJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	em, err := scanEntryRow(r.Pool.QueryRow(ctx, selectEntrySQL+" WHERE entry_id = $1", entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to query journal entry: %w", err)
	}
	lines, err := r.loadLines(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry, err := mapping.ToDomainJournalEntry(em, lines)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindReversalOf returns the compensating entry pointing at entryID, or
// ErrNotFound. An entry counts as reversed exactly when such a row exists.
func (r *PGJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	em, err := scanEntryRow(r.Pool.QueryRow(ctx,
		selectEntrySQL+" WHERE ref_type = $1 AND ref_id = $2", string(domain.RefReversal), entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no reversal found for entry %s", entryID))
		}
		return nil, fmt.Errorf("failed to query reversal entry: %w", err)
	}
	lines, err := r.loadLines(ctx, em.EntryID)
	if err != nil {
		return nil, err
	}
	entry, err := mapping.ToDomainJournalEntry(em, lines)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries pages entries newest first using an (entry_date, created_at)
// cursor encoded as an opaque token.
func (r *PGJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := selectEntrySQL
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid page token", apperrors.ErrValidation)
		}
		query += " WHERE (entry_date, created_at) < ($1, $2)"
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT %d", limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var headers []models.JournalEntryModel
	for rows.Next() {
		var m models.JournalEntryModel
		if err := rows.Scan(&m.EntryID, &m.EntryDate, &m.RefType, &m.RefID, &m.Memo, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(headers) > limit {
		last := headers[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
		headers = headers[:limit]
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, h := range headers {
		lines, err := r.loadLines(ctx, h.EntryID)
		if err != nil {
			return nil, nil, err
		}
		e, err := mapping.ToDomainJournalEntry(h, lines)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, e)
	}
	return entries, token, nil
}

// ListPayoutEntries returns the doctor's most recent payout entries.
func (r *PGJournalRepository) ListPayoutEntries(ctx context.Context, doctorID string, limit int) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, selectEntrySQL+`
		WHERE ref_type = $1
		  AND entry_id IN (SELECT entry_id FROM journal_lines WHERE tags->>'doctorId' = $2)
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $3`, string(domain.RefDoctorPayout), doctorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout entries: %w", err)
	}
	defer rows.Close()

	var headers []models.JournalEntryModel
	for rows.Next() {
		var m models.JournalEntryModel
		if err := rows.Scan(&m.EntryID, &m.EntryDate, &m.RefType, &m.RefID, &m.Memo, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan payout entry: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, h := range headers {
		lines, err := r.loadLines(ctx, h.EntryID)
		if err != nil {
			return nil, err
		}
		e, err := mapping.ToDomainJournalEntry(h, lines)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SumAccountByTag totals debit and credit movement on one account across
// all lines carrying the given tag value.
func (r *PGJournalRepository) SumAccountByTag(ctx context.Context, account domain.AccountCode, tagKey, tagValue string) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_lines
		WHERE account = $1 AND tags->>$2 = $3`,
		string(account), tagKey, tagValue).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum account by tag: %w", err)
	}
	return debits, credits, nil
}

// SumAccountByTagInWindow is SumAccountByTag restricted to entries dated
// within [from, to].
func (r *PGJournalRepository) SumAccountByTagInWindow(ctx context.Context, account domain.AccountCode, tagKey, tagValue string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account = $1 AND l.tags->>$2 = $3
		  AND e.entry_date >= $4 AND e.entry_date <= $5`,
		string(account), tagKey, tagValue, from, to).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum account in window: %w", err)
	}
	return debits, credits, nil
}

// CashTotalsBySession totals CASH movement stamped with the session:
// debits are money into the drawer, credits money out.
func (r *PGJournalRepository) CashTotalsBySession(ctx context.Context, sessionID string) (decimal.Decimal, decimal.Decimal, error) {
	return r.SumAccountByTag(ctx, domain.AccountCash, domain.TagSessionID, sessionID)
}

// ListEarningLines returns DOCTOR_PAYABLE credit lines for the doctor,
// excluding reversal entries and any entry a reversal points at.
func (r *PGJournalRepository) ListEarningLines(ctx context.Context, doctorID string, from, to *time.Time) ([]domain.EarningLine, error) {
	query := `
		SELECT e.entry_id, e.entry_date, e.ref_type, e.ref_id, e.memo,
		       l.tags->>'doctorId', COALESCE(l.tags->>'patientId', ''), l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account = $1
		  AND l.credit IS NOT NULL
		  AND l.tags->>'doctorId' = $2
		  AND e.ref_type <> $3
		  AND NOT EXISTS (
		      SELECT 1 FROM journal_entries rev
		      WHERE rev.ref_type = $3 AND rev.ref_id = e.entry_id)`
	args := []any{string(domain.AccountDoctorPayable), doctorID, string(domain.RefReversal)}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND e.entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND e.entry_date <= $%d", len(args))
	}
	query += " ORDER BY e.entry_date DESC, e.created_at DESC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query earning lines: %w", err)
	}
	defer rows.Close()

	var out []domain.EarningLine
	for rows.Next() {
		var line domain.EarningLine
		var refType string
		var amount decimal.NullDecimal
		if err := rows.Scan(&line.EntryID, &line.EntryDate, &refType, &line.RefID, &line.Memo,
			&line.DoctorID, &line.PatientID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan earning line: %w", err)
		}
		line.RefType = domain.RefType(refType)
		if amount.Valid {
			line.Amount = amount.Decimal
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
