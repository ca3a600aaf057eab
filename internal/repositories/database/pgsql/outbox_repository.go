package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/models"
	"github.com/avencare/hospital_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGOutboxRepository persists deferred corporate accruals awaiting retry.
type PGOutboxRepository struct {
	BaseRepository
}

func NewPGOutboxRepository(pool *pgxpool.Pool) *PGOutboxRepository {
	return &PGOutboxRepository{BaseRepository: NewBaseRepository(pool)}
}

const insertOutboxSQL = `
	INSERT INTO corporate_outbox (
		outbox_id, ref_type, ref_id, payload, status, attempts,
		last_error, next_retry_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *PGOutboxRepository) Enqueue(ctx context.Context, entry domain.CorporateOutboxEntry) error {
	_, err := r.Pool.Exec(ctx, insertOutboxSQL,
		entry.OutboxID, entry.RefType, entry.RefID, []byte(entry.Payload), string(entry.Status),
		entry.Attempts, entry.LastError, entry.NextRetryAt, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue outbox entry: %w", err)
	}
	return nil
}

const selectOutboxSQL = `
	SELECT outbox_id, ref_type, ref_id, payload, status, attempts,
	       last_error, next_retry_at, created_at, updated_at
	FROM corporate_outbox`

func (r *PGOutboxRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.CorporateOutboxEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer rows.Close()

	var out []domain.CorporateOutboxEntry
	for rows.Next() {
		var m models.CorporateOutboxModel
		if err := rows.Scan(&m.OutboxID, &m.RefType, &m.RefID, &m.Payload, &m.Status, &m.Attempts,
			&m.LastError, &m.NextRetryAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
		}
		out = append(out, mapping.ToDomainOutboxEntry(m))
	}
	return out, rows.Err()
}

// ListDue returns pending entries whose retry time has arrived, oldest
// first so starvation cannot occur.
func (r *PGOutboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.CorporateOutboxEntry, error) {
	return r.queryEntries(ctx,
		selectOutboxSQL+" WHERE status = $1 AND next_retry_at <= $2 ORDER BY next_retry_at LIMIT $3",
		string(domain.OutboxPending), now, limit)
}

func (r *PGOutboxRepository) ListByStatus(ctx context.Context, status domain.OutboxStatus, limit int) ([]domain.CorporateOutboxEntry, error) {
	return r.queryEntries(ctx,
		selectOutboxSQL+" WHERE status = $1 ORDER BY created_at DESC LIMIT $2",
		string(status), limit)
}

func (r *PGOutboxRepository) MarkDone(ctx context.Context, outboxID string, updatedAt time.Time) error {
	_, err := r.Pool.Exec(ctx,
		"UPDATE corporate_outbox SET status = $1, updated_at = $2 WHERE outbox_id = $3",
		string(domain.OutboxDone), updatedAt, outboxID)
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry done: %w", err)
	}
	return nil
}

func (r *PGOutboxRepository) MarkRetry(ctx context.Context, outboxID string, attempts int, lastError string, nextRetryAt time.Time) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE corporate_outbox
		SET attempts = $1, last_error = $2, next_retry_at = $3, updated_at = now()
		WHERE outbox_id = $4`,
		attempts, lastError, nextRetryAt, outboxID)
	if err != nil {
		return fmt.Errorf("failed to schedule outbox retry: %w", err)
	}
	return nil
}

func (r *PGOutboxRepository) MarkFailed(ctx context.Context, outboxID string, attempts int, lastError string, updatedAt time.Time) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE corporate_outbox
		SET status = $1, attempts = $2, last_error = $3, updated_at = $4
		WHERE outbox_id = $5`,
		string(domain.OutboxFailed), attempts, lastError, updatedAt, outboxID)
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry failed: %w", err)
	}
	return nil
}
