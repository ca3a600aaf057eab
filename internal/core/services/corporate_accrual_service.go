package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultOutboxMaxAttempts = 5
const outboxRetryBackoff = 2 * time.Minute

var hundred = decimal.NewFromInt(100)

// CorporateAccrualService maintains the corporate billing ledger: one
// append-only row per accrual, reversal companions instead of deletes, and
// a per-encounter coverage cap enforced under an encounter lock.
type CorporateAccrualService struct {
	corpRepo    portsrepo.CorporateRepositoryWithTx
	outboxRepo  portsrepo.OutboxRepositoryFacade
	maxAttempts int
}

func NewCorporateAccrualService(corpRepo portsrepo.CorporateRepositoryWithTx, outboxRepo portsrepo.OutboxRepositoryFacade, maxAttempts int) *CorporateAccrualService {
	if maxAttempts <= 0 {
		maxAttempts = defaultOutboxMaxAttempts
	}
	return &CorporateAccrualService{corpRepo: corpRepo, outboxRepo: outboxRepo, maxAttempts: maxAttempts}
}

// buildTransaction prices one accrual against the rule and clamps the net
// so the encounter's running total never exceeds the coverage cap.
func buildTransaction(req dto.CorporateAccrualRequest, rule *domain.CorporateRule, accruedSoFar decimal.Decimal) domain.CorporateTransaction {
	qty := req.Qty
	if qty <= 0 {
		qty = 1
	}
	qtyDec := decimal.NewFromInt(int64(qty))
	corpPrice := rule.CorpUnitPrice.Mul(qtyDec)
	coPay := corpPrice.Mul(rule.CoPayPercent).Div(hundred)
	net := corpPrice.Sub(coPay)
	if net.IsNegative() {
		net = decimal.Zero
	}
	if rule.CoverageCap.IsPositive() {
		remaining := rule.CoverageCap.Sub(accruedSoFar)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		if net.GreaterThan(remaining) {
			net = remaining
		}
	}
	return domain.CorporateTransaction{
		CorpTxnID:      uuid.New().String(),
		CompanyID:      req.CompanyID,
		RefType:        req.RefType,
		RefID:          req.RefID,
		EncounterID:    req.EncounterID,
		Qty:            qty,
		UnitPrice:      req.UnitPrice,
		CorpUnitPrice:  rule.CorpUnitPrice,
		CoPay:          coPay,
		NetToCorporate: net,
		Status:         domain.CorpAccrued,
		CorpRuleID:     rule.RuleID,
		CreatedAt:      time.Now().UTC(),
	}
}

// Accrue writes one corporate transaction. Rule resolution, the cap check
// and the insert all run under the encounter lock so two concurrent
// accruals cannot jointly overshoot the cap.
func (s *CorporateAccrualService) Accrue(ctx context.Context, req dto.CorporateAccrualRequest) (*domain.CorporateTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.CorporateTransaction
	err := s.corpRepo.WithEncounterLock(ctx, req.EncounterID, func(repo portsrepo.CorporateRepositoryFacade) error {
		rule, err := repo.FindRule(ctx, req.CompanyID, req.ServiceCode)
		if err != nil {
			return err
		}
		accruedSoFar, err := repo.SumNetByEncounter(ctx, req.EncounterID)
		if err != nil {
			return err
		}
		created = buildTransaction(req, rule, accruedSoFar)
		return repo.InsertTransaction(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("corporate accrual recorded",
		"corpTxnID", created.CorpTxnID, "encounterID", req.EncounterID,
		"net", created.NetToCorporate.String())
	return &created, nil
}

// AccrueFromBilling shields primary billing from corporate-ledger failures:
// errors are logged and parked in the outbox for the retry worker, and the
// caller always gets nil.
func (s *CorporateAccrualService) AccrueFromBilling(ctx context.Context, req dto.CorporateAccrualRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.Accrue(ctx, req); err != nil {
		logger.Error("corporate accrual deferred to outbox",
			"refID", req.RefID, "encounterID", req.EncounterID, "error", err)
		payload, mErr := json.Marshal(req)
		if mErr != nil {
			logger.Error("failed to encode outbox payload", "refID", req.RefID, "error", mErr)
			return nil
		}
		now := time.Now().UTC()
		entry := domain.CorporateOutboxEntry{
			OutboxID:    uuid.New().String(),
			RefType:     req.RefType,
			RefID:       req.RefID,
			Payload:     payload,
			Status:      domain.OutboxPending,
			LastError:   err.Error(),
			NextRetryAt: now.Add(outboxRetryBackoff),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if qErr := s.outboxRepo.Enqueue(ctx, entry); qErr != nil {
			logger.Error("failed to enqueue corporate outbox entry", "refID", req.RefID, "error", qErr)
		}
	}
	return nil
}

// ReverseAndReaccrue handles a billed-item edit: every active transaction
// for the item is flagged reversed and paired with a negated companion,
// then the updated item is accrued fresh. All inside one encounter lock so
// readers never observe the half-reversed state.
func (s *CorporateAccrualService) ReverseAndReaccrue(ctx context.Context, itemID string, req dto.CorporateAccrualRequest) (*dto.ReaccrualResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reversed int
	var created *domain.CorporateTransaction
	err := s.corpRepo.WithEncounterLock(ctx, req.EncounterID, func(repo portsrepo.CorporateRepositoryFacade) error {
		active, err := repo.ListActiveByItem(ctx, itemID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, txn := range active {
			if err := repo.MarkReversed(ctx, txn.CorpTxnID, now); err != nil {
				return err
			}
			originalID := txn.CorpTxnID
			companion := domain.CorporateTransaction{
				CorpTxnID:      uuid.New().String(),
				CompanyID:      txn.CompanyID,
				RefType:        txn.RefType,
				RefID:          txn.RefID,
				EncounterID:    txn.EncounterID,
				Qty:            txn.Qty,
				UnitPrice:      txn.UnitPrice.Neg(),
				CorpUnitPrice:  txn.CorpUnitPrice.Neg(),
				CoPay:          txn.CoPay.Neg(),
				NetToCorporate: txn.NetToCorporate.Neg(),
				Status:         domain.CorpReversed,
				CorpRuleID:     txn.CorpRuleID,
				ReversalOf:     &originalID,
				CreatedAt:      now,
			}
			if err := repo.InsertTransaction(ctx, companion); err != nil {
				return err
			}
			reversed++
		}

		rule, err := repo.FindRule(ctx, req.CompanyID, req.ServiceCode)
		if err != nil {
			return err
		}
		accruedSoFar, err := repo.SumNetByEncounter(ctx, req.EncounterID)
		if err != nil {
			return err
		}
		txn := buildTransaction(req, rule, accruedSoFar)
		if err := repo.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		created = &txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("corporate item re-accrued", "itemID", itemID, "reversed", reversed)

	resp := &dto.ReaccrualResponse{Reversed: reversed}
	if created != nil {
		r := dto.ToCorporateTransactionResponse(created)
		resp.NewTransaction = &r
	}
	return resp, nil
}

// EncounterSummary returns the encounter's signed net position and history.
func (s *CorporateAccrualService) EncounterSummary(ctx context.Context, encounterID string) (*dto.EncounterCorporateSummary, error) {
	net, err := s.corpRepo.SumNetByEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	txns, err := s.corpRepo.ListByEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	summary := &dto.EncounterCorporateSummary{
		EncounterID:    encounterID,
		NetToCorporate: net,
		Transactions:   make([]dto.CorporateTransactionResponse, 0, len(txns)),
	}
	for i := range txns {
		summary.Transactions = append(summary.Transactions, dto.ToCorporateTransactionResponse(&txns[i]))
	}
	return summary, nil
}

// ListOutbox exposes the deferred-accrual queue.
func (s *CorporateAccrualService) ListOutbox(ctx context.Context, status domain.OutboxStatus, limit int) ([]domain.CorporateOutboxEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.outboxRepo.ListByStatus(ctx, status, limit)
}

// ProcessOutboxBatch replays due outbox entries. Each failure pushes the
// retry time out by attempts*backoff; entries that exhaust their attempts
// are flagged failed for manual reconciliation.
func (s *CorporateAccrualService) ProcessOutboxBatch(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.outboxRepo.ListDue(ctx, now, 10)
	if err != nil {
		return 0, err
	}
	for _, entry := range due {
		var req dto.CorporateAccrualRequest
		if err := json.Unmarshal(entry.Payload, &req); err != nil {
			if mErr := s.outboxRepo.MarkFailed(ctx, entry.OutboxID, entry.Attempts+1,
				"unreadable payload: "+err.Error(), time.Now().UTC()); mErr != nil {
				logger.Error("failed to flag outbox entry", "outboxID", entry.OutboxID, "error", mErr)
			}
			continue
		}
		if _, err := s.Accrue(ctx, req); err != nil {
			attempts := entry.Attempts + 1
			if attempts >= s.maxAttempts {
				logger.Error("corporate outbox entry exhausted retries",
					"outboxID", entry.OutboxID, "refID", entry.RefID, "error", err)
				if mErr := s.outboxRepo.MarkFailed(ctx, entry.OutboxID, attempts, err.Error(), time.Now().UTC()); mErr != nil {
					logger.Error("failed to flag outbox entry", "outboxID", entry.OutboxID, "error", mErr)
				}
				continue
			}
			next := time.Now().UTC().Add(time.Duration(attempts) * outboxRetryBackoff)
			if mErr := s.outboxRepo.MarkRetry(ctx, entry.OutboxID, attempts, err.Error(), next); mErr != nil {
				logger.Error("failed to reschedule outbox entry", "outboxID", entry.OutboxID, "error", mErr)
			}
			continue
		}
		if err := s.outboxRepo.MarkDone(ctx, entry.OutboxID, time.Now().UTC()); err != nil {
			logger.Error("failed to mark outbox entry done", "outboxID", entry.OutboxID, "error", err)
		}
	}
	return len(due), nil
}
