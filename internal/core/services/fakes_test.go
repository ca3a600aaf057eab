package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// memJournalRepo is an in-memory JournalRepositoryFacade. Aggregations run
// over the stored entries the same way the SQL does, so arithmetic
// assertions exercise the real service logic end to end.
type memJournalRepo struct {
	mu      sync.Mutex
	entries []domain.JournalEntry
	saveErr error
}

func newMemJournalRepo() *memJournalRepo {
	return &memJournalRepo{}
}

func (r *memJournalRepo) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memJournalRepo) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].EntryID == entryID {
			e := r.entries[i]
			return &e, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
}

func (r *memJournalRepo) FindReversalOf(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].RefType == domain.RefReversal && r.entries[i].RefID == entryID {
			e := r.entries[i]
			return &e, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no reversal found for entry %s", entryID))
}

func (r *memJournalRepo) ListEntries(_ context.Context, limit int, _ *string) ([]domain.JournalEntry, *string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.JournalEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil, nil
}

func (r *memJournalRepo) ListPayoutEntries(_ context.Context, doctorID string, limit int) ([]domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JournalEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.entries[i]
		if e.RefType != domain.RefDoctorPayout {
			continue
		}
		for _, l := range e.Lines {
			if l.Tags[domain.TagDoctorID] == doctorID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (r *memJournalRepo) SumAccountByTag(_ context.Context, account domain.AccountCode, tagKey, tagValue string) (decimal.Decimal, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range r.entries {
		for _, l := range e.Lines {
			if l.Account != account || l.Tags[tagKey] != tagValue {
				continue
			}
			debits = debits.Add(l.DebitAmount())
			credits = credits.Add(l.CreditAmount())
		}
	}
	return debits, credits, nil
}

func (r *memJournalRepo) SumAccountByTagInWindow(_ context.Context, account domain.AccountCode, tagKey, tagValue string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range r.entries {
		if e.EntryDate.Before(from) || e.EntryDate.After(to) {
			continue
		}
		for _, l := range e.Lines {
			if l.Account != account || l.Tags[tagKey] != tagValue {
				continue
			}
			debits = debits.Add(l.DebitAmount())
			credits = credits.Add(l.CreditAmount())
		}
	}
	return debits, credits, nil
}

func (r *memJournalRepo) CashTotalsBySession(ctx context.Context, sessionID string) (decimal.Decimal, decimal.Decimal, error) {
	return r.SumAccountByTag(ctx, domain.AccountCash, domain.TagSessionID, sessionID)
}

func (r *memJournalRepo) ListEarningLines(_ context.Context, doctorID string, from, to *time.Time) ([]domain.EarningLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reversed := map[string]bool{}
	for _, e := range r.entries {
		if e.RefType == domain.RefReversal {
			reversed[e.RefID] = true
		}
	}
	var out []domain.EarningLine
	for _, e := range r.entries {
		if e.RefType == domain.RefReversal || reversed[e.EntryID] {
			continue
		}
		if from != nil && e.EntryDate.Before(*from) {
			continue
		}
		if to != nil && e.EntryDate.After(*to) {
			continue
		}
		for _, l := range e.Lines {
			if l.Account != domain.AccountDoctorPayable || l.Credit == nil || l.Tags[domain.TagDoctorID] != doctorID {
				continue
			}
			out = append(out, domain.EarningLine{
				EntryID:   e.EntryID,
				EntryDate: e.EntryDate,
				RefType:   e.RefType,
				RefID:     e.RefID,
				Memo:      e.Memo,
				DoctorID:  doctorID,
				PatientID: l.Tags[domain.TagPatientID],
				Amount:    *l.Credit,
			})
		}
	}
	return out, nil
}

// memSessionRepo is an in-memory CashSessionRepositoryFacade enforcing the
// one-open-session-per-operator rule the same way the partial index does.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.CashSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*domain.CashSession{}}
}

func (r *memSessionRepo) CreateSession(_ context.Context, session domain.CashSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.OperatorID == session.OperatorID && s.Status == domain.SessionOpen {
			return apperrors.NewAppError(409, "operator already has an open cash session", apperrors.ErrDuplicate)
		}
	}
	copied := session
	r.sessions[session.SessionID] = &copied
	return nil
}

func (r *memSessionRepo) FindSessionByID(_ context.Context, sessionID string) (*domain.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("cash session %s not found", sessionID))
}

func (r *memSessionRepo) FindOpenSessionByOperator(_ context.Context, operatorID string) (*domain.CashSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.OperatorID == operatorID && s.Status == domain.SessionOpen {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no open cash session for operator")
}

func (r *memSessionRepo) CloseSession(_ context.Context, session domain.CashSession) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[session.SessionID]
	if !ok || existing.Status != domain.SessionOpen {
		return false, nil
	}
	copied := session
	r.sessions[session.SessionID] = &copied
	return true, nil
}

// memCorporateRepo is an in-memory CorporateRepositoryWithTx. The encounter
// lock degrades to a plain mutex, which is the same serialization the
// advisory lock provides.
type memCorporateRepo struct {
	mu    sync.Mutex
	rules map[string]domain.CorporateRule // companyID|serviceCode
	txns  []domain.CorporateTransaction
}

func newMemCorporateRepo() *memCorporateRepo {
	return &memCorporateRepo{rules: map[string]domain.CorporateRule{}}
}

func (r *memCorporateRepo) addRule(rule domain.CorporateRule) {
	r.rules[rule.CompanyID+"|"+rule.ServiceCode] = rule
}

func (r *memCorporateRepo) WithEncounterLock(_ context.Context, _ string, fn func(repo portsrepo.CorporateRepositoryFacade) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn((*lockedCorporateRepo)(r))
}

// lockedCorporateRepo is the view handed to fn while the lock is held.
type lockedCorporateRepo memCorporateRepo

func (r *lockedCorporateRepo) FindRule(ctx context.Context, companyID, serviceCode string) (*domain.CorporateRule, error) {
	return (*memCorporateRepo)(r).findRuleLocked(companyID, serviceCode)
}

func (r *lockedCorporateRepo) SumNetByEncounter(_ context.Context, encounterID string) (decimal.Decimal, error) {
	return (*memCorporateRepo)(r).sumNetLocked(encounterID), nil
}

func (r *lockedCorporateRepo) ListActiveByItem(_ context.Context, refID string) ([]domain.CorporateTransaction, error) {
	var out []domain.CorporateTransaction
	for _, t := range r.txns {
		if t.RefID == refID && t.Status == domain.CorpAccrued {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *lockedCorporateRepo) ListByEncounter(_ context.Context, encounterID string) ([]domain.CorporateTransaction, error) {
	var out []domain.CorporateTransaction
	for _, t := range r.txns {
		if t.EncounterID == encounterID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *lockedCorporateRepo) InsertTransaction(_ context.Context, txn domain.CorporateTransaction) error {
	r.txns = append(r.txns, txn)
	return nil
}

func (r *lockedCorporateRepo) MarkReversed(_ context.Context, corpTxnID string, _ time.Time) error {
	for i := range r.txns {
		if r.txns[i].CorpTxnID == corpTxnID && r.txns[i].Status == domain.CorpAccrued {
			r.txns[i].Status = domain.CorpReversed
			return nil
		}
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("accrued corporate transaction %s not found", corpTxnID))
}

func (r *memCorporateRepo) findRuleLocked(companyID, serviceCode string) (*domain.CorporateRule, error) {
	if rule, ok := r.rules[companyID+"|"+serviceCode]; ok {
		return &rule, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no corporate rule for company %s service %s", companyID, serviceCode))
}

func (r *memCorporateRepo) sumNetLocked(encounterID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.txns {
		if t.EncounterID == encounterID {
			total = total.Add(t.NetToCorporate)
		}
	}
	return total
}

func (r *memCorporateRepo) FindRule(_ context.Context, companyID, serviceCode string) (*domain.CorporateRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findRuleLocked(companyID, serviceCode)
}

func (r *memCorporateRepo) SumNetByEncounter(_ context.Context, encounterID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sumNetLocked(encounterID), nil
}

func (r *memCorporateRepo) ListActiveByItem(ctx context.Context, refID string) ([]domain.CorporateTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (*lockedCorporateRepo)(r).ListActiveByItem(ctx, refID)
}

func (r *memCorporateRepo) ListByEncounter(ctx context.Context, encounterID string) ([]domain.CorporateTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (*lockedCorporateRepo)(r).ListByEncounter(ctx, encounterID)
}

func (r *memCorporateRepo) InsertTransaction(ctx context.Context, txn domain.CorporateTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (*lockedCorporateRepo)(r).InsertTransaction(ctx, txn)
}

func (r *memCorporateRepo) MarkReversed(ctx context.Context, corpTxnID string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (*lockedCorporateRepo)(r).MarkReversed(ctx, corpTxnID, updatedAt)
}

// memOutboxRepo is an in-memory OutboxRepositoryFacade.
type memOutboxRepo struct {
	mu      sync.Mutex
	entries []domain.CorporateOutboxEntry
}

func newMemOutboxRepo() *memOutboxRepo {
	return &memOutboxRepo{}
}

func (r *memOutboxRepo) Enqueue(_ context.Context, entry domain.CorporateOutboxEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memOutboxRepo) ListDue(_ context.Context, now time.Time, limit int) ([]domain.CorporateOutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CorporateOutboxEntry
	for _, e := range r.entries {
		if e.Status == domain.OutboxPending && !e.NextRetryAt.After(now) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memOutboxRepo) ListByStatus(_ context.Context, status domain.OutboxStatus, limit int) ([]domain.CorporateOutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CorporateOutboxEntry
	for _, e := range r.entries {
		if e.Status == status && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memOutboxRepo) setStatus(outboxID string, status domain.OutboxStatus, attempts int, lastError string) {
	for i := range r.entries {
		if r.entries[i].OutboxID == outboxID {
			r.entries[i].Status = status
			r.entries[i].Attempts = attempts
			r.entries[i].LastError = lastError
		}
	}
}

func (r *memOutboxRepo) MarkDone(_ context.Context, outboxID string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setStatus(outboxID, domain.OutboxDone, 0, "")
	return nil
}

func (r *memOutboxRepo) MarkRetry(_ context.Context, outboxID string, attempts int, lastError string, nextRetryAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].OutboxID == outboxID {
			r.entries[i].Attempts = attempts
			r.entries[i].LastError = lastError
			r.entries[i].NextRetryAt = nextRetryAt
		}
	}
	return nil
}

func (r *memOutboxRepo) MarkFailed(_ context.Context, outboxID string, attempts int, lastError string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setStatus(outboxID, domain.OutboxFailed, attempts, lastError)
	return nil
}
