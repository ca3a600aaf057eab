package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 50
const maxListLimit = 200

// PostingService turns business events into balanced journal entries. It is
// the only component that writes journal rows; everything downstream reads.
type PostingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
}

func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade) *PostingService {
	return &PostingService{journalRepo: journalRepo}
}

func validationErr(msg string) error {
	return apperrors.NewAppError(http.StatusBadRequest, msg, apperrors.ErrValidation)
}

// parseBusinessDate resolves an optional yyyy-mm-dd date, defaulting to
// today in UTC. The business date is caller-supplied so back-dated entries
// (a receipt keyed in the next morning) land on the right ledger day.
func parseBusinessDate(dateISO string) (time.Time, error) {
	if dateISO == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dto.DateLayout, dateISO)
	if err != nil {
		return time.Time{}, validationErr(fmt.Sprintf("invalid date %q, want yyyy-mm-dd", dateISO))
	}
	return d, nil
}

func validateContributions(lines []dto.PostingContribution) error {
	if len(lines) < 2 {
		return validationErr("a journal entry needs at least two lines")
	}
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i, l := range lines {
		account := domain.AccountCode(l.Account)
		if !account.Valid() {
			return validationErr(fmt.Sprintf("line %d: unknown account %q", i+1, l.Account))
		}
		hasDebit := l.Debit != nil
		hasCredit := l.Credit != nil
		if hasDebit == hasCredit {
			return validationErr(fmt.Sprintf("line %d: exactly one of debit/credit must be set", i+1))
		}
		if hasDebit {
			if l.Debit.LessThanOrEqual(decimal.Zero) {
				return validationErr(fmt.Sprintf("line %d: debit must be positive", i+1))
			}
			totalDebits = totalDebits.Add(*l.Debit)
		} else {
			if l.Credit.LessThanOrEqual(decimal.Zero) {
				return validationErr(fmt.Sprintf("line %d: credit must be positive", i+1))
			}
			totalCredits = totalCredits.Add(*l.Credit)
		}
	}
	if !totalDebits.Equal(totalCredits) {
		return validationErr(fmt.Sprintf("unbalanced entry: debits %s != credits %s",
			totalDebits.String(), totalCredits.String()))
	}
	return nil
}

// Post assembles a balanced entry from the event and persists it
// atomically. When the event carries a session and touches CASH, every
// line is stamped with the session id so drawer reconciliation can find
// the movement later.
func (s *PostingService) Post(ctx context.Context, event dto.PostingEvent, creatorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	refType := domain.RefType(event.RefType)
	if !refType.Valid() {
		return nil, validationErr(fmt.Sprintf("unknown ref type %q", event.RefType))
	}
	if err := validateContributions(event.Lines); err != nil {
		return nil, err
	}
	entryDate, err := parseBusinessDate(event.DateISO)
	if err != nil {
		return nil, err
	}

	touchesCash := false
	for _, l := range event.Lines {
		if domain.AccountCode(l.Account) == domain.AccountCash {
			touchesCash = true
			break
		}
	}

	entry := domain.JournalEntry{
		EntryID:   uuid.New().String(),
		EntryDate: entryDate,
		RefType:   refType,
		RefID:     event.RefID,
		Memo:      event.Memo,
		CreatedAt: time.Now().UTC(),
		CreatedBy: creatorID,
	}
	entry.Lines = make([]domain.JournalLine, 0, len(event.Lines))
	for _, l := range event.Lines {
		tags := make(map[string]string, len(l.Tags)+1)
		for k, v := range l.Tags {
			tags[k] = v
		}
		if event.SessionID != nil && touchesCash {
			tags[domain.TagSessionID] = *event.SessionID
		}
		entry.Lines = append(entry.Lines, domain.JournalLine{
			LineID:  uuid.New().String(),
			EntryID: entry.EntryID,
			Account: domain.AccountCode(l.Account),
			Debit:   l.Debit,
			Credit:  l.Credit,
			Tags:    tags,
		})
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("failed to persist journal entry", "refType", event.RefType, "error", err)
		return nil, err
	}
	logger.Info("journal entry posted",
		"entryID", entry.EntryID, "refType", string(entry.RefType), "amount", entry.TotalDebits().String())
	return &entry, nil
}

func paymentAccount(method string) (domain.AccountCode, error) {
	switch method {
	case "Cash", "cash":
		return domain.AccountCash, nil
	case "Bank", "bank":
		return domain.AccountBank, nil
	}
	return "", validationErr(fmt.Sprintf("unknown payment method %q", method))
}

// RecordExpense posts EXPENSE debit / CASH|BANK credit.
func (s *PostingService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationErr("amount must be positive")
	}
	payAccount, err := paymentAccount(req.Method)
	if err != nil {
		return nil, err
	}
	amount := req.Amount
	debitTags := map[string]string{}
	if req.DepartmentID != "" {
		debitTags[domain.TagDepartmentID] = req.DepartmentID
	}
	event := dto.PostingEvent{
		DateISO:   req.DateISO,
		RefType:   string(domain.RefExpense),
		RefID:     req.RefID,
		Memo:      req.Memo,
		SessionID: sessionID,
		Lines: []dto.PostingContribution{
			{Account: string(domain.AccountExpense), Debit: &amount, Tags: debitTags},
			{Account: string(payAccount), Credit: &amount},
		},
	}
	return s.Post(ctx, event, creatorID)
}

// RecordIPDPayment posts CASH|BANK debit / IPD_REVENUE credit.
func (s *PostingService) RecordIPDPayment(ctx context.Context, req dto.RecordIPDPaymentRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationErr("amount must be positive")
	}
	payAccount, err := paymentAccount(req.Method)
	if err != nil {
		return nil, err
	}
	amount := req.Amount
	tags := map[string]string{domain.TagEncounterID: req.EncounterID}
	if req.PatientID != "" {
		tags[domain.TagPatientID] = req.PatientID
	}
	event := dto.PostingEvent{
		DateISO:   req.DateISO,
		RefType:   string(domain.RefIPDPayment),
		RefID:     req.RefID,
		Memo:      req.Memo,
		SessionID: sessionID,
		Lines: []dto.PostingContribution{
			{Account: string(payAccount), Debit: &amount, Tags: tags},
			{Account: string(domain.AccountIPDRevenue), Credit: &amount, Tags: tags},
		},
	}
	return s.Post(ctx, event, creatorID)
}

// GetEntry retrieves one entry with its lines.
func (s *PostingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}

// ListEntries retrieves a page of entries, newest first.
func (s *PostingService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Journals = append(resp.Journals, dto.ToJournalResponse(&entries[i]))
	}
	return resp, nil
}
