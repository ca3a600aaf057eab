package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// DoctorPayableService derives doctor balances from DOCTOR_PAYABLE journal
// lines. Nothing is stored per doctor; every number is a fresh aggregation,
// so a reversal posted anywhere immediately moves the balance.
type DoctorPayableService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	posting     portssvc.PostingSvcFacade
}

func NewDoctorPayableService(journalRepo portsrepo.JournalRepositoryFacade, posting portssvc.PostingSvcFacade) *DoctorPayableService {
	return &DoctorPayableService{journalRepo: journalRepo, posting: posting}
}

// ManualEarning credits the doctor's payable against a revenue debit, or
// against AR when the encounter was billed on account.
func (s *DoctorPayableService) ManualEarning(ctx context.Context, req dto.ManualEarningRequest, creatorID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationErr("amount must be positive")
	}

	debitAccount := domain.AccountOPDRevenue
	if req.RevenueAccount != "" {
		debitAccount = domain.AccountCode(req.RevenueAccount)
		if !debitAccount.IsRevenue() && debitAccount != domain.AccountAR {
			return nil, validationErr(fmt.Sprintf("account %q cannot fund a doctor earning", req.RevenueAccount))
		}
	}
	if req.PaidMethod == "on_account" {
		debitAccount = domain.AccountAR
	}

	amount := req.Amount
	tags := map[string]string{domain.TagDoctorID: req.DoctorID}
	if req.PatientID != "" {
		tags[domain.TagPatientID] = req.PatientID
	}
	if req.SharePercent != nil {
		tags[domain.TagSharePercent] = req.SharePercent.String()
	}

	event := dto.PostingEvent{
		DateISO: req.DateISO,
		RefType: string(domain.RefManualDoctorEarning),
		RefID:   req.RefID,
		Memo:    req.Memo,
		Lines: []dto.PostingContribution{
			{Account: string(debitAccount), Debit: &amount, Tags: tags},
			{Account: string(domain.AccountDoctorPayable), Credit: &amount, Tags: tags},
		},
	}
	return s.posting.Post(ctx, event, creatorID)
}

// Payout settles part of the doctor's payable from the drawer or the bank.
func (s *DoctorPayableService) Payout(ctx context.Context, req dto.DoctorPayoutRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationErr("amount must be positive")
	}
	payAccount, err := paymentAccount(req.Method)
	if err != nil {
		return nil, err
	}
	amount := req.Amount
	tags := map[string]string{domain.TagDoctorID: req.DoctorID}

	event := dto.PostingEvent{
		DateISO:   req.DateISO,
		RefType:   string(domain.RefDoctorPayout),
		Memo:      req.Memo,
		SessionID: sessionID,
		Lines: []dto.PostingContribution{
			{Account: string(domain.AccountDoctorPayable), Debit: &amount, Tags: tags},
			{Account: string(payAccount), Credit: &amount, Tags: tags},
		},
	}
	return s.posting.Post(ctx, event, creatorID)
}

// Balance is credits minus debits over the doctor's payable lines.
// Reversals self-correct: a reversed earning contributes a matching debit.
func (s *DoctorPayableService) Balance(ctx context.Context, doctorID string) (decimal.Decimal, error) {
	debits, credits, err := s.journalRepo.SumAccountByTag(ctx, domain.AccountDoctorPayable, domain.TagDoctorID, doctorID)
	if err != nil {
		return decimal.Zero, err
	}
	return credits.Sub(debits), nil
}

// Reverse posts a compensating entry with the target's lines swapped
// debit-for-credit. Only one reversal per entry; a reversal itself cannot
// be reversed.
func (s *DoctorPayableService) Reverse(ctx context.Context, entryID, memo, creatorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.RefType == domain.RefReversal {
		return nil, apperrors.NewAppError(http.StatusConflict,
			"cannot reverse a reversal entry", apperrors.ErrConflict)
	}
	if _, err := s.journalRepo.FindReversalOf(ctx, entryID); err == nil {
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("entry %s is already reversed", entryID), apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if memo == "" {
		memo = fmt.Sprintf("reversal of %s", entryID)
	}
	lines := make([]dto.PostingContribution, 0, len(original.Lines))
	for _, l := range original.Lines {
		lines = append(lines, dto.PostingContribution{
			Account: string(l.Account),
			Debit:   l.Credit,
			Credit:  l.Debit,
			Tags:    l.Tags,
		})
	}
	event := dto.PostingEvent{
		RefType: string(domain.RefReversal),
		RefID:   entryID,
		Memo:    memo,
		Lines:   lines,
	}
	reversal, err := s.posting.Post(ctx, event, creatorID)
	if err != nil {
		return nil, err
	}
	logger.Info("journal entry reversed", "entryID", entryID, "reversalID", reversal.EntryID)
	return reversal, nil
}

// ListPayouts flattens the doctor's recent payout entries.
func (s *DoctorPayableService) ListPayouts(ctx context.Context, doctorID string, limit int) ([]dto.PayoutResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, err := s.journalRepo.ListPayoutEntries(ctx, doctorID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayoutResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.PayoutResponse{
			ID:      e.EntryID,
			RefID:   e.RefID,
			DateISO: e.EntryDate.Format(dto.DateLayout),
			Memo:    e.Memo,
			Amount:  e.TotalDebits(),
		})
	}
	return out, nil
}

// Accruals aggregates payable movement in [from, to] and suggests the
// payout that would clear it, floored at zero.
func (s *DoctorPayableService) Accruals(ctx context.Context, doctorID string, from, to time.Time) (*dto.DoctorAccrualsResponse, error) {
	debits, credits, err := s.journalRepo.SumAccountByTagInWindow(ctx,
		domain.AccountDoctorPayable, domain.TagDoctorID, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	suggested := credits.Sub(debits)
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}
	return &dto.DoctorAccrualsResponse{
		DoctorID:  doctorID,
		Accruals:  credits,
		Debits:    debits,
		Suggested: suggested,
	}, nil
}

// ListEarnings returns the doctor's unreversed earning lines.
func (s *DoctorPayableService) ListEarnings(ctx context.Context, doctorID string, from, to *time.Time) ([]dto.EarningResponse, error) {
	lines, err := s.journalRepo.ListEarningLines(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EarningResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ToEarningResponse(l))
	}
	return out, nil
}
