package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portsrepo "github.com/avencare/hospital_finance_app/internal/core/ports/repositories"
	"github.com/avencare/hospital_finance_app/internal/core/statemachine"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/google/uuid"
)

// CashSessionService manages drawer sessions and reconciles them against
// the journal at close. The drawer's cash movement is never tracked on the
// session row while it is open; close derives it from CASH lines tagged
// with the session id.
type CashSessionService struct {
	sessionRepo portsrepo.CashSessionRepositoryFacade
	journalRepo portsrepo.LedgerAggregator
}

func NewCashSessionService(sessionRepo portsrepo.CashSessionRepositoryFacade, journalRepo portsrepo.LedgerAggregator) *CashSessionService {
	return &CashSessionService{sessionRepo: sessionRepo, journalRepo: journalRepo}
}

// Open creates a session for the operator, or returns the existing open one
// untouched. A lost race against a concurrent open recovers the winner, so
// double-clicks and split-brain tabs converge on one session.
func (s *CashSessionService) Open(ctx context.Context, operatorID string, req dto.OpenCashSessionRequest) (*domain.CashSession, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.sessionRepo.FindOpenSessionByOperator(ctx, operatorID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	if req.OpeningFloat.IsNegative() {
		return nil, false, validationErr("opening float cannot be negative")
	}

	now := time.Now().UTC()
	session := domain.CashSession{
		SessionID:    uuid.New().String(),
		SessionDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		OperatorID:   operatorID,
		Status:       domain.SessionOpen,
		OpeningFloat: req.OpeningFloat,
		CounterID:    req.CounterID,
		ShiftID:      req.ShiftID,
		Note:         req.Note,
		StartAt:      now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the partial-unique-index race; the winner is the session.
			return s.recoverOpenSession(ctx, operatorID)
		}
		return nil, false, err
	}
	logger.Info("cash session opened",
		"sessionID", session.SessionID, "operatorID", operatorID, "openingFloat", req.OpeningFloat.String())
	return &session, true, nil
}

func (s *CashSessionService) recoverOpenSession(ctx context.Context, operatorID string) (*domain.CashSession, bool, error) {
	winner, err := s.sessionRepo.FindOpenSessionByOperator(ctx, operatorID)
	if err != nil {
		return nil, false, err
	}
	return winner, false, nil
}

// Current returns the operator's open session.
func (s *CashSessionService) Current(ctx context.Context, operatorID string) (*domain.CashSession, error) {
	return s.sessionRepo.FindOpenSessionByOperator(ctx, operatorID)
}

// Close reconciles the drawer and persists the snapshot:
//
//	netCash         = cashIn - cashOut
//	expectedClosing = openingFloat + netCash
//	overShort       = countedCash - expectedClosing
//
// Closing an already-closed session returns the stored snapshot unchanged;
// a concurrent double-close resolves the same way through the guarded
// update.
func (s *CashSessionService) Close(ctx context.Context, sessionID string, req dto.CloseCashSessionRequest, operatorID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OperatorID != operatorID {
		return nil, apperrors.NewAppError(http.StatusConflict,
			"session belongs to another operator", apperrors.ErrConflict)
	}
	if session.Status == domain.SessionClosed {
		return session, nil
	}
	if _, err := statemachine.TransitionClose(ctx, session.Status); err != nil {
		return nil, err
	}
	if req.CountedCash.IsNegative() {
		return nil, validationErr("counted cash cannot be negative")
	}

	cashIn, cashOut, err := s.journalRepo.CashTotalsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	netCash := cashIn.Sub(cashOut)
	expected := session.OpeningFloat.Add(netCash)
	overShort := req.CountedCash.Sub(expected)
	counted := req.CountedCash
	now := time.Now().UTC()

	session.Status = domain.SessionClosed
	session.CountedCash = &counted
	session.CashIn = &cashIn
	session.CashOut = &cashOut
	session.NetCash = &netCash
	session.ExpectedClosing = &expected
	session.OverShort = &overShort
	session.EndAt = &now
	if req.Note != "" {
		session.Note = req.Note
	}

	closed, err := s.sessionRepo.CloseSession(ctx, *session)
	if err != nil {
		return nil, err
	}
	if !closed {
		// Another close won the guarded update; return its snapshot.
		return s.sessionRepo.FindSessionByID(ctx, sessionID)
	}
	if !overShort.IsZero() {
		logger.Warn("cash session closed with discrepancy",
			"sessionID", sessionID, "overShort", overShort.String())
	} else {
		logger.Info("cash session closed", "sessionID", sessionID)
	}
	return session, nil
}
