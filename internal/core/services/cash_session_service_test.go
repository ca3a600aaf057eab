package services

import (
	"context"
	"testing"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture() (*CashSessionService, *PostingService, *memJournalRepo) {
	journal := newMemJournalRepo()
	sessions := newMemSessionRepo()
	return NewCashSessionService(sessions, journal), NewPostingService(journal), journal
}

func TestOpenIsIdempotent(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	first, created, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("1000")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.SessionOpen, first.Status)

	// Second open with a different float returns the existing session
	// unchanged.
	second, created, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("9999")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.True(t, dec("1000").Equal(second.OpeningFloat))
}

func TestOpenRejectsNegativeFloat(t *testing.T) {
	svc, _, _ := newSessionFixture()

	_, _, err := svc.Open(context.Background(), "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("-5")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCurrentWithoutOpenSession(t *testing.T) {
	svc, _, _ := newSessionFixture()

	_, err := svc.Current(context.Background(), "op-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCloseReconciliation(t *testing.T) {
	svc, posting, _ := newSessionFixture()
	ctx := context.Background()

	session, _, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("1000")})
	require.NoError(t, err)

	// 500 cash in, 120 cash out, stamped with this session.
	_, err = posting.Post(ctx, dto.PostingEvent{
		RefType:   string(domain.RefIPDPayment),
		SessionID: &session.SessionID,
		Lines: []dto.PostingContribution{
			{Account: string(domain.AccountCash), Debit: decP("500")},
			{Account: string(domain.AccountIPDRevenue), Credit: decP("500")},
		},
	}, "op-1")
	require.NoError(t, err)

	_, err = posting.Post(ctx, dto.PostingEvent{
		RefType:   string(domain.RefExpense),
		SessionID: &session.SessionID,
		Lines: []dto.PostingContribution{
			{Account: string(domain.AccountExpense), Debit: decP("120")},
			{Account: string(domain.AccountCash), Credit: decP("120")},
		},
	}, "op-1")
	require.NoError(t, err)

	closed, err := svc.Close(ctx, session.SessionID, dto.CloseCashSessionRequest{CountedCash: dec("1400")}, "op-1")
	require.NoError(t, err)

	assert.Equal(t, domain.SessionClosed, closed.Status)
	assert.True(t, dec("500").Equal(*closed.CashIn))
	assert.True(t, dec("120").Equal(*closed.CashOut))
	assert.True(t, dec("380").Equal(*closed.NetCash))
	assert.True(t, dec("1380").Equal(*closed.ExpectedClosing))
	assert.True(t, dec("20").Equal(*closed.OverShort))
	assert.NotNil(t, closed.EndAt)
}

func TestCloseUnderCount(t *testing.T) {
	svc, posting, _ := newSessionFixture()
	ctx := context.Background()

	session, _, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("500")})
	require.NoError(t, err)

	_, err = posting.Post(ctx, dto.PostingEvent{
		RefType:   string(domain.RefIPDPayment),
		SessionID: &session.SessionID,
		Lines: []dto.PostingContribution{
			{Account: string(domain.AccountCash), Debit: decP("200")},
			{Account: string(domain.AccountIPDRevenue), Credit: decP("200")},
		},
	}, "op-1")
	require.NoError(t, err)

	closed, err := svc.Close(ctx, session.SessionID, dto.CloseCashSessionRequest{CountedCash: dec("690")}, "op-1")
	require.NoError(t, err)

	// Expected 700, counted 690: drawer is short by 10.
	assert.True(t, dec("-10").Equal(*closed.OverShort))
}

func TestCloseAlreadyClosedReturnsSnapshot(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	session, _, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	first, err := svc.Close(ctx, session.SessionID, dto.CloseCashSessionRequest{CountedCash: dec("100")}, "op-1")
	require.NoError(t, err)

	second, err := svc.Close(ctx, session.SessionID, dto.CloseCashSessionRequest{CountedCash: dec("9999")}, "op-1")
	require.NoError(t, err)

	// The snapshot is immutable once written.
	assert.True(t, first.CountedCash.Equal(*second.CountedCash))
	assert.True(t, first.OverShort.Equal(*second.OverShort))
}

func TestCloseOtherOperatorsSession(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	session, _, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	_, err = svc.Close(ctx, session.SessionID, dto.CloseCashSessionRequest{CountedCash: dec("100")}, "op-2")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUntaggedCashExcludedFromReconciliation(t *testing.T) {
	svc, posting, _ := newSessionFixture()
	ctx := context.Background()

	session, _, err := svc.Open(ctx, "op-1", dto.OpenCashSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	// Cash movement with no session context, e.g. posted by a back-office
	// operator with no drawer open.
	_, err = posting.Post(ctx, dto.PostingEvent{
		RefType: string(domain.RefIPDPayment),
		Lines: []dto.PostingContribution{
			{Account: string(domain.AccountCash), Debit: decP("777")},
			{Account: string(domain.AccountIPDRevenue), Credit: decP("777")},
		},
	}, "op-2")
	require.NoError(t, err)

	closed, err := svc.Close(ctx, session.SessionID, dto.CloseCashSessionRequest{CountedCash: dec("100")}, "op-1")
	require.NoError(t, err)

	assert.True(t, closed.CashIn.IsZero())
	assert.True(t, closed.OverShort.IsZero())
}
