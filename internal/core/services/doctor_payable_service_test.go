package services

import (
	"context"
	"testing"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayableFixture() (*DoctorPayableService, *memJournalRepo) {
	repo := newMemJournalRepo()
	posting := NewPostingService(repo)
	return NewDoctorPayableService(repo, posting), repo
}

func TestBalanceRecomputesThroughLifecycle(t *testing.T) {
	svc, _ := newPayableFixture()
	ctx := context.Background()

	// Earn 300.
	earning, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1",
		Amount:   dec("300"),
	}, "op-1")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(balance))

	// Pay out 100.
	_, err = svc.Payout(ctx, dto.DoctorPayoutRequest{
		DoctorID: "doc-1",
		Amount:   dec("100"),
		Method:   "cash",
	}, nil, "op-1")
	require.NoError(t, err)

	balance, err = svc.Balance(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(balance))

	// Reverse the earning: the payable goes negative, it is not floored.
	_, err = svc.Reverse(ctx, earning.EntryID, "", "op-1")
	require.NoError(t, err)

	balance, err = svc.Balance(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, dec("-100").Equal(balance))
}

func TestManualEarningOnAccountDebitsAR(t *testing.T) {
	svc, _ := newPayableFixture()

	entry, err := svc.ManualEarning(context.Background(), dto.ManualEarningRequest{
		DoctorID:   "doc-1",
		Amount:     dec("250"),
		PaidMethod: "on_account",
	}, "op-1")
	require.NoError(t, err)

	require.Len(t, entry.Lines, 2)
	assert.Equal(t, domain.AccountAR, entry.Lines[0].Account)
	assert.Equal(t, domain.AccountDoctorPayable, entry.Lines[1].Account)
	assert.Equal(t, "doc-1", entry.Lines[1].Tags[domain.TagDoctorID])
}

func TestManualEarningRejectsNonRevenueDebit(t *testing.T) {
	svc, _ := newPayableFixture()

	_, err := svc.ManualEarning(context.Background(), dto.ManualEarningRequest{
		DoctorID:       "doc-1",
		Amount:         dec("250"),
		RevenueAccount: string(domain.AccountCash),
	}, "op-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReverseSwapsSides(t *testing.T) {
	svc, repo := newPayableFixture()
	ctx := context.Background()

	earning, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1",
		Amount:   dec("400"),
	}, "op-1")
	require.NoError(t, err)

	reversal, err := svc.Reverse(ctx, earning.EntryID, "billing error", "op-2")
	require.NoError(t, err)

	assert.Equal(t, domain.RefReversal, reversal.RefType)
	assert.Equal(t, earning.EntryID, reversal.RefID)
	assert.Equal(t, "billing error", reversal.Memo)
	assert.True(t, reversal.IsBalanced())
	require.Len(t, reversal.Lines, 2)
	// Original credited the payable; the reversal debits it.
	assert.Equal(t, dec("400"), reversal.Lines[1].DebitAmount())
	assert.Equal(t, domain.AccountDoctorPayable, reversal.Lines[1].Account)

	// The reverse lookup now resolves.
	found, err := repo.FindReversalOf(ctx, earning.EntryID)
	require.NoError(t, err)
	assert.Equal(t, reversal.EntryID, found.EntryID)
}

func TestReverseConflicts(t *testing.T) {
	svc, _ := newPayableFixture()
	ctx := context.Background()

	earning, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1",
		Amount:   dec("100"),
	}, "op-1")
	require.NoError(t, err)

	reversal, err := svc.Reverse(ctx, earning.EntryID, "", "op-1")
	require.NoError(t, err)

	// Second reversal of the same entry.
	_, err = svc.Reverse(ctx, earning.EntryID, "", "op-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Reversing the reversal.
	_, err = svc.Reverse(ctx, reversal.EntryID, "", "op-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Unknown entry.
	_, err = svc.Reverse(ctx, "missing", "", "op-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccrualsSuggestedFloorsAtZero(t *testing.T) {
	svc, _ := newPayableFixture()
	ctx := context.Background()

	_, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1",
		Amount:   dec("100"),
		DateISO:  "2026-02-10",
	}, "op-1")
	require.NoError(t, err)

	_, err = svc.Payout(ctx, dto.DoctorPayoutRequest{
		DoctorID: "doc-1",
		Amount:   dec("150"),
		Method:   "bank",
		DateISO:  "2026-02-12",
	}, nil, "op-1")
	require.NoError(t, err)

	from, _ := time.Parse(dto.DateLayout, "2026-02-01")
	to, _ := time.Parse(dto.DateLayout, "2026-02-28")
	resp, err := svc.Accruals(ctx, "doc-1", from, to)
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(resp.Accruals))
	assert.True(t, dec("150").Equal(resp.Debits))
	assert.True(t, resp.Suggested.IsZero())
}

func TestListEarningsExcludesReversed(t *testing.T) {
	svc, _ := newPayableFixture()
	ctx := context.Background()

	kept, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1", Amount: dec("100"),
	}, "op-1")
	require.NoError(t, err)

	dropped, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1", Amount: dec("200"),
	}, "op-1")
	require.NoError(t, err)

	_, err = svc.Reverse(ctx, dropped.EntryID, "", "op-1")
	require.NoError(t, err)

	earnings, err := svc.ListEarnings(ctx, "doc-1", nil, nil)
	require.NoError(t, err)

	require.Len(t, earnings, 1)
	assert.Equal(t, kept.EntryID, earnings[0].ID)
	assert.True(t, dec("100").Equal(earnings[0].Amount))
}

func TestListPayouts(t *testing.T) {
	svc, _ := newPayableFixture()
	ctx := context.Background()

	_, err := svc.ManualEarning(ctx, dto.ManualEarningRequest{
		DoctorID: "doc-1", Amount: dec("500"),
	}, "op-1")
	require.NoError(t, err)

	_, err = svc.Payout(ctx, dto.DoctorPayoutRequest{
		DoctorID: "doc-1", Amount: dec("300"), Method: "cash", Memo: "weekly settlement",
	}, nil, "op-1")
	require.NoError(t, err)

	payouts, err := svc.ListPayouts(ctx, "doc-1", 10)
	require.NoError(t, err)

	require.Len(t, payouts, 1)
	assert.True(t, dec("300").Equal(payouts[0].Amount))
	assert.Equal(t, "weekly settlement", payouts[0].Memo)
}
