package services

import (
	"context"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// DoctorPayableSvcFacade derives doctor payables purely from journal
// history. There is no mutable balance field anywhere: every figure is
// recomputed from DOCTOR_PAYABLE lines tagged with the doctor.
type DoctorPayableSvcFacade interface {
	// ManualEarning posts DOCTOR_PAYABLE credit / revenue-or-AR debit.
	ManualEarning(ctx context.Context, req dto.ManualEarningRequest, creatorID string) (*domain.JournalEntry, error)

	// Payout posts DOCTOR_PAYABLE debit / CASH|BANK credit; cash payouts
	// carry the operator's open session when one is passed.
	Payout(ctx context.Context, req dto.DoctorPayoutRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error)

	// Balance returns credits minus debits over the doctor's payable lines.
	Balance(ctx context.Context, doctorID string) (decimal.Decimal, error)

	// Reverse posts a compensating entry with every line's debit/credit
	// swapped. ErrNotFound when the target does not exist; ErrConflict when
	// the target is itself a reversal or already has one.
	Reverse(ctx context.Context, entryID, memo, creatorID string) (*domain.JournalEntry, error)

	// ListPayouts returns the doctor's most recent payout entries.
	ListPayouts(ctx context.Context, doctorID string, limit int) ([]dto.PayoutResponse, error)

	// Accruals aggregates payable movement in [from, to] and suggests a
	// payout of max(accruals-debits, 0).
	Accruals(ctx context.Context, doctorID string, from, to time.Time) (*dto.DoctorAccrualsResponse, error)

	// ListEarnings returns unreversed earning lines, join-excluding any
	// entry that has a reversal pointing at it.
	ListEarnings(ctx context.Context, doctorID string, from, to *time.Time) ([]dto.EarningResponse, error)
}
