package statemachine

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	"github.com/avencare/hospital_finance_app/internal/core/domain"
	"github.com/looplab/fsm"
)

// EventClose is the only transition a cash session supports. Closed is
// terminal; there is no reopen.
const EventClose = "close"

// NewSessionFSM builds the drawer lifecycle machine seeded at the
// session's current status.
func NewSessionFSM(current domain.CashSessionStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: EventClose, Src: []string{string(domain.SessionOpen)}, Dst: string(domain.SessionClosed)},
		},
		fsm.Callbacks{},
	)
}

// TransitionClose validates and applies the close transition, translating
// machine errors into the service error taxonomy.
func TransitionClose(ctx context.Context, current domain.CashSessionStatus) (domain.CashSessionStatus, error) {
	m := NewSessionFSM(current)
	if err := m.Event(ctx, EventClose); err != nil {
		return current, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("cannot close session in status %q", current), apperrors.ErrConflict)
	}
	return domain.CashSessionStatus(m.Current()), nil
}
