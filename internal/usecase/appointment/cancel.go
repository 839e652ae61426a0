package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/notification"
)

type CancelAppointment struct {
	Deps
	now func() time.Time
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{Deps: deps.withDefaults(), now: time.Now}
}

// Execute cancels and releases the slot. Customers may cancel their own
// appointments; a second cancel is a CONFLICT and leaves the slot alone.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	scope access.Scope,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	t, err := loadVisible(ctx, uc.Repo, scope, appointmentID)
	if err != nil {
		return nil, err
	}
	ap := t.ap

	if err := domain.Cancel.Check(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := uc.now()
	notes := domain.WithCancelReason(ap.Notes, reason)

	if err := uc.Repo.Cancel(ctx, ap.ID, now, notes); err != nil {
		return nil, httperr.Storage("cancel appointment", err)
	}

	ap.Status = string(domain.StatusCancelled)
	ap.CancelledAt = &now
	ap.Notes = notes

	if ap.SlotID != nil {
		uc.Cache.Invalidate(ctx, ap.OperatorID)
	}

	uc.Audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     userRef(scope),
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]string{"reason": reason},
	})

	recipient := ap.UserID
	if scope.UserID == ap.UserID {
		recipient = t.operator.UserID
	}
	uc.Notify.Notify(notification.Cancelled(recipient, ap, t.when()))

	return ap, nil
}
