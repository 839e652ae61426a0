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

// ChangeStatus runs one of the staff-only transitions (confirm, complete,
// no-show) as a conditional write from its valid source states.
type ChangeStatus struct {
	Deps
	transition domain.Transition
	action     string
	now        func() time.Time
}

func NewConfirmAppointment(deps Deps) *ChangeStatus {
	return newChangeStatus(deps, domain.Confirm, "appointment_confirmed")
}

func NewCompleteAppointment(deps Deps) *ChangeStatus {
	return newChangeStatus(deps, domain.Complete, "appointment_completed")
}

func NewNoShowAppointment(deps Deps) *ChangeStatus {
	return newChangeStatus(deps, domain.NoShow, "appointment_no_show")
}

func newChangeStatus(deps Deps, t domain.Transition, action string) *ChangeStatus {
	return &ChangeStatus{
		Deps:       deps.withDefaults(),
		transition: t,
		action:     action,
		now:        time.Now,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	scope access.Scope,
	appointmentID uint,
) (*models.Appointment, error) {

	if !scope.Role.IsStaff() {
		return nil, httperr.Forbidden("staff_only")
	}

	t, err := loadVisible(ctx, uc.Repo, scope, appointmentID)
	if err != nil {
		return nil, err
	}
	ap := t.ap

	if err := uc.transition.Check(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := uc.now()

	ok, err := uc.Repo.Transition(ctx, ap.ID, uc.transition, now)
	if err != nil {
		return nil, httperr.Storage(uc.transition.Name+" appointment", err)
	}
	if !ok {
		return nil, httperr.Conflict("invalid_status_transition")
	}

	ap.Status = string(uc.transition.To)
	if uc.transition.To == domain.StatusCompleted {
		ap.CompletedAt = &now
	}

	uc.Audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     userRef(scope),
		Action:     uc.action,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	if uc.transition.To == domain.StatusConfirmed {
		uc.Notify.Notify(notification.Confirmed(ap, t.when()))
	}

	return ap, nil
}
