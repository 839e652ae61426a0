package appointment

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/notification"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// Deps groups the collaborators every appointment use case shares.
type Deps struct {
	Repo   domain.Repository
	Cache  cache.SlotCache
	Audit  *audit.Dispatcher
	Notify *notification.Dispatcher
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	return d
}

// target is an appointment together with the records its access decision
// depends on.
type target struct {
	ap       *models.Appointment
	operator *models.Operator
	business *models.Business
}

func (t target) parties() access.AppointmentParties {
	return access.AppointmentParties{
		UserID:           t.ap.UserID,
		OperatorUserID:   t.operator.UserID,
		BusinessTenantID: t.business.TenantID,
	}
}

// when renders the appointment start in the business zone for messages.
func (t target) when() string {
	return t.ap.ScheduledAt.In(timezone.Location(t.business.Timezone)).Format("2006-01-02 15:04")
}

func loadVisible(
	ctx context.Context,
	repo domain.Repository,
	scope access.Scope,
	id uint,
) (target, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return target{}, httperr.FromLookup(err, "appointment_not_found", "get appointment")
	}

	op, err := repo.GetOperator(ctx, ap.OperatorID)
	if err != nil {
		return target{}, httperr.FromLookup(err, "operator_not_found", "get operator")
	}

	business, err := repo.GetBusiness(ctx, ap.BusinessID)
	if err != nil {
		return target{}, httperr.FromLookup(err, "business_not_found", "get business")
	}

	t := target{ap: ap, operator: op, business: business}
	if !access.CanSeeAppointment(scope, t.parties()) {
		return target{}, httperr.Forbidden("appointment_forbidden")
	}
	return t, nil
}

func userRef(scope access.Scope) *uint {
	if scope.UserID == 0 {
		return nil
	}
	id := scope.UserID
	return &id
}
