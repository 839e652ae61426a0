package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/notification"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SlotID    uint
	ServiceID uint
	Notes     string

	// UserID is the customer. Customers book for themselves; staff must
	// name the customer they book for.
	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
	now func() time.Time
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{Deps: deps.withDefaults(), now: time.Now}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	scope access.Scope,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	customerID, err := customerFor(scope, in.UserID)
	if err != nil {
		return nil, err
	}

	notes, err := domain.CleanNotes(in.Notes)
	if err != nil {
		return nil, err
	}

	if scope.Role != access.RoleUser {
		if _, err := uc.Repo.GetUser(ctx, customerID); err != nil {
			return nil, httperr.FromLookup(err, "user_not_found", "get user")
		}
	}

	// --------------------------------------------------
	// Slot + operator
	// --------------------------------------------------
	s, err := uc.Repo.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.FromLookup(err, "slot_not_found", "get slot")
	}
	if slot.Status(s.Status) != slot.StatusAvailable {
		return nil, httperr.Conflict("slot_not_available")
	}

	op, err := uc.Repo.GetOperator(ctx, s.OperatorID)
	if err != nil {
		return nil, httperr.FromLookup(err, "operator_not_found", "get operator")
	}
	if scope.Role != access.RoleUser {
		if err := access.CheckOperator(op, scope, true); err != nil {
			return nil, err
		}
	}
	if !op.Active {
		return nil, httperr.Validation("operator_inactive")
	}

	business, err := uc.Repo.GetBusiness(ctx, op.BusinessID)
	if err != nil {
		return nil, httperr.FromLookup(err, "business_not_found", "get business")
	}

	// --------------------------------------------------
	// Service snapshot
	// --------------------------------------------------
	svc, err := uc.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.FromLookup(err, "service_not_found", "get service")
	}
	if svc.BusinessID != op.BusinessID {
		return nil, httperr.Validation("service_not_in_business")
	}

	override, err := uc.Repo.GetOperatorService(ctx, op.ID, svc.ID)
	if err != nil {
		return nil, httperr.Storage("get operator service", err)
	}

	snap, err := domain.Resolve(svc, override)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Schedule in the business zone
	// --------------------------------------------------
	scheduledAt, err := timezone.At(s.Date, s.StartTime, business.Timezone)
	if err != nil {
		return nil, httperr.Storage("slot time", err)
	}
	if scheduledAt.Before(uc.now()) {
		return nil, httperr.Validation("slot_in_past")
	}

	// --------------------------------------------------
	// Book: slot CAS + insert in one transaction
	// --------------------------------------------------
	slotID := s.ID
	ap := &models.Appointment{
		UserID:          customerID,
		OperatorID:      op.ID,
		BusinessID:      op.BusinessID,
		ServiceID:       svc.ID,
		SlotID:          &slotID,
		ScheduledAt:     scheduledAt.UTC(),
		DurationMinutes: snap.DurationMinutes,
		PriceCents:      snap.PriceCents,
		Status:          string(domain.InitialStatus()),
		Notes:           notes,
	}

	if err := uc.Repo.Book(ctx, ap); err != nil {
		return nil, httperr.Storage("book slot", err)
	}

	uc.Cache.Invalidate(ctx, op.ID)

	t := target{ap: ap, operator: op, business: business}

	uc.Audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"slot_id": slotID, "price_cents": ap.PriceCents},
	})
	uc.Notify.Notify(notification.Booked(op.UserID, ap, t.when()))

	return ap, nil
}

func customerFor(scope access.Scope, requested uint) (uint, error) {
	switch scope.Role {
	case access.RoleUser:
		if scope.UserID == 0 {
			return 0, httperr.Forbidden("scope_forbidden")
		}
		if requested != 0 && requested != scope.UserID {
			return 0, httperr.Forbidden("book_for_other_forbidden")
		}
		return scope.UserID, nil
	case access.RoleOwner, access.RoleTenant, access.RoleOperator:
		if requested == 0 {
			return 0, httperr.Validation("user_id_required")
		}
		return requested, nil
	default:
		return 0, httperr.Forbidden("scope_forbidden")
	}
}
