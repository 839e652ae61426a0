package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ListAppointmentsInput struct {
	Status     string
	OperatorID uint
	BusinessID uint
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

type ListAppointmentsResult struct {
	Items []models.Appointment
	Total int64
	Page  int
	Limit int
}

// ======================================================
// USE CASE
// ======================================================

type ListAppointments struct {
	Deps
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{Deps: deps.withDefaults()}
}

// Execute lists what scope may see. Date filters are calendar days in the
// filtered business's zone, or UTC when no business can be inferred.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	scope access.Scope,
	in ListAppointmentsInput,
) (*ListAppointmentsResult, error) {

	restriction, err := access.RestrictionFor(scope)
	if err != nil {
		return nil, err
	}

	f := domain.ListFilter{
		Restriction: restriction,
		OperatorID:  in.OperatorID,
		BusinessID:  in.BusinessID,
	}

	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, httperr.Validation("invalid_status")
		}
		f.Status = st
	}

	if in.DateFrom != "" || in.DateTo != "" {
		loc, err := uc.locationFor(ctx, in)
		if err != nil {
			return nil, err
		}

		if in.DateFrom != "" {
			d, err := time.ParseInLocation(timezone.DateLayout, in.DateFrom, loc)
			if err != nil {
				return nil, httperr.Validation("invalid_date_from")
			}
			d = d.UTC()
			f.From = &d
		}
		if in.DateTo != "" {
			d, err := time.ParseInLocation(timezone.DateLayout, in.DateTo, loc)
			if err != nil {
				return nil, httperr.Validation("invalid_date_to")
			}
			end := d.AddDate(0, 0, 1).UTC()
			f.To = &end
		}
		if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
			return nil, httperr.Validation("date_to_before_date_from")
		}
	}

	page, limit := domain.NormalizePage(in.Page, in.Limit)
	f.Page, f.Limit = page, limit

	items, total, err := uc.Repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Storage("list appointments", err)
	}

	return &ListAppointmentsResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (uc *ListAppointments) locationFor(ctx context.Context, in ListAppointmentsInput) (*time.Location, error) {
	businessID := in.BusinessID

	if businessID == 0 && in.OperatorID != 0 {
		op, err := uc.Repo.GetOperator(ctx, in.OperatorID)
		if err != nil {
			return nil, httperr.FromLookup(err, "operator_not_found", "get operator")
		}
		businessID = op.BusinessID
	}

	if businessID == 0 {
		return time.UTC, nil
	}

	b, err := uc.Repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, httperr.FromLookup(err, "business_not_found", "get business")
	}
	return timezone.Location(b.Timezone), nil
}
