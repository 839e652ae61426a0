package slot

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

type ListSlots struct {
	repo  domain.Repository
	dir   Directory
	cache cache.SlotCache
}

func NewListSlots(repo domain.Repository, dir Directory, cache cache.SlotCache) *ListSlots {
	return &ListSlots{repo: repo, dir: dir, cache: cache}
}

// Execute lists an operator's slots. Staff go through the operator scope
// check; customers may browse AVAILABLE slots of any operator.
func (uc *ListSlots) Execute(
	ctx context.Context,
	scope access.Scope,
	operatorID uint,
	f domain.ListFilter,
) ([]models.ScheduleSlot, error) {

	if err := validateFilter(f); err != nil {
		return nil, err
	}

	if scope.Role == access.RoleUser {
		if f.Status != "" && f.Status != domain.StatusAvailable {
			return nil, httperr.Forbidden("slot_status_forbidden")
		}
		f.Status = domain.StatusAvailable

		op, err := uc.dir.GetOperator(ctx, operatorID)
		if err != nil {
			return nil, httperr.FromLookup(err, "operator_not_found", "get operator")
		}
		operatorID = op.ID
	} else {
		op, err := access.ResolveOperator(ctx, uc.dir, operatorID, scope, true)
		if err != nil {
			return nil, err
		}
		operatorID = op.ID
	}

	cached, version, ok := uc.cache.Get(ctx, operatorID, f)
	if ok {
		return cached, nil
	}

	slots, err := uc.repo.ListSlots(ctx, operatorID, f)
	if err != nil {
		return nil, httperr.Storage("list slots", err)
	}

	uc.cache.Set(ctx, operatorID, f, version, slots)
	return slots, nil
}

func validateFilter(f domain.ListFilter) error {
	if f.DateFrom != "" {
		if _, err := timezone.ParseDate(f.DateFrom); err != nil {
			return httperr.Validation("invalid_date_from")
		}
	}
	if f.DateTo != "" {
		if _, err := timezone.ParseDate(f.DateTo); err != nil {
			return httperr.Validation("invalid_date_to")
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateTo < f.DateFrom {
		return httperr.Validation("date_to_before_date_from")
	}
	if f.Status != "" {
		if _, ok := domain.ParseStatus(string(f.Status)); !ok {
			return httperr.Validation("invalid_slot_status")
		}
	}
	return nil
}
