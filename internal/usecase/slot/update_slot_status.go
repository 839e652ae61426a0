package slot

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// UpdateSlotStatus toggles AVAILABLE <-> BLOCKED.
type UpdateSlotStatus struct {
	repo  domain.Repository
	dir   Directory
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewUpdateSlotStatus(
	repo domain.Repository,
	dir Directory,
	cache cache.SlotCache,
	audit *audit.Dispatcher,
) *UpdateSlotStatus {
	return &UpdateSlotStatus{repo: repo, dir: dir, cache: cache, audit: audit}
}

func (uc *UpdateSlotStatus) Execute(
	ctx context.Context,
	scope access.Scope,
	slotID uint,
	target domain.Status,
) (*models.ScheduleSlot, error) {

	s, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, httperr.FromLookup(err, "slot_not_found", "get slot")
	}

	op, err := access.ResolveOperator(ctx, uc.dir, s.OperatorID, scope, true)
	if err != nil {
		return nil, err
	}

	current := domain.Status(s.Status)
	if err := domain.CheckManualChange(current, target); err != nil {
		return nil, err
	}

	ok, err := uc.repo.CompareAndSetStatus(ctx, s.ID, current, target)
	if err != nil {
		return nil, httperr.Storage("update slot status", err)
	}
	if !ok {
		return nil, httperr.Conflict("slot_status_changed")
	}

	uc.cache.Invalidate(ctx, op.ID)

	s.Status = string(target)

	uc.audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "slot_status_updated",
		Entity:     "schedule_slot",
		EntityID:   &s.ID,
		Metadata:   map[string]string{"from": string(current), "to": string(target)},
	})

	return s, nil
}
