package slot

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

type DeleteSlot struct {
	repo  domain.Repository
	dir   Directory
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewDeleteSlot(
	repo domain.Repository,
	dir Directory,
	cache cache.SlotCache,
	audit *audit.Dispatcher,
) *DeleteSlot {
	return &DeleteSlot{repo: repo, dir: dir, cache: cache, audit: audit}
}

// Execute hard-deletes a slot that is not BOOKED (TENANT / OWNER only).
func (uc *DeleteSlot) Execute(
	ctx context.Context,
	scope access.Scope,
	slotID uint,
) error {

	s, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return httperr.FromLookup(err, "slot_not_found", "get slot")
	}

	op, err := access.ResolveOperator(ctx, uc.dir, s.OperatorID, scope, false)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(domain.Status(s.Status)); err != nil {
		return err
	}

	deleted, err := uc.repo.DeleteUnbooked(ctx, s.ID)
	if err != nil {
		return httperr.Storage("delete slot", err)
	}
	if !deleted {
		return httperr.Conflict("slot_booked")
	}

	uc.cache.Invalidate(ctx, op.ID)

	uc.audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "slot_deleted",
		Entity:     "schedule_slot",
		EntityID:   &s.ID,
	})

	return nil
}
