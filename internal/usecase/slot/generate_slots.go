package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type GenerateSlotsInput struct {
	OperatorID      uint
	DateFrom        string
	DateTo          string
	DurationMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type GenerateSlots struct {
	repo  domain.Repository
	dir   Directory
	cache cache.SlotCache
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewGenerateSlots(
	repo domain.Repository,
	dir Directory,
	cache cache.SlotCache,
	audit *audit.Dispatcher,
) *GenerateSlots {
	return &GenerateSlots{
		repo:  repo,
		dir:   dir,
		cache: cache,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute returns how many slots were actually inserted; zero is a valid
// outcome when the range is already generated.
func (uc *GenerateSlots) Execute(
	ctx context.Context,
	scope access.Scope,
	in GenerateSlotsInput,
) (int64, error) {

	// --------------------------------------------------
	// Access (TENANT / OWNER only)
	// --------------------------------------------------
	op, err := access.ResolveOperator(ctx, uc.dir, in.OperatorID, scope, false)
	if err != nil {
		return 0, err
	}

	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return 0, err
	}

	// --------------------------------------------------
	// Range against today in the business zone
	// --------------------------------------------------
	business, err := uc.dir.GetBusiness(ctx, op.BusinessID)
	if err != nil {
		return 0, httperr.FromLookup(err, "business_not_found", "get business")
	}

	today := timezone.TodayIn(uc.now(), business.Timezone)

	rng, err := domain.ParseRange(in.DateFrom, in.DateTo, today)
	if err != nil {
		return 0, err
	}

	// --------------------------------------------------
	// Rules
	// --------------------------------------------------
	rules, err := uc.repo.ListActiveRules(ctx, op.ID)
	if err != nil {
		return 0, httperr.Storage("list active rules", err)
	}

	byDay := domain.GroupByDay(rules)
	if len(byDay) == 0 {
		return 0, httperr.NotFound("no_active_rules")
	}

	dates := rng.Dates(byDay)
	if len(dates) == 0 {
		return 0, nil
	}

	// --------------------------------------------------
	// Expand, skipping what already exists
	// --------------------------------------------------
	existing, err := uc.repo.ListExisting(ctx, op.ID, dates)
	if err != nil {
		return 0, httperr.Storage("list existing slots", err)
	}

	fresh := domain.Expand(op.ID, dates, byDay, in.DurationMinutes, domain.IndexExisting(existing))
	if len(fresh) == 0 {
		return 0, nil
	}

	inserted, err := uc.repo.InsertIgnoringConflicts(ctx, fresh)
	if err != nil {
		return 0, httperr.Storage("insert slots", err)
	}

	if inserted > 0 {
		uc.cache.Invalidate(ctx, op.ID)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "slots_generated",
		Entity:     "operator",
		EntityID:   &op.ID,
		Metadata: map[string]any{
			"date_from": in.DateFrom,
			"date_to":   in.DateTo,
			"duration":  in.DurationMinutes,
			"inserted":  inserted,
		},
	})

	return inserted, nil
}
