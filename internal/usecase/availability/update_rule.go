package availability

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type UpdateRule struct {
	repo      domain.Repository
	operators access.OperatorLookup
	audit     *audit.Dispatcher
}

func NewUpdateRule(
	repo domain.Repository,
	operators access.OperatorLookup,
	audit *audit.Dispatcher,
) *UpdateRule {
	return &UpdateRule{
		repo:      repo,
		operators: operators,
		audit:     audit,
	}
}

func (uc *UpdateRule) Execute(
	ctx context.Context,
	scope access.Scope,
	ruleID uint,
	patch domain.RulePatch,
) (*models.AvailabilityRule, error) {

	current, err := uc.repo.GetRule(ctx, ruleID)
	if err != nil {
		return nil, httperr.FromLookup(err, "rule_not_found", "get rule")
	}

	op, err := access.ResolveOperator(ctx, uc.operators, current.OperatorID, scope, true)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return nil, httperr.Validation("empty_update")
	}

	next, w, err := domain.Merge(*current, patch)
	if err != nil {
		return nil, err
	}

	err = uc.repo.WithOperatorLock(ctx, op.ID, func(tx domain.Repository) error {
		if next.Active {
			if err := checkOverlap(ctx, tx, op.ID, w, next.StartTime, next.EndTime, &next.ID); err != nil {
				return err
			}
		}

		// A rule removed or edited since it was loaded is not overwritten.
		ok, err := tx.UpdateRuleIfUnchanged(ctx, *current, next)
		if err != nil {
			return httperr.Storage("update rule", err)
		}
		if !ok {
			return httperr.Conflict("rule_changed")
		}
		return nil
	})
	if err != nil {
		return nil, httperr.Storage("update rule", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "availability_rule_updated",
		Entity:     "availability_rule",
		EntityID:   &next.ID,
	})

	return &next, nil
}
