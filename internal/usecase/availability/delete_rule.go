package availability

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

// DeleteRule deactivates a rule. Deleting an inactive rule is reported,
// not ignored.
type DeleteRule struct {
	repo      domain.Repository
	operators access.OperatorLookup
	audit     *audit.Dispatcher
}

func NewDeleteRule(
	repo domain.Repository,
	operators access.OperatorLookup,
	audit *audit.Dispatcher,
) *DeleteRule {
	return &DeleteRule{
		repo:      repo,
		operators: operators,
		audit:     audit,
	}
}

func (uc *DeleteRule) Execute(
	ctx context.Context,
	scope access.Scope,
	ruleID uint,
) error {

	rule, err := uc.repo.GetRule(ctx, ruleID)
	if err != nil {
		return httperr.FromLookup(err, "rule_not_found", "get rule")
	}

	op, err := access.ResolveOperator(ctx, uc.operators, rule.OperatorID, scope, true)
	if err != nil {
		return err
	}

	if !rule.Active {
		return httperr.AlreadyInactive("rule_already_inactive")
	}

	changed, err := uc.repo.DeactivateRule(ctx, rule.ID)
	if err != nil {
		return httperr.Storage("deactivate rule", err)
	}
	if !changed {
		return httperr.AlreadyInactive("rule_already_inactive")
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "availability_rule_deleted",
		Entity:     "availability_rule",
		EntityID:   &rule.ID,
	})

	return nil
}
