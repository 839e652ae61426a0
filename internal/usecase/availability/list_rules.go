package availability

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ListRules struct {
	repo      domain.Repository
	operators access.OperatorLookup
}

func NewListRules(repo domain.Repository, operators access.OperatorLookup) *ListRules {
	return &ListRules{repo: repo, operators: operators}
}

func (uc *ListRules) Execute(
	ctx context.Context,
	scope access.Scope,
	operatorID uint,
	activeOnly bool,
) ([]models.AvailabilityRule, error) {

	op, err := access.ResolveOperator(ctx, uc.operators, operatorID, scope, true)
	if err != nil {
		return nil, err
	}

	rules, err := uc.repo.ListRules(ctx, op.ID, activeOnly)
	if err != nil {
		return nil, httperr.Storage("list rules", err)
	}
	return rules, nil
}
