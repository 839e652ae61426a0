package availability

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateRuleInput struct {
	OperatorID uint
	DayOfWeek  int
	StartTime  string
	EndTime    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateRule struct {
	repo      domain.Repository
	operators access.OperatorLookup
	audit     *audit.Dispatcher
}

func NewCreateRule(
	repo domain.Repository,
	operators access.OperatorLookup,
	audit *audit.Dispatcher,
) *CreateRule {
	return &CreateRule{
		repo:      repo,
		operators: operators,
		audit:     audit,
	}
}

func (uc *CreateRule) Execute(
	ctx context.Context,
	scope access.Scope,
	in CreateRuleInput,
) (*models.AvailabilityRule, error) {

	op, err := access.ResolveOperator(ctx, uc.operators, in.OperatorID, scope, true)
	if err != nil {
		return nil, err
	}

	w, err := domain.ParseWindow(in.DayOfWeek, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	rule := &models.AvailabilityRule{
		OperatorID: op.ID,
		DayOfWeek:  w.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Active:     true,
	}

	err = uc.repo.WithOperatorLock(ctx, op.ID, func(tx domain.Repository) error {
		if err := checkOverlap(ctx, tx, op.ID, w, in.StartTime, in.EndTime, nil); err != nil {
			return err
		}
		if err := tx.CreateRule(ctx, rule); err != nil {
			return httperr.Storage("create rule", err)
		}
		return nil
	})
	if err != nil {
		return nil, httperr.Storage("create rule", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: op.BusinessID,
		UserID:     userRef(scope),
		Action:     "availability_rule_created",
		Entity:     "availability_rule",
		EntityID:   &rule.ID,
	})

	return rule, nil
}

func checkOverlap(
	ctx context.Context,
	repo domain.Repository,
	operatorID uint,
	w domain.Window,
	start string,
	end string,
	excludeID *uint,
) error {

	found, err := repo.FindOverlapping(ctx, operatorID, w.DayOfWeek, start, end, excludeID)
	if err != nil {
		return httperr.Storage("find overlapping rule", err)
	}
	if found != nil {
		return httperr.Conflict("rule_overlap")
	}
	return nil
}

func userRef(scope access.Scope) *uint {
	if scope.UserID == 0 {
		return nil
	}
	id := scope.UserID
	return &id
}
