package availability

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type Repository interface {
	// FindOverlapping returns the first active rule of the operator on the
	// same weekday intersecting [start, end), ignoring excludeID, or nil.
	FindOverlapping(
		ctx context.Context,
		operatorID uint,
		dayOfWeek int,
		start string,
		end string,
		excludeID *uint,
	) (*models.AvailabilityRule, error)

	CreateRule(ctx context.Context, rule *models.AvailabilityRule) error

	GetRule(ctx context.Context, id uint) (*models.AvailabilityRule, error)

	// UpdateRuleIfUnchanged writes next's window and active flag only while
	// the stored row still matches current, and reports whether it did.
	UpdateRuleIfUnchanged(ctx context.Context, current, next models.AvailabilityRule) (bool, error)

	// WithOperatorLock runs fn in one transaction holding the operator row
	// lock, so overlap checks and writes on that calendar are serialized.
	WithOperatorLock(ctx context.Context, operatorID uint, fn func(tx Repository) error) error

	// DeactivateRule flips active to false only if it is still true and
	// reports whether a row changed.
	DeactivateRule(ctx context.Context, id uint) (bool, error)

	ListRules(ctx context.Context, operatorID uint, activeOnly bool) ([]models.AvailabilityRule, error)
}
