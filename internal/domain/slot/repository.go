package slot

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ListFilter struct {
	DateFrom string
	DateTo   string
	Status   Status
}

type Repository interface {
	ListActiveRules(ctx context.Context, operatorID uint) ([]models.AvailabilityRule, error)

	// ListExisting loads the operator's slots on the given dates in one query.
	ListExisting(ctx context.Context, operatorID uint, dates []string) ([]models.ScheduleSlot, error)

	// InsertIgnoringConflicts inserts in one transaction, skipping rows that
	// collide on (operator_id, date, start_time), and returns rows inserted.
	InsertIgnoringConflicts(ctx context.Context, slots []models.ScheduleSlot) (int64, error)

	GetSlot(ctx context.Context, id uint) (*models.ScheduleSlot, error)

	ListSlots(ctx context.Context, operatorID uint, f ListFilter) ([]models.ScheduleSlot, error)

	// CompareAndSetStatus writes to only if the stored status is still from.
	CompareAndSetStatus(ctx context.Context, id uint, from, to Status) (bool, error)

	// DeleteUnbooked hard-deletes the slot unless it is BOOKED.
	DeleteUnbooked(ctx context.Context, id uint) (bool, error)
}
