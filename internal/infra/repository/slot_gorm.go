package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

const slotInsertBatchSize = 500

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

// --------------------------------------------------
// Generation
// --------------------------------------------------

func (r *SlotGormRepository) ListActiveRules(
	ctx context.Context,
	operatorID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("operator_id = ? AND active = ?", operatorID, true).
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *SlotGormRepository) ListExisting(
	ctx context.Context,
	operatorID uint,
	dates []string,
) ([]models.ScheduleSlot, error) {

	if len(dates) == 0 {
		return nil, nil
	}

	var slots []models.ScheduleSlot
	if err := r.db.WithContext(ctx).
		Select("id", "date", "start_time", "end_time").
		Where("operator_id = ? AND date IN ?", operatorID, dates).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// InsertIgnoringConflicts relies on the (operator_id, date, start_time)
// unique index to drop rows a concurrent generation already inserted.
func (r *SlotGormRepository) InsertIgnoringConflicts(
	ctx context.Context,
	slots []models.ScheduleSlot,
) (int64, error) {

	if len(slots) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(slots); start += slotInsertBatchSize {
			end := start + slotInsertBatchSize
			if end > len(slots) {
				end = len(slots)
			}

			res := tx.
				Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "operator_id"},
						{Name: "date"},
						{Name: "start_time"},
					},
					DoNothing: true,
				}).
				Create(slots[start:end])

			if res.Error != nil {
				return res.Error
			}
			inserted += res.RowsAffected
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *SlotGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.ScheduleSlot, error) {

	var s models.ScheduleSlot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) ListSlots(
	ctx context.Context,
	operatorID uint,
	f domain.ListFilter,
) ([]models.ScheduleSlot, error) {

	q := r.db.WithContext(ctx).Where("operator_id = ?", operatorID)

	if f.DateFrom != "" {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("date <= ?", f.DateTo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var slots []models.ScheduleSlot
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Conditional writes
// --------------------------------------------------

func (r *SlotGormRepository) CompareAndSetStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
) (bool, error) {
	return casSlotStatus(r.db.WithContext(ctx), id, from, to)
}

func (r *SlotGormRepository) DeleteUnbooked(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, string(domain.StatusBooked)).
		Delete(&models.ScheduleSlot{})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// casSlotStatus is the single slot status write path. It is shared with the
// booking transaction so both use the same WHERE status = ? guard.
func casSlotStatus(db *gorm.DB, id uint, from, to domain.Status) (bool, error) {
	res := db.
		Model(&models.ScheduleSlot{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
