package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// FindOverlapping compares "HH:MM" strings, which order the same way as
// the times they encode.
func (r *AvailabilityGormRepository) FindOverlapping(
	ctx context.Context,
	operatorID uint,
	dayOfWeek int,
	start string,
	end string,
	excludeID *uint,
) (*models.AvailabilityRule, error) {

	q := r.db.WithContext(ctx).
		Where(
			"operator_id = ? AND day_of_week = ? AND active = ? AND start_time < ? AND end_time > ?",
			operatorID, dayOfWeek, true, end, start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var rule models.AvailabilityRule
	err := q.Order("start_time ASC").First(&rule).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AvailabilityGormRepository) CreateRule(
	ctx context.Context,
	rule *models.AvailabilityRule,
) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *AvailabilityGormRepository) GetRule(
	ctx context.Context,
	id uint,
) (*models.AvailabilityRule, error) {

	var rule models.AvailabilityRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AvailabilityGormRepository) UpdateRuleIfUnchanged(
	ctx context.Context,
	current models.AvailabilityRule,
	next models.AvailabilityRule,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.AvailabilityRule{}).
		Where("id = ? AND active = ? AND day_of_week = ? AND start_time = ? AND end_time = ?",
			current.ID, current.Active, current.DayOfWeek, current.StartTime, current.EndTime).
		Updates(map[string]any{
			"day_of_week": next.DayOfWeek,
			"start_time":  next.StartTime,
			"end_time":    next.EndTime,
			"active":      next.Active,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AvailabilityGormRepository) WithOperatorLock(
	ctx context.Context,
	operatorID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var op models.Operator
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&op, operatorID).Error; err != nil {
			return err
		}
		return fn(&AvailabilityGormRepository{db: tx})
	})
}

func (r *AvailabilityGormRepository) DeactivateRule(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.AvailabilityRule{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AvailabilityGormRepository) ListRules(
	ctx context.Context,
	operatorID uint,
	activeOnly bool,
) ([]models.AvailabilityRule, error) {

	q := r.db.WithContext(ctx).Where("operator_id = ?", operatorID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rules []models.AvailabilityRule
	if err := q.
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
