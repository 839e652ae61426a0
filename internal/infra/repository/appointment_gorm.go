package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	*DirectoryGormRepository
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		DirectoryGormRepository: NewDirectoryGormRepository(db),
		db:                      db,
	}
}

func (r *AppointmentGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.ScheduleSlot, error) {

	var s models.ScheduleSlot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) Book(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.SlotID == nil {
		return httperr.Validation("slot_required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := casSlotStatus(tx, *ap.SlotID, slot.StatusAvailable, slot.StatusBooked)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.Conflict("slot_not_available")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Cancel
// --------------------------------------------------

func (r *AppointmentGormRepository) Cancel(
	ctx context.Context,
	id uint,
	at time.Time,
	notes string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Appointment{}).
			Where("id = ? AND status IN ?", id, domain.Cancel.FromStrings()).
			Updates(map[string]any{
				"status":       string(domain.StatusCancelled),
				"cancelled_at": at,
				"notes":        notes,
			})

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.Conflict("invalid_status_transition")
		}

		var ap models.Appointment
		if err := tx.Select("id", "slot_id").First(&ap, id).Error; err != nil {
			return err
		}

		if ap.SlotID == nil {
			return nil
		}

		// A slot that is no longer BOOKED is left alone.
		_, err := casSlotStatus(tx, *ap.SlotID, slot.StatusBooked, slot.StatusAvailable)
		return err
	})
}

// --------------------------------------------------
// Other transitions
// --------------------------------------------------

func (r *AppointmentGormRepository) Transition(
	ctx context.Context,
	id uint,
	t domain.Transition,
	at time.Time,
) (bool, error) {

	updates := map[string]any{"status": string(t.To)}
	if t.To == domain.StatusCompleted {
		updates["completed_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", id, t.FromStrings()).
		Updates(updates)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	switch {
	case f.Restriction.UserID != nil:
		q = q.Where("user_id = ?", *f.Restriction.UserID)
	case f.Restriction.OperatorUserID != nil:
		q = q.Where(
			"operator_id IN (?)",
			r.db.Model(&models.Operator{}).Select("id").Where("user_id = ?", *f.Restriction.OperatorUserID),
		)
	case f.Restriction.TenantID != nil:
		q = q.Where(
			"business_id IN (?)",
			r.db.Model(&models.Business{}).Select("id").Where("tenant_id = ?", *f.Restriction.TenantID),
		)
	}

	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.OperatorID != 0 {
		q = q.Where("operator_id = ?", f.OperatorID)
	}
	if f.BusinessID != 0 {
		q = q.Where("business_id = ?", f.BusinessID)
	}
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("scheduled_at < ?", *f.To)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)

	var list []models.Appointment
	if err := q.
		Order("scheduled_at ASC").
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
