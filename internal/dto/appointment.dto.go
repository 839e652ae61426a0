package dto

import (
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID         uint  `json:"id"`
	UserID     uint  `json:"user_id"`
	OperatorID uint  `json:"operator_id"`
	BusinessID uint  `json:"business_id"`
	ServiceID  uint  `json:"service_id"`
	SlotID     *uint `json:"slot_id"`

	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`

	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func Appointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		UserID:          ap.UserID,
		OperatorID:      ap.OperatorID,
		BusinessID:      ap.BusinessID,
		ServiceID:       ap.ServiceID,
		SlotID:          ap.SlotID,
		ScheduledAt:     ap.ScheduledAt,
		EndsAt:          ap.ScheduledAt.Add(time.Duration(ap.DurationMinutes) * time.Minute),
		DurationMinutes: ap.DurationMinutes,
		PriceCents:      ap.PriceCents,
		Status:          ap.Status,
		Notes:           ap.Notes,
		CancelledAt:     ap.CancelledAt,
		CompletedAt:     ap.CompletedAt,
		CreatedAt:       ap.CreatedAt,
	}
}

func Appointments(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, Appointment(&list[i]))
	}
	return out
}
