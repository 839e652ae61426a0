package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     uint  `gorm:"index;not null" json:"user_id"`
	OperatorID uint  `gorm:"index;not null" json:"operator_id"`
	BusinessID uint  `gorm:"index;not null" json:"business_id"`
	ServiceID  uint  `gorm:"not null" json:"service_id"`
	SlotID     *uint `gorm:"index" json:"slot_id"`

	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`

	// Snapshotted at booking time, never recomputed from the catalog.
	DurationMinutes int   `gorm:"not null" json:"duration_minutes"`
	PriceCents      int64 `gorm:"not null" json:"price_cents"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Notes       string     `gorm:"size:500" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
