package models

import "time"

type ScheduleSlot struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OperatorID uint `gorm:"uniqueIndex:idx_slot_operator_date_start;not null" json:"operator_id"`

	Date      string `gorm:"size:10;uniqueIndex:idx_slot_operator_date_start;not null" json:"date"`
	StartTime string `gorm:"size:5;uniqueIndex:idx_slot_operator_date_start;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Status    string `gorm:"size:20;index;not null;default:'AVAILABLE'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
