package models

import "time"

// AvailabilityRule is one recurring weekly window. Rules are never hard-deleted.
type AvailabilityRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OperatorID uint `gorm:"index:idx_rule_operator_day;not null" json:"operator_id"`

	DayOfWeek int    `gorm:"index:idx_rule_operator_day;not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
