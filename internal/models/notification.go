package models

import "time"

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Kind          string `gorm:"size:50;not null" json:"kind"`
	Title         string `gorm:"size:120;not null" json:"title"`
	Body          string `gorm:"size:500" json:"body"`
	AppointmentID *uint  `json:"appointment_id"`
	Read          bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
