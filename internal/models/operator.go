package models

import "time"

// Operator is the professional whose calendar owns rules and slots.
// TenantID is denormalized from the business.
type Operator struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`
	TenantID   uint `gorm:"index;not null" json:"tenant_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
