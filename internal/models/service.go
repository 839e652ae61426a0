package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	Description     string `gorm:"size:255" json:"description"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	PriceCents      int64  `gorm:"not null" json:"price_cents"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OperatorService overrides catalog duration/price for one operator.
// Nil fields fall back to the service values.
type OperatorService struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OperatorID uint `gorm:"uniqueIndex:idx_operator_service;not null" json:"operator_id"`
	ServiceID  uint `gorm:"uniqueIndex:idx_operator_service;not null" json:"service_id"`

	DurationMinutes *int   `json:"duration_minutes"`
	PriceCents      *int64 `json:"price_cents"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
