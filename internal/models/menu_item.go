package models

import "time"

type MenuItem struct {
	ID          uint `gorm:"primaryKey"`
	CafeID      uint `gorm:"index;not null"`
	Cafe        Cafe
	CategoryID  uint `gorm:"index;not null"`
	Category    Category
	Name        string  `gorm:"size:100;not null"`
	Description string  `gorm:"size:255"`
	Price       float64 `gorm:"not null"`
	Image       string  `gorm:"size:255"` // Opsiyonel görsel URL'i
	Available   bool    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
