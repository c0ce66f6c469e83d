package models

import "time"

type Category struct {
	ID          uint `gorm:"primaryKey"`
	CafeID      uint `gorm:"index;not null"`
	Cafe        Cafe
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
