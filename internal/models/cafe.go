package models

import "time"

type Cafe struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	Logo      string `gorm:"size:255"` // Opsiyonel logo URL'i
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User
}
