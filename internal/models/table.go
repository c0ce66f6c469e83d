package models

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableInactive  TableStatus = "inactive"
)

type Table struct {
	ID       uint `gorm:"primaryKey"`
	CafeID   uint `gorm:"uniqueIndex:idx_cafe_table_number;not null"`
	Cafe     Cafe
	Number   int         `gorm:"uniqueIndex:idx_cafe_table_number;not null"` // Kafe içinde benzersiz masa numarası
	Capacity int         `gorm:"not null"`
	Status   TableStatus `gorm:"size:20;not null;default:available"`

	// Bir masada aynı anda en fazla bir aktif sipariş olur
	CurrentOrderID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
