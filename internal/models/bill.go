package models

import "time"

// Bill - Tamamlanan siparişten kesilen adisyon. Tutarlar ve kalemler
// sipariş tamamlandığı andaki halleriyle kopyalanır (snapshot).
type Bill struct {
	ID          uint   `gorm:"primaryKey"`
	CafeID      uint   `gorm:"index;not null"`
	OrderID     uint   `gorm:"uniqueIndex;not null"` // Bir siparişin en fazla bir adisyonu olur
	Order       Order
	ReceiptNo   string `gorm:"size:36;uniqueIndex;not null"` // Fiş numarası (uuid)
	TableNumber int    `gorm:"not null"`

	Subtotal      float64        `gorm:"not null"`
	Tax           float64        `gorm:"not null"`
	Total         float64        `gorm:"not null"`
	PaymentStatus PaymentStatus  `gorm:"size:20;not null;default:pending"` // pending | paid
	PaymentMethod *PaymentMethod `gorm:"size:20"`

	CreatedAt time.Time
	PaidAt    *time.Time

	Items []BillItem `gorm:"foreignKey:BillID"`
}

type BillItem struct {
	ID           uint    `gorm:"primaryKey"`
	BillID       uint    `gorm:"index;not null"`
	MenuItemName string  `gorm:"size:100;not null"`
	Quantity     int     `gorm:"not null"`
	Price        float64 `gorm:"not null"`
}
