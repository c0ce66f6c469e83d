package models

import "time"

type OrderStatus string

const (
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentBilled  PaymentStatus = "billed" // Adisyon kesildi, ödeme bekliyor
	PaymentPaid    PaymentStatus = "paid"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

type Order struct {
	ID          uint `gorm:"primaryKey"`
	CafeID      uint `gorm:"index;not null"`
	TableID     uint `gorm:"index;not null"`
	Table       Table
	TableNumber int `gorm:"not null"` // Masa numarası (denormalize)

	Status        OrderStatus    `gorm:"size:20;not null;default:active"`
	Subtotal      float64        `gorm:"not null"`
	Tax           float64        `gorm:"not null"`
	Total         float64        `gorm:"not null"`
	PaymentStatus PaymentStatus  `gorm:"size:20;not null;default:pending"`
	PaymentMethod *PaymentMethod `gorm:"size:20"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

type OrderItemStatus string

const (
	ItemPending   OrderItemStatus = "pending"
	ItemPreparing OrderItemStatus = "preparing"
	ItemReady     OrderItemStatus = "ready"
	ItemServed    OrderItemStatus = "served"
	ItemCancelled OrderItemStatus = "cancelled"
)

type OrderItem struct {
	ID           uint            `gorm:"primaryKey"`
	OrderID      uint            `gorm:"index;not null"`
	MenuItemID   uint            `gorm:"index;not null"`
	MenuItemName string          `gorm:"size:100;not null"` // Ürün adı (sipariş anındaki, denormalize)
	Quantity     int             `gorm:"not null"`
	Price        float64         `gorm:"not null"` // Birim fiyat (sipariş anındaki)
	Notes        string          `gorm:"size:255"`
	Status       OrderItemStatus `gorm:"size:20;not null;default:pending"`
	CreatedAt    time.Time
}
