package models

import (
	"time"
)

// Order status values. Status is stored as free text and overwritten as-is;
// there is no transition validation between these values.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CustomerID string      `json:"customer_id"`
	Customer   Customer    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderDate  time.Time   `json:"order_date"`
	Status     string      `json:"status"`
	OrderItems []OrderItem `json:"order_items" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderItem snapshots a product at order time. Price is the unit price the
// order was placed with and never tracks later catalog changes.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
