package models

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderLine is the immutable snapshot of one cart line at checkout time.
// UnitPrice is the price composed at that moment; later edits to the
// product's base price or option modifiers must not change it.
type OrderLine struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	OrderID     string    `json:"-" gorm:"type:varchar(36);index"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Selection   Selection `json:"selection" gorm:"serializer:json"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	LineTotal   int64     `json:"lineTotal"`
}

// Order represents a customer order. Amounts are in minor units.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID  string      `json:"customerId" gorm:"type:varchar(36);index"`
	Lines       []OrderLine `json:"lines" gorm:"foreignKey:OrderID"`
	TotalAmount int64       `json:"totalAmount"`
	ItemCount   int         `json:"itemCount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
