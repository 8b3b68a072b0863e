package models

import (
	"time"
)

// Order status values.
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// PaymentCashOnDelivery is the only supported payment method.
const PaymentCashOnDelivery = "Cash on Delivery"

// statusRank orders statuses into progression stages. Cancellation is
// handled separately and is reachable from any non-terminal stage.
var statusRank = map[string]int{
	StatusPending:    0,
	StatusPaid:       1,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusCompleted:  2,
	StatusDelivered:  3,
}

// OrderCustomer is the customer snapshot embedded in an order. It is copied
// from the checkout payload and never linked back to a user account.
type OrderCustomer struct {
	Name    string `gorm:"not null" json:"name"`
	Email   string `json:"email"`
	Phone   string `gorm:"not null" json:"phone"`
	Address string `gorm:"not null" json:"address"`
	Wilaya  int    `gorm:"not null" json:"Wilaya"` // region code, 1-58
}

// OrderItem is a line item carrying name/reference/price snapshots taken at
// checkout time. Later edits to the product record do not affect it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"-"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Name      string  `gorm:"not null" json:"name"`
	Reference string  `gorm:"not null" json:"reference"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Order represents a checkout transaction. Seq is a monotonically assigned
// sequence number backed by a unique index; OrderNumber is its
// human-readable form ("ORDER-<seq>").
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null" json:"orderNumber"`
	Seq           int           `gorm:"uniqueIndex;not null" json:"-"`
	Customer      OrderCustomer `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total         float64       `gorm:"not null" json:"total"`
	PaymentMethod string        `gorm:"not null;default:'Cash on Delivery'" json:"paymentMethod"`
	Status        string        `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminalStatus reports whether no further transitions are allowed from s.
func IsTerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order may move from status from to status
// to. Orders progress one stage at a time (pending -> paid/processing ->
// shipped/completed -> delivered); cancellation is allowed from any
// non-terminal status. Delivered and cancelled are terminal.
func CanTransition(from, to string) bool {
	if IsTerminalStatus(from) || !IsValidStatus(to) || from == to {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] == statusRank[from]+1
}
