package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Placed, not yet handled
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the shop
	OrderStatusShipping  OrderStatus = "shipping"  // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received it
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipping,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusShipping:
		return "Shipping"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Processing"
	}
}

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	OrderNumber string          `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,0);not null;default:0" json:"total_amount"`
	Status      OrderStatus     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Note        string          `gorm:"type:text" json:"note"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem keeps a title snapshot so the line survives product deletion.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	ProductID    *uint           `gorm:"index" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	ProductTitle string          `gorm:"size:200;not null" json:"product_title"`
	Quantity     int             `gorm:"not null;default:1;check:chk_order_items_quantity,quantity >= 1" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:numeric(10,0);not null" json:"price"`
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GenerateOrderNumber returns ORD-<year>-<100..999>. Two calls in the same
// year can collide; uniqueness is enforced by the orders table.
func GenerateOrderNumber(now time.Time, intn func(int) int) string {
	return fmt.Sprintf("ORD-%d-%03d", now.Year(), 100+intn(900))
}
