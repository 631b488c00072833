package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart belongs to exactly one of a user or an anonymous session.
type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     *uint      `gorm:"uniqueIndex;check:chk_carts_single_owner,(user_id IS NULL) <> (session_key IS NULL)" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SessionKey *string    `gorm:"size:64;uniqueIndex" json:"session_key"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Cart) IsGuest() bool { return c.UserID == nil }

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int       `gorm:"not null;default:1;check:chk_cart_items_quantity,quantity >= 1" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Product.PriceOrZero().Mul(decimal.NewFromInt(int64(i.Quantity)))
}
