package models

import "github.com/shopspring/decimal"

type Product struct {
	Base
	Title       string              `gorm:"size:200;not null" json:"title"`
	Slug        string              `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Excerpt     string              `gorm:"size:300" json:"excerpt"`
	Image       string              `gorm:"size:255" json:"image"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.NullDecimal `gorm:"type:numeric(10,0)" json:"price"` // VND, no minor units
}

func (p *Product) SlugValue() string { return p.Slug }

func (p *Product) String() string { return p.Title }

// PriceOrZero is the unit price used for totals; unpriced products count as 0.
func (p *Product) PriceOrZero() decimal.Decimal {
	if p == nil || !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}
