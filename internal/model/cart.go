package model

import "github.com/shopspring/decimal"

// CartItem is one cart row, keyed by product. At most one row exists per
// product; quantity is always at least 1 (a row decremented to zero is
// deleted instead of stored).
type CartItem struct {
	ProductID uint    `json:"product_id" gorm:"primaryKey"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Product   Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name gorm would otherwise pluralize oddly.
func (CartItem) TableName() string {
	return "cart_items"
}

// CartItemDetails is the cart row joined with its product. It is computed on
// every read and never persisted.
type CartItemDetails struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
}
