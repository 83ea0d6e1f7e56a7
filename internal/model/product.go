package model

import "github.com/shopspring/decimal"

// Product is a catalog entry. IDs are assigned by the server and are stable
// across cache refreshes, so they double as the cache's upsert key.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category     string          `json:"category" gorm:"size:255;index"`
	ImageURL     string          `json:"imageUrl" gorm:"size:512"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer" gorm:"size:255"`
	Distributor  string          `json:"distributor" gorm:"size:255"`
}
