// internal/models/quote.go
package models

import (
	"github.com/shopspring/decimal"
)

// Quote is frozen at creation: Total is the sum of every line's price * quantity.
type Quote struct {
	BaseModel
	Customer string          `json:"customer" gorm:"size:255"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`

	// Relationships
	Items []QuoteItem `json:"items,omitempty" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuoteItem is one priced line of a quote.
//
// Order restarts at zero for every expanded kit, so it is not unique within a
// quote. Sequence is the emission index of the line and breaks ties.
type QuoteItem struct {
	BaseModel
	QuoteID        uint    `json:"quote_id" gorm:"not null;index"`
	ProductID      uint    `json:"product_id" gorm:"not null;index"`
	Quantity       int     `json:"quantity" gorm:"not null"`
	Color          *string `json:"color" gorm:"size:100"`
	Order          int     `json:"order" gorm:"column:line_order;not null"`
	Sequence       int     `json:"-" gorm:"not null"`
	IsKitComponent bool    `json:"is_kit_component" gorm:"default:false"`

	// Relationships
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
