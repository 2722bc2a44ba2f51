// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Kits bundle other products through KitComponents,
// which lists component product ids in their default quoting order.
type Product struct {
	BaseModel
	Name          string          `json:"name" gorm:"size:255;not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	HasColors     bool            `json:"has_colors" gorm:"default:false"`
	Colors        []string        `json:"colors" gorm:"type:text;serializer:json"`
	IsKit         bool            `json:"is_kit" gorm:"default:false;index"`
	KitComponents []uint          `json:"kit_components" gorm:"type:text;serializer:json"`
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	if p.Colors == nil {
		p.Colors = []string{}
	}
	if p.KitComponents == nil {
		p.KitComponents = []uint{}
	}
	return nil
}

// OffersColor reports whether color is one of the product's listed colors.
func (p *Product) OffersColor(color string) bool {
	if !p.HasColors {
		return false
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
