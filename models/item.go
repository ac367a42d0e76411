package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Item represents a stocked product.
// Every item references exactly one category.
type Item struct {
	ID          uint            `gorm:"primaryKey"`
	ProductName string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	CategoryID  uint            `gorm:"not null;index"`
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (i *Item) TableName() string {
	return "items"
}

// URL returns the path of the item detail page.
func (i Item) URL() string {
	return "/inventory/item/" + formatID(i.ID)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
