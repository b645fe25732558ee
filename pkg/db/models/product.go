package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog listing. Category links and images hang off
// the product via join rows rather than embedded columns.
type Product struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null;default:0"`
	Categories  []Category      `gorm:"many2many:category_products;joinForeignKey:ProductID;joinReferences:CategoryID"`
	Images      []Image         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
