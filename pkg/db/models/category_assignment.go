package models

import "time"

// CategoryAssignment joins one product to one category.
type CategoryAssignment struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  uint      `gorm:"column:product_id;not null;index"`
	CategoryID uint      `gorm:"column:category_id;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical join table name.
func (CategoryAssignment) TableName() string {
	return "category_products"
}
