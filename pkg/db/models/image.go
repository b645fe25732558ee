package models

import "time"

// Image stores one URL attached to a product.
type Image struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	URL       string    `gorm:"column:url;not null"`
	ProductID uint      `gorm:"column:product_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
