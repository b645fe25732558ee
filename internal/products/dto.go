package products

import (
	"time"

	"github.com/dmcneil/catalog-api/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the scalar wire shape of a product, used by single-record
// reads and mutations.
type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductAggregateDTO extends the scalar fields with the product's distinct
// category names and image URLs.
type ProductAggregateDTO struct {
	ProductDTO
	Categories []string `json:"categories"`
	Images     []string `json:"images"`
}

// CreateProductInput holds the validated payload to create a product.
// Category names that do not resolve to an existing category are skipped.
type CreateProductInput struct {
	Name        string          `json:"name" form:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price" validate:"required"`
	Quantity    int             `json:"quantity" form:"quantity" validate:"gte=0"`
	Categories  []string        `json:"categories" form:"categories"`
	ImageURLs   []string        `json:"image_urls" form:"image_urls" validate:"dive,url"`
}

// UpdateProductInput holds optional mutation values. Nil fields keep the
// stored value; a supplied Categories or ImageURLs slice replaces the
// product's full set.
type UpdateProductInput struct {
	Name        *string          `json:"name" form:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Quantity    *int             `json:"quantity" form:"quantity" validate:"omitempty,gte=0"`
	Categories  *[]string        `json:"categories" form:"categories"`
	ImageURLs   *[]string        `json:"image_urls" form:"image_urls" validate:"omitempty,dive,url"`
}

// NewProductDTO maps a persisted product to its scalar DTO.
func NewProductDTO(m *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
