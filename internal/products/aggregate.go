package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// productJoinRow is one flat row of the products LEFT JOIN categories and
// images query. A product with two categories and three images yields six
// rows; the fold below collapses them.
type productJoinRow struct {
	ID           uint            `gorm:"column:id"`
	Name         string          `gorm:"column:name"`
	Description  string          `gorm:"column:description"`
	Price        decimal.Decimal `gorm:"column:price"`
	Quantity     int             `gorm:"column:quantity"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
	CategoryName *string         `gorm:"column:category_name"`
	ImageURL     *string         `gorm:"column:image_url"`
}

// foldProductRows groups flat join rows by product id and accumulates the
// distinct category names and image URLs per product. Products keep the order
// of their first-seen row, and so do names and URLs within a product. Products
// without categories or images come out with empty, non-nil sets.
func foldProductRows(rows []productJoinRow) []ProductAggregateDTO {
	out := make([]ProductAggregateDTO, 0)
	index := make(map[uint]int, len(rows))
	seenCategory := make(map[uint]map[string]struct{})
	seenImage := make(map[uint]map[string]struct{})

	for _, row := range rows {
		pos, ok := index[row.ID]
		if !ok {
			pos = len(out)
			index[row.ID] = pos
			out = append(out, ProductAggregateDTO{
				ProductDTO: ProductDTO{
					ID:          row.ID,
					Name:        row.Name,
					Description: row.Description,
					Price:       row.Price,
					Quantity:    row.Quantity,
					CreatedAt:   row.CreatedAt,
					UpdatedAt:   row.UpdatedAt,
				},
				Categories: make([]string, 0),
				Images:     make([]string, 0),
			})
			seenCategory[row.ID] = make(map[string]struct{})
			seenImage[row.ID] = make(map[string]struct{})
		}

		if row.CategoryName != nil {
			if _, dup := seenCategory[row.ID][*row.CategoryName]; !dup {
				seenCategory[row.ID][*row.CategoryName] = struct{}{}
				out[pos].Categories = append(out[pos].Categories, *row.CategoryName)
			}
		}
		if row.ImageURL != nil {
			if _, dup := seenImage[row.ID][*row.ImageURL]; !dup {
				seenImage[row.ID][*row.ImageURL] = struct{}{}
				out[pos].Images = append(out[pos].Images, *row.ImageURL)
			}
		}
	}

	return out
}
