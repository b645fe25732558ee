package products

import (
	"context"

	"github.com/dmcneil/catalog-api/pkg/db/models"
	"gorm.io/gorm"
)

const productAggregateQuery = `
SELECT p.id,
       p.name,
       p.description,
       p.price,
       p.quantity,
       p.created_at,
       p.updated_at,
       c.name AS category_name,
       i.url AS image_url
FROM products p
LEFT JOIN category_products cp ON cp.product_id = p.id
LEFT JOIN categories c ON c.id = cp.category_id
LEFT JOIN images i ON i.product_id = p.id
ORDER BY p.id ASC, cp.id ASC, i.id ASC
`

// Repository owns product persistence, including the join rows that attach
// categories and images.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListAggregateRows returns the flat product join rows. Callers fold them
// into aggregates.
func (r *Repository) ListAggregateRows(ctx context.Context) ([]productJoinRow, error) {
	var rows []productJoinRow
	if err := r.db.WithContext(ctx).Raw(productAggregateQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts the product row only. Association rows are written through
// CreateAssignments and CreateImages so the caller controls what gets linked.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Images").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists the full product record.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Images").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteByID removes the product row and reports how many rows went away.
// Join and image rows follow via ON DELETE CASCADE.
func (r *Repository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// CreateAssignments links the product to the given categories.
func (r *Repository) CreateAssignments(ctx context.Context, rows []models.CategoryAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteAssignmentsByProduct clears the product's category links.
func (r *Repository) DeleteAssignmentsByProduct(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.CategoryAssignment{}).Error
}

// DeleteImagesByProduct clears the product's image rows.
func (r *Repository) DeleteImagesByProduct(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.Image{}).Error
}

// CreateImages attaches image rows to the product.
func (r *Repository) CreateImages(ctx context.Context, rows []models.Image) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
