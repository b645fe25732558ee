package categories

import (
	"context"

	"github.com/dmcneil/catalog-api/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every category ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByName retrieves the category with the exact provided name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByNames resolves the given names to existing categories. Names without
// a matching row are absent from the result; callers decide how to treat them.
func (r *Repository) FindByNames(ctx context.Context, names []string) ([]models.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []models.Category
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error
	return rows, err
}
