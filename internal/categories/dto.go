package categories

import (
	"time"

	"github.com/dmcneil/catalog-api/pkg/db/models"
)

// CategoryDTO is the wire shape of a category.
type CategoryDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryInput carries the payload for category creation.
type CreateCategoryInput struct {
	Name string `json:"name" form:"name" validate:"required,min=1,max=255"`
}

// FromModel maps a persisted category to its DTO.
func FromModel(m *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of categories, never returning nil.
func FromModels(ms []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
