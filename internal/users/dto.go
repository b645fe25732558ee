package users

import (
	"time"

	"github.com/dmcneil/catalog-api/pkg/db/models"
)

// UserDTO is the wire shape of a user. The password digest never leaves the
// persistence layer.
type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps a persisted user to its DTO.
func FromModel(m *models.User) UserDTO {
	return UserDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Admin:     m.Admin,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
