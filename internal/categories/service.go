package categories

import (
	"context"

	"github.com/dmcneil/catalog-api/pkg/db"
	"github.com/dmcneil/catalog-api/pkg/db/models"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes category use cases to the HTTP layer.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
}

type repo interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
}

type service struct {
	repo repo
}

// NewService wires the category service over its repository.
func NewService(gdb *gorm.DB) Service {
	return &service{repo: NewRepository(gdb)}
}

// NewServiceWithRepo is used by tests to inject a stub repository.
func NewServiceWithRepo(r repo) Service {
	return &service{repo: r}
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	created, err := s.repo.Create(ctx, &models.Category{Name: input.Name})
	if err != nil {
		if db.IsUniqueViolation(err, "categories_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	dto := FromModel(created)
	return &dto, nil
}
