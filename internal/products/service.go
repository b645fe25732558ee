package products

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/dmcneil/catalog-api/pkg/db/models"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes product catalog operations.
type Service interface {
	List(ctx context.Context) ([]ProductAggregateDTO, error)
	Get(ctx context.Context, id uint) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductAggregateDTO, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uint) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type categoryResolver interface {
	FindByNames(ctx context.Context, names []string) ([]models.Category, error)
}

type service struct {
	repo       *Repository
	dbClient   txRunner
	categories categoryResolver
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient txRunner, categories categoryResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category resolver required")
	}
	return &service{repo: repo, dbClient: dbClient, categories: categories}, nil
}

// List returns every product folded into its aggregate shape.
func (s *service) List(ctx context.Context) ([]ProductAggregateDTO, error) {
	rows, err := s.repo.ListAggregateRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product rows")
	}
	return foldProductRows(rows), nil
}

// Get returns the scalar record for one product.
func (s *service) Get(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}
	return NewProductDTO(product), nil
}

// Create inserts the product with its category links and images in one
// transaction. Category names that match no existing category are skipped
// rather than auto-created.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductAggregateDTO, error) {
	resolved, err := s.categories.FindByNames(ctx, dedupeStrings(input.Categories))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve categories")
	}

	imageURLs := dedupeStrings(input.ImageURLs)
	if imageURLs == nil {
		imageURLs = []string{}
	}

	var created *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Quantity:    input.Quantity,
		}
		if _, err := txRepo.Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		created = product

		assignments := make([]models.CategoryAssignment, 0, len(resolved))
		for _, category := range resolved {
			assignments = append(assignments, models.CategoryAssignment{
				ProductID:  product.ID,
				CategoryID: category.ID,
			})
		}
		if err := txRepo.CreateAssignments(ctx, assignments); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category assignments")
		}

		images := make([]models.Image, 0, len(imageURLs))
		for _, url := range imageURLs {
			images = append(images, models.Image{ProductID: product.ID, URL: url})
		}
		if err := txRepo.CreateImages(ctx, images); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert images")
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	names := make([]string, 0, len(resolved))
	for _, category := range resolved {
		names = append(names, category.Name)
	}
	return &ProductAggregateDTO{
		ProductDTO: *NewProductDTO(created),
		Categories: names,
		Images:     imageURLs,
	}, nil
}

// Update merges the supplied fields over the stored record and persists the
// result. A supplied Categories or ImageURLs slice replaces the product's
// existing set wholesale.
func (s *service) Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}

	applyProductUpdate(product, input)

	if input.Categories == nil && input.ImageURLs == nil {
		if _, err := s.repo.Save(ctx, product); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
		}
		return NewProductDTO(product), nil
	}

	var resolved []models.Category
	if input.Categories != nil {
		resolved, err = s.categories.FindByNames(ctx, dedupeStrings(*input.Categories))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve categories")
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.Save(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
		}

		if input.Categories != nil {
			if err := txRepo.DeleteAssignmentsByProduct(ctx, product.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear category assignments")
			}
			assignments := make([]models.CategoryAssignment, 0, len(resolved))
			for _, category := range resolved {
				assignments = append(assignments, models.CategoryAssignment{
					ProductID:  product.ID,
					CategoryID: category.ID,
				})
			}
			if err := txRepo.CreateAssignments(ctx, assignments); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category assignments")
			}
		}

		if input.ImageURLs != nil {
			if err := txRepo.DeleteImagesByProduct(ctx, product.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear images")
			}
			urls := dedupeStrings(*input.ImageURLs)
			images := make([]models.Image, 0, len(urls))
			for _, url := range urls {
				images = append(images, models.Image{ProductID: product.ID, URL: url})
			}
			if err := txRepo.CreateImages(ctx, images); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert images")
			}
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return NewProductDTO(product), nil
}

// Delete removes the product. Missing rows report NotFound.
func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// applyProductUpdate copies supplied fields onto the stored record. Nil
// fields keep the existing value.
func applyProductUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
}

// dedupeStrings removes duplicates while keeping first-seen order.
func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
