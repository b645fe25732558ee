package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/dmcneil/catalog-api/pkg/db/models"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

type stubCategoryRepo struct {
	listRows  []models.Category
	listErr   error
	createErr error
	created   *models.Category
}

func (s *stubCategoryRepo) List(context.Context) ([]models.Category, error) {
	return s.listRows, s.listErr
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	category.ID = 7
	s.created = category
	return category, nil
}

func TestCategoryServiceList(t *testing.T) {
	t.Run("mapsRows", func(t *testing.T) {
		svc := NewServiceWithRepo(&stubCategoryRepo{listRows: []models.Category{
			{ID: 1, Name: "Electronics"},
			{ID: 2, Name: "Furniture"},
		}})

		out, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(out))
		}
		if out[0].Name != "Electronics" || out[1].Name != "Furniture" {
			t.Fatalf("unexpected order: %+v", out)
		}
	})

	t.Run("emptyIsNotNil", func(t *testing.T) {
		svc := NewServiceWithRepo(&stubCategoryRepo{})
		out, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out == nil {
			t.Fatal("expected empty slice, got nil")
		}
	})

	t.Run("wrapsRepoError", func(t *testing.T) {
		svc := NewServiceWithRepo(&stubCategoryRepo{listErr: errors.New("boom")})
		_, err := svc.List(context.Background())
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
			t.Fatalf("expected dependency error, got %v", err)
		}
	})
}

func TestCategoryServiceCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &stubCategoryRepo{}
		svc := NewServiceWithRepo(repo)

		out, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Garden"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != 7 || out.Name != "Garden" {
			t.Fatalf("unexpected dto: %+v", out)
		}
	})

	t.Run("duplicateName", func(t *testing.T) {
		svc := NewServiceWithRepo(&stubCategoryRepo{
			createErr: errors.New(`pq: duplicate key value violates unique constraint "categories_name_key"`),
		})

		_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Garden"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	// The sqlite driver phrases unique violations without a constraint name;
	// the duplicate still has to surface as a conflict.
	t.Run("duplicateNameOnSQLite", func(t *testing.T) {
		svc := NewService(openTestDB(t))

		if _, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Garden"}); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Garden"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})
}
