package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmcneil/catalog-api/pkg/config"
	"github.com/dmcneil/catalog-api/pkg/db"
	"github.com/dmcneil/catalog-api/pkg/db/models"
	"github.com/dmcneil/catalog-api/pkg/logger"
	"github.com/dmcneil/catalog-api/pkg/security"
)

type seedProduct struct {
	name        string
	description string
	price       decimal.Decimal
	quantity    int
	categories  []string
	imageURLs   []string
}

type seedUser struct {
	name     string
	email    string
	password string
	admin    bool
}

var seedCategories = []string{"Electronics", "Furniture"}

var seedProducts = []seedProduct{
	{
		name:        "Laptop",
		description: "A powerful laptop",
		price:       decimal.NewFromInt(1000),
		quantity:    10,
		categories:  []string{"Electronics"},
		imageURLs: []string{
			"https://example.com/laptop-front.jpg",
			"https://example.com/laptop-open.jpg",
		},
	},
	{
		name:        "Chair",
		description: "Sit on it",
		price:       decimal.NewFromInt(400),
		quantity:    25,
		categories:  []string{"Furniture"},
		imageURLs: []string{
			"https://example.com/chair.jpg",
		},
	},
	{
		name:        "Table",
		description: "A sturdy table",
		price:       decimal.NewFromInt(250),
		quantity:    8,
		categories:  []string{"Furniture"},
	},
	{
		name:        "Desk",
		description: "A standing desk",
		price:       decimal.NewFromInt(120),
		quantity:    5,
		categories:  []string{"Furniture"},
	},
}

var seedUsers = []seedUser{
	{name: "Alice", email: "alice@example.com", password: "password123", admin: true},
	{name: "Bob", email: "bob@example.com", password: "password456"},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		categoryIDs := make(map[string]uint, len(seedCategories))
		for _, name := range seedCategories {
			category, err := upsertCategory(tx, name)
			if err != nil {
				return err
			}
			categoryIDs[name] = category.ID
		}

		for _, seed := range seedProducts {
			if err := upsertProduct(tx, seed, categoryIDs); err != nil {
				return err
			}
		}

		for _, seed := range seedUsers {
			if err := upsertUser(tx, seed, cfg.Password); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed data applied")
}

func upsertCategory(tx *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	err := tx.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category = models.Category{Name: name}
	if err := tx.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func upsertProduct(tx *gorm.DB, seed seedProduct, categoryIDs map[string]uint) error {
	var existing models.Product
	err := tx.Where("name = ?", seed.name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	product := models.Product{
		Name:        seed.name,
		Description: seed.description,
		Price:       seed.price,
		Quantity:    seed.quantity,
	}
	if err := tx.Omit("Categories", "Images").Create(&product).Error; err != nil {
		return err
	}

	for _, name := range seed.categories {
		categoryID, ok := categoryIDs[name]
		if !ok {
			continue
		}
		assignment := models.CategoryAssignment{ProductID: product.ID, CategoryID: categoryID}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
	}

	for _, url := range seed.imageURLs {
		image := models.Image{ProductID: product.ID, URL: url}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

func upsertUser(tx *gorm.DB, seed seedUser, passwordCfg config.PasswordConfig) error {
	var existing models.User
	err := tx.Where("email = ?", seed.email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(seed.password, passwordCfg)
	if err != nil {
		return err
	}
	user := models.User{
		Name:         seed.name,
		Email:        seed.email,
		PasswordHash: hash,
		Admin:        seed.admin,
	}
	return tx.Create(&user).Error
}
