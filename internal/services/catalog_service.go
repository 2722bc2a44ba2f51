// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/quote-manager/internal/database"
	"github.com/javajoker/quote-manager/internal/models"
	"github.com/javajoker/quote-manager/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	db *gorm.DB
}

type ProductSearchParams struct {
	utils.PaginationParams
	IsKit *bool `json:"is_kit,omitempty"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListProducts returns every product in creation order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	if params.IsKit != nil {
		query = query.Where("is_kit = ?", *params.IsKit)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"id", "name", "price", "created_at"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return findProduct(s.db.WithContext(ctx), id)
}

func findProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// Seed installs the demo catalog when the products table is empty. It reports
// whether anything was inserted.
//
// The kit is inserted after the plain products so that its component list holds
// their assigned ids.
func (s *CatalogService) Seed(ctx context.Context) (bool, error) {
	seeded := false

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			return nil
		}

		basic := &models.Product{Name: "ACME Basic AC", Price: decimal.NewFromInt(100)}
		pro := &models.Product{
			Name:      "ACME Pro AC",
			Price:     decimal.NewFromInt(180),
			HasColors: true,
			Colors:    []string{"white", "black", "gray"},
		}
		bracket := &models.Product{Name: "ACME Wall Bracket", Price: decimal.NewFromInt(25)}
		filter := &models.Product{
			Name:      "ACME Air Filter",
			Price:     decimal.NewFromInt(15),
			HasColors: true,
			Colors:    []string{"blue", "green"},
		}

		for _, p := range []*models.Product{basic, pro, bracket, filter} {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to create product %q: %w", p.Name, err)
			}
		}

		kit := &models.Product{
			Name:          "ACME Installation Kit",
			Price:         decimal.Zero,
			IsKit:         true,
			KitComponents: []uint{pro.ID, bracket.ID},
		}
		if err := tx.Create(kit).Error; err != nil {
			return fmt.Errorf("failed to create kit %q: %w", kit.Name, err)
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		logrus.Info("Catalog seeded with demo products")
	}
	return seeded, nil
}
