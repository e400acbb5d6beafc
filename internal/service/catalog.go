package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/guard"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/repo"
	"github.com/KingDev1404/freshbulk/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, ident guard.Identity, req transport.ProductRequest) (*models.Product, error) {
	if !guard.AdminOnly(ident) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces all five catalog fields. Orders created before
// the update keep their own price snapshots.
func (s *CatalogService) UpdateProduct(ctx context.Context, ident guard.Identity, id uint, req transport.ProductRequest) (*models.Product, error) {
	if !guard.AdminOnly(ident) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.Category = req.Category

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, ident guard.Identity, id uint) error {
	if !guard.AdminOnly(ident) {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func validateProduct(req transport.ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.ImageURL) == "" ||
		strings.TrimSpace(req.Category) == "" {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if req.Price.Sign() <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return nil
}
