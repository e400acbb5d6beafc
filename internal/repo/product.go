package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("name ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// ProductsByID resolves a set of product ids in one query. Missing and
// soft-deleted ids are simply absent from the returned map; the caller
// decides whether that is an error.
func (r *GormRepo) ProductsByID(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

// DeleteProduct soft-deletes so historical order line items keep a valid
// product reference. Deleting an absent id reports ErrRecordNotFound.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
