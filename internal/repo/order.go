package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/models"
)

// CreateOrder persists the order and all of its line items in a single
// transaction. A failure on any row rolls back everything, so a concurrent
// reader never observes an order without its items.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns all orders when all is set, otherwise only the given
// user's. The ownership filter is part of the query, never applied after
// the fetch.
func (r *GormRepo) ListOrders(ctx context.Context, userID uint, all bool, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if !all {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}

	return total, orders, nil
}

// UpdateOrderStatus changes only the status column (and the updated_at
// timestamp gorm maintains); line items and total are untouched.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}

	return r.GetOrder(ctx, id)
}
