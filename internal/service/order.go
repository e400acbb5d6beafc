package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/guard"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/repo"
	"github.com/KingDev1404/freshbulk/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder builds a persisted order for the caller. The unit price of
// every line item is copied from the product at this instant and never
// re-read afterward; the total is the sum of price x quantity over the
// lines. Any unknown product id aborts the whole request before anything
// is written.
func (s *OrderService) CreateOrder(ctx context.Context, ident guard.Identity, req transport.CreateOrderRequest) (*models.Order, error) {
	lines := req.Items
	if len(lines) == 0 && req.ProductID != 0 {
		lines = []transport.OrderItemRequest{{ProductID: req.ProductID, Quantity: req.Quantity}}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if strings.TrimSpace(req.DeliveryName) == "" ||
		strings.TrimSpace(req.DeliveryPhone) == "" ||
		strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, fmt.Errorf("%w: delivery name, phone and address are required", ErrValidation)
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be a positive number", ErrValidation)
		}
		ids = append(ids, line.ProductID)
	}

	products, err := s.Repo.ProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := &models.Order{
		UserID:          ident.UserID,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		DeliveryName:    req.DeliveryName,
		DeliveryPhone:   req.DeliveryPhone,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder checks existence before ownership: an unknown id is 404 for
// everyone, a real order owned by someone else is 403.
func (s *OrderService) GetOrder(ctx context.Context, ident guard.Identity, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	if !guard.OwnerOrAdmin(ident, order.UserID) {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, ident guard.Identity, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, ident.UserID, ident.IsAdmin(), offset, limit)
}

// UpdateStatus lets an admin set any of the three order states, in any
// order. Only the status field changes; the total and line items never do.
func (s *OrderService) UpdateStatus(ctx context.Context, ident guard.Identity, id uint, status string) (*models.Order, error) {
	if !guard.AdminOnly(ident) {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid status value", ErrValidation)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}
