package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/transport"
)

func validDelivery(req transport.CreateOrderRequest) transport.CreateOrderRequest {
	req.DeliveryName = "Jamie Doe"
	req.DeliveryPhone = "555-0101"
	req.DeliveryAddress = "1 Market Street"
	return req
}

func TestCreateOrder_SnapshotsPriceAndTotal(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	buyer := seedUser(t, r, "buyer@example.com", models.RoleBuyer)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	order, err := svc.CreateOrder(ctx, buyerIdentity(buyer), validDelivery(transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 3}},
	}))
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, buyer.ID, order.UserID)
	assert.Equal(t, "5.97", order.TotalAmount.String())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "1.99", order.Items[0].Price.String())
	assert.Equal(t, uint(3), order.Items[0].Quantity)

	// Persisted, not just returned.
	stored, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.97", stored.TotalAmount.String())
	require.Len(t, stored.Items, 1)
}

func TestCreateOrder_MultiItemTotal(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	buyer := seedUser(t, r, "buyer@example.com", models.RoleBuyer)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")
	apples := seedProduct(t, r, "Organic Apples", "2.49")

	order, err := svc.CreateOrder(ctx, buyerIdentity(buyer), validDelivery(transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{
			{ProductID: carrots.ID, Quantity: 2},
			{ProductID: apples.ID, Quantity: 4},
		},
	}))
	require.NoError(t, err)

	// 2*1.99 + 4*2.49 = 13.94
	assert.Equal(t, "13.94", order.TotalAmount.String())
	assert.Len(t, order.Items, 2)
}

func TestCreateOrder_LegacySingleItemShape(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	buyer := seedUser(t, r, "buyer@example.com", models.RoleBuyer)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	order, err := svc.CreateOrder(ctx, buyerIdentity(buyer), validDelivery(transport.CreateOrderRequest{
		ProductID: carrots.ID,
		Quantity:  3,
	}))
	require.NoError(t, err)
	assert.Equal(t, "5.97", order.TotalAmount.String())
	require.Len(t, order.Items, 1)
}

func TestCreateOrder_UnknownProductIsAtomic(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	buyer := seedUser(t, r, "buyer@example.com", models.RoleBuyer)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	_, err := svc.CreateOrder(ctx, buyerIdentity(buyer), validDelivery(transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{
			{ProductID: carrots.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	}))
	require.ErrorIs(t, err, ErrNotFound)

	var orders, items int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrder_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	buyer := seedUser(t, r, "buyer@example.com", models.RoleBuyer)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")
	ident := buyerIdentity(buyer)

	cases := []struct {
		name string
		req  transport.CreateOrderRequest
	}{
		{"no items", validDelivery(transport.CreateOrderRequest{})},
		{"zero quantity", validDelivery(transport.CreateOrderRequest{
			Items: []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 0}},
		})},
		{"zero product id", validDelivery(transport.CreateOrderRequest{
			Items: []transport.OrderItemRequest{{ProductID: 0, Quantity: 1}},
		})},
		{"missing delivery name", transport.CreateOrderRequest{
			Items:           []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 1}},
			DeliveryPhone:   "555-0101",
			DeliveryAddress: "1 Market Street",
		}},
		{"blank delivery address", transport.CreateOrderRequest{
			Items:           []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 1}},
			DeliveryName:    "Jamie Doe",
			DeliveryPhone:   "555-0101",
			DeliveryAddress: "   ",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, ident, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOrder_PriceChangeDoesNotRewriteHistory(t *testing.T) {
	r := newTestRepo(t)
	orders := &OrderService{Repo: r}
	catalog := &CatalogService{Repo: r}
	ctx := context.Background()

	buyer := seedUser(t, r, "buyer@example.com", models.RoleBuyer)
	admin := seedUser(t, r, "admin@example.com", models.RoleAdmin)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	order, err := orders.CreateOrder(ctx, buyerIdentity(buyer), validDelivery(transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 3}},
	}))
	require.NoError(t, err)

	_, err = catalog.UpdateProduct(ctx, adminIdentity(admin), carrots.ID, transport.ProductRequest{
		Name:        carrots.Name,
		Description: carrots.Description,
		Price:       decimal.RequireFromString("2.99"),
		ImageURL:    carrots.ImageURL,
		Category:    carrots.Category,
	})
	require.NoError(t, err)

	refetched, err := orders.GetOrder(ctx, buyerIdentity(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.97", refetched.TotalAmount.String())
	require.Len(t, refetched.Items, 1)
	assert.Equal(t, "1.99", refetched.Items[0].Price.String())
}

func TestGetOrder_ExistenceBeforeOwnership(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com", models.RoleBuyer)
	other := seedUser(t, r, "other@example.com", models.RoleBuyer)
	admin := seedUser(t, r, "admin@example.com", models.RoleAdmin)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	order, err := svc.CreateOrder(ctx, buyerIdentity(owner), validDelivery(transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 1}},
	}))
	require.NoError(t, err)

	// Unknown id is not-found for everyone, never forbidden.
	_, err = svc.GetOrder(ctx, buyerIdentity(other), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// Existing order owned by someone else is forbidden.
	_, err = svc.GetOrder(ctx, buyerIdentity(other), order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Owner and admin may read.
	_, err = svc.GetOrder(ctx, buyerIdentity(owner), order.ID)
	assert.NoError(t, err)
	_, err = svc.GetOrder(ctx, adminIdentity(admin), order.ID)
	assert.NoError(t, err)
}

func TestListOrders_OwnershipFilter(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	alice := seedUser(t, r, "alice@example.com", models.RoleBuyer)
	bob := seedUser(t, r, "bob@example.com", models.RoleBuyer)
	admin := seedUser(t, r, "admin@example.com", models.RoleAdmin)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	for _, u := range []*models.User{alice, alice, bob} {
		_, err := svc.CreateOrder(ctx, buyerIdentity(u), validDelivery(transport.CreateOrderRequest{
			Items: []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 1}},
		}))
		require.NoError(t, err)
	}

	total, aliceOrders, err := svc.ListOrders(ctx, buyerIdentity(alice), 0, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, o := range aliceOrders {
		assert.Equal(t, alice.ID, o.UserID)
	}

	total, _, err = svc.ListOrders(ctx, buyerIdentity(bob), 0, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	total, all, err := svc.ListOrders(ctx, adminIdentity(admin), 0, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}

func TestUpdateStatus_AdminOnlyAndValueSet(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com", models.RoleBuyer)
	admin := seedUser(t, r, "admin@example.com", models.RoleAdmin)
	carrots := seedProduct(t, r, "Fresh Carrots", "1.99")

	order, err := svc.CreateOrder(ctx, buyerIdentity(owner), validDelivery(transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{ProductID: carrots.ID, Quantity: 2}},
	}))
	require.NoError(t, err)

	// The owner may read but never mutate status.
	_, err = svc.UpdateStatus(ctx, buyerIdentity(owner), order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrForbidden)

	// Values outside the closed set are rejected.
	_, err = svc.UpdateStatus(ctx, adminIdentity(admin), order.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, adminIdentity(admin), 9999, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateStatus(ctx, adminIdentity(admin), order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// Only the status changed; total and items are untouched.
	assert.Equal(t, "3.98", updated.TotalAmount.String())
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "1.99", updated.Items[0].Price.String())

	// Admins may also jump backward.
	back, err := svc.UpdateStatus(ctx, adminIdentity(admin), order.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, back.Status)

	reread, err := svc.GetOrder(ctx, buyerIdentity(owner), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reread.Status)
}
