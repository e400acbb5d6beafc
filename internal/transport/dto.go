package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

// CreateOrderRequest carries either a multi-item cart or the legacy
// single-product shape (product_id + quantity at the top level); the
// service folds the latter into a one-element item list.
type CreateOrderRequest struct {
	Items     []OrderItemRequest `json:"items"`
	ProductID uint               `json:"product_id"`
	Quantity  uint               `json:"quantity"`

	DeliveryName    string `json:"delivery_name"`
	DeliveryPhone   string `json:"delivery_phone"`
	DeliveryAddress string `json:"delivery_address"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
