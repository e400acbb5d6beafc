package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleBuyer = "BUYER"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusDelivered  = "DELIVERED"
)

// ValidOrderStatus reports whether s is one of the three order states.
// Values outside the set are rejected as validation errors.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusDelivered:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:BUYER"   json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}

// Product rows are soft-deleted so that order line items created before a
// delete keep resolving. Catalog queries exclude deleted rows automatically.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null"                 json:"name"`
	Description string          `gorm:"not null"                 json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric;not null"    json:"price"`
	ImageURL    string          `gorm:"not null"                 json:"image_url"`
	Category    string          `gorm:"not null"                 json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"                    json:"-"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"index;not null"           json:"user_id"`
	Status          string          `gorm:"not null"                 json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric;not null"    json:"total_amount"`
	DeliveryName    string          `gorm:"not null"                 json:"delivery_name"`
	DeliveryPhone   string          `gorm:"not null"                 json:"delivery_phone"`
	DeliveryAddress string          `gorm:"not null"                 json:"delivery_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"       json:"items"`
}

// OrderItem.Price is the product price copied at order creation time.
// It is never re-read from the product, so later catalog edits leave
// historical orders unchanged.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                 json:"id"`
	OrderID   uint            `gorm:"index;not null"             json:"order_id"`
	ProductID uint            `gorm:"not null"                   json:"product_id"`
	Quantity  uint            `gorm:"not null;check:quantity>0"  json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"      json:"price"`
}
