package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order's product set is fixed at creation time; TotalAmount is the sum of
// the associated products' prices as they were when the order was placed.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer    Customer        `json:"customer"`
	Products    []Product       `gorm:"many2many:order_products" json:"products"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	OrderDate   time.Time       `gorm:"index" json:"orderDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
}
