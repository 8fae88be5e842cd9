package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/phenrril/crmgraph/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order row and its product associations in one
// transaction. An order with zero associated products must not be observable,
// so a failure writing the join rows rolls back the order itself.
// Omit("Products.*") keeps the association insert from upserting the product
// rows, which already exist.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Products.*", "Customer").Create(o).Error
	})
}

// List returns all orders in insertion order with customer and products
// preloaded.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var list []domain.Order
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		Order("created_at asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
