package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/crmgraph/internal/domain"
)

const (
	msgInvalidCustomer  = "Invalid customer ID"
	msgNoValidProducts  = "No valid products found"
	msgProductIDInvalid = "One or more product IDs are invalid"
)

type CreateOrderInput struct {
	CustomerID uuid.UUID
	ProductIDs []uuid.UUID
	OrderDate  *time.Time
}

type OrderResult struct {
	Order  *domain.Order `json:"order"`
	Errors []string      `json:"errors"`
}

type OrderUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
	Products  domain.ProductRepo
}

// Create resolves the customer and product set, derives the total from the
// resolved prices, and persists order plus associations atomically. The
// count comparison runs after resolving the set, so duplicate or unknown ids
// both surface as a mismatch.
func (uc *OrderUC) Create(ctx context.Context, in CreateOrderInput) (*OrderResult, error) {
	customer, err := uc.Customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &OrderResult{Errors: []string{msgInvalidCustomer}}, nil
		}
		return nil, err
	}

	products, err := uc.Products.FindByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return &OrderResult{Errors: []string{msgNoValidProducts}}, nil
	}
	if len(products) != len(in.ProductIDs) {
		return &OrderResult{Errors: []string{msgProductIDInvalid}}, nil
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	o := &domain.Order{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		Products:    products,
		TotalAmount: total,
		OrderDate:   orderDate,
	}
	if err := uc.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	o.Customer = *customer
	return &OrderResult{Order: o, Errors: []string{}}, nil
}

func (uc *OrderUC) List(ctx context.Context) ([]domain.Order, error) {
	return uc.Orders.List(ctx)
}
