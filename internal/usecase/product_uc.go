package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/crmgraph/internal/domain"
)

const (
	msgPricePositive    = "Price must be positive"
	msgStockNonNegative = "Stock cannot be negative"
	msgProductNameReq   = "Name is required"
)

type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

type ProductResult struct {
	Product *domain.Product `json:"product"`
	Errors  []string        `json:"errors"`
}

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) Create(ctx context.Context, in CreateProductInput) (*ProductResult, error) {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, msgProductNameReq)
	}
	if in.Price.Sign() <= 0 {
		errs = append(errs, msgPricePositive)
	}
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	if stock < 0 {
		errs = append(errs, msgStockNonNegative)
	}
	if len(errs) > 0 {
		return &ProductResult{Errors: errs}, nil
	}

	p := &domain.Product{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
		Stock: stock,
	}
	if err := uc.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return &ProductResult{Product: p, Errors: []string{}}, nil
}

func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.List(ctx)
}
