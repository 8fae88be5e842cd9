package app

import (
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/phenrril/crmgraph/internal/adapters/gql"
	"github.com/phenrril/crmgraph/internal/adapters/httpserver"
	"github.com/phenrril/crmgraph/internal/adapters/repo/postgres"
	"github.com/phenrril/crmgraph/internal/domain"
	"github.com/phenrril/crmgraph/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	Schema     graphql.Schema
	CustomerUC *usecase.CustomerUC
	ProductUC  *usecase.ProductUC
	OrderUC    *usecase.OrderUC
}

func NewApp(db *gorm.DB) (*App, error) {
	custRepo := postgres.NewCustomerRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	customerUC := &usecase.CustomerUC{Customers: custRepo}
	productUC := &usecase.ProductUC{Products: prodRepo}
	orderUC := &usecase.OrderUC{Orders: orderRepo, Customers: custRepo, Products: prodRepo}

	schema, err := gql.NewSchema(&gql.Resolver{
		Customers: customerUC,
		Products:  productUC,
		Orders:    orderUC,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		DB:         db,
		Schema:     schema,
		CustomerUC: customerUC,
		ProductUC:  productUC,
		OrderUC:    orderUC,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Schema, a.CustomerUC, a.ProductUC, a.OrderUC)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(&domain.Customer{}, &domain.Product{}, &domain.Order{}); err != nil {
		return err
	}
	if strings.EqualFold(os.Getenv("SEED_DB"), "true") {
		return seedDev(a.DB)
	}
	return nil
}

// seedDev inserts the development fixtures once, on an empty database.
func seedDev(db *gorm.DB) error {
	var customers, products int64
	if err := db.Model(&domain.Customer{}).Count(&customers).Error; err != nil {
		return err
	}
	if err := db.Model(&domain.Product{}).Count(&products).Error; err != nil {
		return err
	}
	if customers > 0 || products > 0 {
		return nil
	}

	if err := db.Create(&domain.Customer{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Phone: "+1234567890",
	}).Error; err != nil {
		return err
	}

	seed := []domain.Product{
		{ID: uuid.New(), Name: "Phone", Price: decimal.RequireFromString("199.99"), Stock: 20},
		{ID: uuid.New(), Name: "Tablet", Price: decimal.RequireFromString("299.99"), Stock: 15},
	}
	for _, p := range seed {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
