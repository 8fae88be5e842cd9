package gql_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phenrril/crmgraph/internal/adapters/gql"
	"github.com/phenrril/crmgraph/internal/adapters/repo/postgres"
	"github.com/phenrril/crmgraph/internal/domain"
	"github.com/phenrril/crmgraph/internal/usecase"
)

type fixture struct {
	schema    graphql.Schema
	customers *usecase.CustomerUC
	products  *usecase.ProductUC
	orders    *usecase.OrderUC
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}, &domain.Product{}, &domain.Order{}))

	custRepo := postgres.NewCustomerRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	f := fixture{
		customers: &usecase.CustomerUC{Customers: custRepo},
		products:  &usecase.ProductUC{Products: prodRepo},
		orders:    &usecase.OrderUC{Orders: postgres.NewOrderRepo(db), Customers: custRepo, Products: prodRepo},
	}
	f.schema, err = gql.NewSchema(&gql.Resolver{Customers: f.customers, Products: f.products, Orders: f.orders})
	require.NoError(t, err)
	return f
}

func (f fixture) exec(t *testing.T, query string) map[string]interface{} {
	t.Helper()
	res := graphql.Do(graphql.Params{Schema: f.schema, RequestString: query, Context: context.Background()})
	require.Emptyf(t, res.Errors, "unexpected graphql errors: %v", res.Errors)
	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateCustomerMutation(t *testing.T) {
	f := newFixture(t)

	data := f.exec(t, `mutation {
		createCustomer(input: {name: "Alice", email: "alice@example.com", phone: "+1234567890"}) {
			customer { name email phone }
			message
			errors
		}
	}`)
	payload := data["createCustomer"].(map[string]interface{})
	assert.Equal(t, "Customer created successfully", payload["message"])
	assert.Empty(t, payload["errors"])

	customer := payload["customer"].(map[string]interface{})
	assert.Equal(t, "Alice", customer["name"])
	assert.Equal(t, "alice@example.com", customer["email"])

	data = f.exec(t, `{ allCustomers { email } }`)
	all := data["allCustomers"].([]interface{})
	require.Len(t, all, 1)
	assert.Equal(t, "alice@example.com", all[0].(map[string]interface{})["email"])
}

func TestCreateCustomerMutationDuplicate(t *testing.T) {
	f := newFixture(t)

	m := `mutation {
		createCustomer(input: {name: "Alice", email: "alice@example.com"}) {
			customer { id }
			errors
		}
	}`
	f.exec(t, m)
	payload := f.exec(t, m)["createCustomer"].(map[string]interface{})
	assert.Nil(t, payload["customer"])
	assert.Equal(t, []interface{}{"Email already exists"}, payload["errors"])
}

func TestBulkCreateCustomersMutation(t *testing.T) {
	f := newFixture(t)

	f.exec(t, `mutation {
		createCustomer(input: {name: "Bob", email: "bob@example.com"}) { errors }
	}`)

	data := f.exec(t, `mutation {
		bulkCreateCustomers(input: [
			{name: "Alice", email: "alice@example.com"},
			{name: "Bob Again", email: "bob@example.com"},
			{name: "Carol", email: "carol@example.com"}
		]) {
			customers { email }
			errors
		}
	}`)
	payload := data["bulkCreateCustomers"].(map[string]interface{})
	assert.Len(t, payload["customers"], 2)

	errs := payload["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "bob@example.com")
}

func TestCreateProductMutation(t *testing.T) {
	f := newFixture(t)

	data := f.exec(t, `mutation {
		createProduct(input: {name: "Phone", price: "199.99", stock: 20}) {
			product { name price stock }
			errors
		}
	}`)
	payload := data["createProduct"].(map[string]interface{})
	assert.Empty(t, payload["errors"])

	product := payload["product"].(map[string]interface{})
	assert.Equal(t, "Phone", product["name"])
	assert.Equal(t, "199.99", product["price"])
	assert.Equal(t, 20, product["stock"])

	payload = f.exec(t, `mutation {
		createProduct(input: {name: "Free", price: "0"}) { product { id } errors }
	}`)["createProduct"].(map[string]interface{})
	assert.Nil(t, payload["product"])
	assert.Equal(t, []interface{}{"Price must be positive"}, payload["errors"])
}

func TestCreateOrderMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cres, err := f.customers.Create(ctx, usecase.CreateCustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	p1, err := f.products.Create(ctx, usecase.CreateProductInput{Name: "Phone", Price: mustDecimal("199.99")})
	require.NoError(t, err)
	p2, err := f.products.Create(ctx, usecase.CreateProductInput{Name: "Tablet", Price: mustDecimal("299.99")})
	require.NoError(t, err)

	data := f.exec(t, fmt.Sprintf(`mutation {
		createOrder(input: {customerId: "%s", productIds: ["%s", "%s"]}) {
			order {
				totalAmount
				customer { email }
				products { name }
			}
			errors
		}
	}`, cres.Customer.ID, p1.Product.ID, p2.Product.ID))
	payload := data["createOrder"].(map[string]interface{})
	assert.Empty(t, payload["errors"])

	order := payload["order"].(map[string]interface{})
	assert.Equal(t, "499.98", order["totalAmount"])
	assert.Equal(t, "alice@example.com", order["customer"].(map[string]interface{})["email"])
	assert.Len(t, order["products"], 2)

	// a request naming an unknown product creates nothing
	payload = f.exec(t, fmt.Sprintf(`mutation {
		createOrder(input: {customerId: "%s", productIds: ["%s", "11111111-1111-1111-1111-111111111111"]}) {
			order { totalAmount }
			errors
		}
	}`, cres.Customer.ID, p1.Product.ID))["createOrder"].(map[string]interface{})
	assert.Nil(t, payload["order"])
	assert.Equal(t, []interface{}{"One or more product IDs are invalid"}, payload["errors"])

	all := f.exec(t, `{ allOrders { totalAmount } }`)["allOrders"].([]interface{})
	assert.Len(t, all, 1)
}
