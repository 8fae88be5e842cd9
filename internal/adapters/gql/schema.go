package gql

import (
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/phenrril/crmgraph/internal/usecase"
)

// Resolver holds the usecases the schema routes into.
type Resolver struct {
	Customers *usecase.CustomerUC
	Products  *usecase.ProductUC
	Orders    *usecase.OrderUC
}

var errorsField = &graphql.Field{
	Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
}

// NewSchema builds the executable schema. Validation and referential problems
// come back inside each payload's errors list; a resolver returns a Go error
// only for unexpected persistence failures, which fail the whole request.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"customer":    &graphql.Field{Type: graphql.NewNonNull(customerType)},
			"products":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType)))},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	customerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	productInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
			"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	orderInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
			"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	createCustomerPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: customerType},
			"message":  &graphql.Field{Type: graphql.String},
			"errors":   errorsField,
		},
	})

	bulkCreateCustomersPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType)))},
			"errors":    errorsField,
		},
	})

	createProductPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: productType},
			"errors":  errorsField,
		},
	})

	createOrderPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order":  &graphql.Field{Type: orderType},
			"errors": errorsField,
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allCustomers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Customers.List(p.Context)
				},
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Products.List(p.Context)
				},
			},
			"allOrders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.List(p.Context)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: graphql.NewNonNull(createCustomerPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, _ := p.Args["input"].(map[string]interface{})
					return r.Customers.Create(p.Context, decodeCustomerInput(m))
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: graphql.NewNonNull(bulkCreateCustomersPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["input"].([]interface{})
					rows := make([]usecase.CreateCustomerInput, 0, len(raw))
					for _, item := range raw {
						m, _ := item.(map[string]interface{})
						rows = append(rows, decodeCustomerInput(m))
					}
					return r.Customers.BulkCreate(p.Context, rows)
				},
			},
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(createProductPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, _ := p.Args["input"].(map[string]interface{})
					return r.Products.Create(p.Context, decodeProductInput(m))
				},
			},
			"createOrder": &graphql.Field{
				Type: graphql.NewNonNull(createOrderPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, _ := p.Args["input"].(map[string]interface{})
					in, errs := decodeOrderInput(m)
					if len(errs) > 0 {
						return &usecase.OrderResult{Errors: errs}, nil
					}
					return r.Orders.Create(p.Context, in)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType, Mutation: mutationType})
}

func decodeCustomerInput(m map[string]interface{}) usecase.CreateCustomerInput {
	var in usecase.CreateCustomerInput
	if v, ok := m["name"].(string); ok {
		in.Name = v
	}
	if v, ok := m["email"].(string); ok {
		in.Email = v
	}
	if v, ok := m["phone"].(string); ok {
		in.Phone = v
	}
	return in
}

func decodeProductInput(m map[string]interface{}) usecase.CreateProductInput {
	var in usecase.CreateProductInput
	if v, ok := m["name"].(string); ok {
		in.Name = v
	}
	if v, ok := m["price"].(decimal.Decimal); ok {
		in.Price = v
	}
	if v, ok := m["stock"].(int); ok {
		in.Stock = &v
	}
	return in
}

// decodeOrderInput maps id parse failures onto the same user-visible reasons
// the usecase reports for unknown ids.
func decodeOrderInput(m map[string]interface{}) (usecase.CreateOrderInput, []string) {
	var in usecase.CreateOrderInput
	raw, _ := m["customerId"].(string)
	cid, err := uuid.Parse(raw)
	if err != nil {
		return in, []string{"Invalid customer ID"}
	}
	in.CustomerID = cid

	if ids, ok := m["productIds"].([]interface{}); ok {
		in.ProductIDs = make([]uuid.UUID, 0, len(ids))
		for _, item := range ids {
			s, _ := item.(string)
			pid, err := uuid.Parse(s)
			if err != nil {
				return in, []string{"One or more product IDs are invalid"}
			}
			in.ProductIDs = append(in.ProductIDs, pid)
		}
	}

	if v, ok := m["orderDate"].(time.Time); ok {
		in.OrderDate = &v
	}
	return in, nil
}
