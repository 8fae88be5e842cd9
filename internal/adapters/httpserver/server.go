package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"github.com/phenrril/crmgraph/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	customers *usecase.CustomerUC
	products  *usecase.ProductUC
	orders    *usecase.OrderUC
}

func New(schema graphql.Schema, c *usecase.CustomerUC, p *usecase.ProductUC, o *usecase.OrderUC) http.Handler {
	s := &Server{mux: http.NewServeMux(), customers: c, products: p, orders: o}
	s.routes(schema)
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes(schema graphql.Schema) {
	gh := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	s.mux.Handle("/graphql", gh)

	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/export/customers.xlsx", s.handleExportCustomers)
	s.mux.HandleFunc("/export/orders.xlsx", s.handleExportOrders)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
