package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleExportCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("export customers")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	rows := make([][]interface{}, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []interface{}{c.ID.String(), c.Name, c.Email, c.Phone, c.CreatedAt.Format(time.RFC3339)})
	}
	writeXLSX(w, "Customers", []interface{}{"ID", "Name", "Email", "Phone", "Created At"}, rows, "customers.xlsx")
}

func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("export orders")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		names := make([]string, 0, len(o.Products))
		for _, p := range o.Products {
			names = append(names, p.Name)
		}
		rows = append(rows, []interface{}{
			o.ID.String(),
			o.Customer.Email,
			strings.Join(names, ", "),
			o.TotalAmount.StringFixed(2),
			o.OrderDate.Format(time.RFC3339),
		})
	}
	writeXLSX(w, "Orders", []interface{}{"ID", "Customer", "Products", "Total", "Order Date"}, rows, "orders.xlsx")
}

func writeXLSX(w http.ResponseWriter, sheet string, header []interface{}, rows [][]interface{}, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetSheetName("Sheet1", sheet)
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			continue
		}
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("write xlsx")
	}
}
