package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
)

// ReportsStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportsStore interface {
	GetDailySales(ctx context.Context, arg database.GetDailySalesParams) ([]database.GetDailySalesRow, error)
	GetProductSales(ctx context.Context, arg database.GetProductSalesParams) ([]database.GetProductSalesRow, error)
	GetPaymentMethodSummary(ctx context.Context, arg database.GetPaymentMethodSummaryParams) ([]database.GetPaymentMethodSummaryRow, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	store ReportsStore
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(store ReportsStore) *ReportsHandler {
	return &ReportsHandler{store: store}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily-sales", h.DailySales)
	r.Get("/product-sales", h.ProductSales)
	r.Get("/payment-methods", h.PaymentMethods)
}

// --- Response types ---

type dailySalesResponse struct {
	Date          string `json:"date"`
	SaleCount     int64  `json:"sale_count"`
	TotalSubtotal string `json:"total_subtotal"`
	TotalDiscount string `json:"total_discount"`
	TotalRevenue  string `json:"total_revenue"`
}

type productSalesResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int64     `json:"quantity_sold"`
	TotalRevenue string    `json:"total_revenue"`
}

type paymentMethodResponse struct {
	PaymentMethod string `json:"payment_method"`
	SaleCount     int64  `json:"sale_count"`
	TotalAmount   string `json:"total_amount"`
}

// --- Handlers ---

// DailySales returns per-day sales totals for a given date range.
// Cancelled sales are excluded by the query.
func (h *ReportsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetDailySales(r.Context(), database.GetDailySalesParams{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: get daily sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]dailySalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = dailySalesResponse{
			Date:          row.Date,
			SaleCount:     row.SaleCount,
			TotalSubtotal: numericToString(row.TotalSubtotal),
			TotalDiscount: numericToString(row.TotalDiscount),
			TotalRevenue:  numericToString(row.TotalRevenue),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ProductSales returns top selling products by quantity and revenue.
func (h *ReportsHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetProductSales(r.Context(), database.GetProductSalesParams{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: get product sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productSalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = productSalesResponse{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// PaymentMethods returns breakdown of sales by payment method.
func (h *ReportsHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetPaymentMethodSummary(r.Context(), database.GetPaymentMethodSummaryParams{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: get payment method summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]paymentMethodResponse, len(rows))
	for i, row := range rows {
		resp[i] = paymentMethodResponse{
			PaymentMethod: string(row.PaymentMethod),
			SaleCount:     row.SaleCount,
			TotalAmount:   numericToString(row.TotalAmount),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// parseDateRange parses start_date and end_date query params in the
// America/Bogota timezone so report day boundaries match local invoices.
// Defaults to the last 30 days. Returns (startDate, endDate, error) where
// endDate is exclusive (next day midnight).
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		// Fallback to FixedZone if tzdata is missing
		loc = time.FixedZone("COT", -5*3600)
	}

	now := time.Now().In(loc)

	// Default: last 30 days (midnight to midnight in local time)
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -30)
	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		startDate = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		// Make end_date exclusive by adding 1 day
		endDate = t.AddDate(0, 0, 1)
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return startDate, endDate, nil
}
