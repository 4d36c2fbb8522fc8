package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/santiagosuaza01/suaza-erp-system/internal/middleware"
	"github.com/santiagosuaza01/suaza-erp-system/internal/service"
	"github.com/santiagosuaza01/suaza-erp-system/internal/ws"
	"github.com/shopspring/decimal"
)

// SaleServicer defines the service methods needed by sale handlers.
// Satisfied by *service.SaleService; narrow interface for testability.
type SaleServicer interface {
	CreateSale(ctx context.Context, req service.CreateSaleRequest) (*service.CreateSaleResult, error)
	UpdateStatus(ctx context.Context, saleID, userID uuid.UUID, newStatus string) (*database.Sale, error)
	DeleteSale(ctx context.Context, saleID, userID uuid.UUID) error
}

// SaleStore defines the database methods needed by the sale read endpoints.
// Satisfied by *database.Queries; narrow interface for testability.
type SaleStore interface {
	GetSale(ctx context.Context, id uuid.UUID) (database.Sale, error)
	ListSales(ctx context.Context, arg database.ListSalesParams) ([]database.Sale, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.SaleItem, error)
}

// SaleHandler handles sale endpoints.
type SaleHandler struct {
	svc   SaleServicer
	store SaleStore
	hub   *ws.Hub
}

// NewSaleHandler creates a new SaleHandler. hub may be nil when no
// WebSocket feed is wired (tests).
func NewSaleHandler(svc SaleServicer, store SaleStore, hub *ws.Hub) *SaleHandler {
	return &SaleHandler{svc: svc, store: store, hub: hub}
}

// RegisterRoutes registers sale endpoints on the given Chi router.
func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type createSaleRequest struct {
	CustomerID    string                  `json:"customer_id"`
	CustomerName  string                  `json:"customer_name"`
	PaymentMethod string                  `json:"payment_method"`
	Discount      string                  `json:"discount"`
	Notes         string                  `json:"notes"`
	Items         []createSaleItemRequest `json:"items"`
}

type createSaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type saleResponse struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    *string            `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	Subtotal      string             `json:"subtotal"`
	Discount      string             `json:"discount"`
	TaxAmount     string             `json:"tax_amount"`
	TotalAmount   string             `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Notes         *string            `json:"notes"`
	CreatedBy     uuid.UUID          `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Items         []saleItemResponse `json:"items,omitempty"`
	Credit        *creditResponse    `json:"credit,omitempty"`
}

type saleItemResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	UnitPrice  string    `json:"unit_price"`
	TotalPrice string    `json:"total_price"`
}

// saleListResponse wraps a list of sales with pagination metadata.
type saleListResponse struct {
	Sales  []saleResponse `json:"sales"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type updateSaleStatusRequest struct {
	Status string `json:"status"`
}

func toSaleResponse(s database.Sale) saleResponse {
	resp := saleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		CustomerName:  s.CustomerName,
		Subtotal:      numericToString(s.Subtotal),
		Discount:      numericToString(s.Discount),
		TaxAmount:     numericToString(s.TaxAmount),
		TotalAmount:   numericToString(s.TotalAmount),
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.CustomerID.Valid {
		id := uuid.UUID(s.CustomerID.Bytes).String()
		resp.CustomerID = &id
	}
	if s.Notes.Valid {
		resp.Notes = &s.Notes.String
	}
	return resp
}

func toSaleItemResponse(item database.SaleItem) saleItemResponse {
	return saleItemResponse{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  numericToString(item.UnitPrice),
		TotalPrice: numericToString(item.TotalPrice),
	}
}

func toCreateSaleResponse(result *service.CreateSaleResult) saleResponse {
	resp := toSaleResponse(result.Sale)
	resp.Items = make([]saleItemResponse, len(result.Items))
	for i, item := range result.Items {
		resp.Items[i] = toSaleItemResponse(item)
	}
	if result.Credit != nil {
		credit := toCreditResponse(*result.Credit)
		resp.Credit = &credit
	}
	return resp
}

// --- Handlers ---

// Create handles POST /sales.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items := make([]service.CreateSaleItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateSaleItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	result, err := h.svc.CreateSale(r.Context(), service.CreateSaleRequest{
		CreatedBy:     claims.UserID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound),
			errors.Is(err, service.ErrCustomerNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case isSaleValidationError(err):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: create sale: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	if h.hub != nil {
		h.broadcastSaleEvent("sale.created", result.Sale)
		for _, alert := range result.LowStock {
			broadcastLowStock(h.hub, alert)
		}
	}

	writeJSON(w, http.StatusCreated, toCreateSaleResponse(result))
}

// List handles GET /sales.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	params := database.ListSalesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		params.Status = database.NullSaleStatus{SaleStatus: database.SaleStatus(s), Valid: true}
	}
	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date format, use YYYY-MM-DD"})
			return
		}
		params.StartDate = pgtype.Timestamptz{Time: t, Valid: true}
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date format, use YYYY-MM-DD"})
			return
		}
		params.EndDate = pgtype.Timestamptz{Time: t, Valid: true}
	}

	sales, err := h.store.ListSales(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toSaleResponse(s)
	}

	writeJSON(w, http.StatusOK, saleListResponse{
		Sales:  resp,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /sales/{id}.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	sale, err := h.store.GetSale(r.Context(), saleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		}
		log.Printf("ERROR: get sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListSaleItemsBySale(r.Context(), saleID)
	if err != nil {
		log.Printf("ERROR: list sale items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toSaleResponse(sale)
	resp.Items = make([]saleItemResponse, len(items))
	for i, item := range items {
		resp.Items[i] = toSaleItemResponse(item)
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /sales/{id}/status.
func (h *SaleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	var req updateSaleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	sale, err := h.svc.UpdateStatus(r.Context(), saleID, claims.UserID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrCreditHasPayments):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: update sale status: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	if h.hub != nil {
		h.broadcastSaleEvent("sale.status_changed", *sale)
	}

	writeJSON(w, http.StatusOK, toSaleResponse(*sale))
}

// Delete handles DELETE /sales/{id}.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	if err := h.svc.DeleteSale(r.Context(), saleID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrSalePaid):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrCreditHasPayments):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: delete sale: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	if h.hub != nil {
		payload, err := json.Marshal(map[string]string{"id": saleID.String()})
		if err == nil {
			h.hub.Broadcast(ws.Event{Type: "sale.deleted", Payload: payload})
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

// isSaleValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isSaleValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidUnitPrice) ||
		errors.Is(err, service.ErrInvalidDiscount) ||
		errors.Is(err, service.ErrInvalidPaymentMethod) ||
		errors.Is(err, service.ErrCreditNeedsCustomer) ||
		errors.Is(err, service.ErrInvalidProductID) ||
		errors.Is(err, service.ErrInvalidCustomerID) ||
		errors.Is(err, service.ErrInsufficientStock)
}

func (h *SaleHandler) broadcastSaleEvent(eventType string, sale database.Sale) {
	payload, err := json.Marshal(map[string]string{
		"id":             sale.ID.String(),
		"invoice_number": sale.InvoiceNumber,
		"status":         string(sale.Status),
		"total_amount":   numericToString(sale.TotalAmount),
	})
	if err != nil {
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: payload})
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}
