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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/santiagosuaza01/suaza-erp-system/internal/middleware"
	"github.com/santiagosuaza01/suaza-erp-system/internal/service"
	"github.com/santiagosuaza01/suaza-erp-system/internal/ws"
	"github.com/shopspring/decimal"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context, arg database.ListProductsParams) ([]database.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	SoftDeleteProduct(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// InventoryServicer defines the service methods needed by stock adjustment
// handlers. Satisfied by *service.InventoryService.
type InventoryServicer interface {
	AdjustStock(ctx context.Context, req service.AdjustStockRequest) (*service.AdjustStockResult, error)
}

// ProductHandler handles product CRUD and stock adjustment endpoints.
type ProductHandler struct {
	store     ProductStore
	inventory InventoryServicer
	hub       *ws.Hub
}

// NewProductHandler creates a new ProductHandler. hub may be nil when no
// WebSocket feed is wired (tests).
func NewProductHandler(store ProductStore, inventory InventoryServicer, hub *ws.Hub) *ProductHandler {
	return &ProductHandler{store: store, inventory: inventory, hub: hub}
}

// RegisterRoutes registers product endpoints on the given Chi router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/stock-adjustments", h.AdjustStock)
	})
}

// --- Request / Response types ---

type productRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Cost        string `json:"cost"`
	Stock       int32  `json:"stock"`
	MinStock    int32  `json:"min_stock"`
	MaxStock    int32  `json:"max_stock"`
	CategoryID  string `json:"category_id"`
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       string    `json:"price"`
	Cost        string    `json:"cost"`
	Stock       int32     `json:"stock"`
	MinStock    int32     `json:"min_stock"`
	MaxStock    int32     `json:"max_stock"`
	CategoryID  *string   `json:"category_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type adjustStockRequest struct {
	Quantity int32  `json:"quantity"`
	Reason   string `json:"reason"`
}

type movementResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int32     `json:"quantity"`
	PreviousStock int32     `json:"previous_stock"`
	NewStock      int32     `json:"new_stock"`
	Reference     *string   `json:"reference"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProductResponse(p database.Product) productResponse {
	resp := productResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Price:     numericToString(p.Price),
		Cost:      numericToString(p.Cost),
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		MaxStock:  p.MaxStock,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Description.Valid {
		resp.Description = &p.Description.String
	}
	if p.CategoryID.Valid {
		s := uuid.UUID(p.CategoryID.Bytes).String()
		resp.CategoryID = &s
	}
	return resp
}

func toMovementResponse(m database.InventoryMovement) movementResponse {
	resp := movementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		MovementType:  string(m.MovementType),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
	if m.Reference.Valid {
		resp.Reference = &m.Reference.String
	}
	return resp
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

var errNegativeAmount = errors.New("negative amount")

// parseMoney parses a non-negative decimal string into a pgtype.Numeric.
func parseMoney(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativeAmount
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

// validateProductRequest checks the shared create/update fields and parses
// the money columns. Returns a 400 message when something is off.
func validateProductRequest(req productRequest) (price, cost pgtype.Numeric, categoryID pgtype.UUID, errMsg string) {
	if req.Code == "" {
		return price, cost, categoryID, "code is required"
	}
	if req.Name == "" {
		return price, cost, categoryID, "name is required"
	}
	if req.Price == "" {
		return price, cost, categoryID, "price is required"
	}

	var err error
	price, err = parseMoney(req.Price)
	if err != nil {
		return price, cost, categoryID, "invalid price"
	}

	if req.Cost != "" {
		cost, err = parseMoney(req.Cost)
		if err != nil {
			return price, cost, categoryID, "invalid cost"
		}
	} else {
		// Cost defaults to zero when omitted
		cost, _ = parseMoney("0")
	}

	if req.MinStock < 0 || req.MaxStock < 0 {
		return price, cost, categoryID, "min_stock and max_stock must be >= 0"
	}

	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return price, cost, categoryID, "invalid category_id"
		}
		categoryID = pgtype.UUID{Bytes: id, Valid: true}
	}

	return price, cost, categoryID, ""
}

// --- Handlers ---

// List returns all active products, with optional search by code or name.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var search pgtype.Text
	if s := r.URL.Query().Get("search"); s != "" {
		search = pgtype.Text{String: s, Valid: true}
	}

	products, err := h.store.ListProducts(r.Context(), database.ListProductsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
		Search: search,
	})
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	product, err := h.store.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Create adds a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "stock must be >= 0"})
		return
	}

	price, cost, categoryID, errMsg := validateProductRequest(req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	var description pgtype.Text
	if req.Description != "" {
		description = pgtype.Text{String: req.Description, Valid: true}
	}

	product, err := h.store.CreateProduct(r.Context(), database.CreateProductParams{
		Code:        req.Code,
		Name:        req.Name,
		Description: description,
		Price:       price,
		Cost:        cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		CategoryID:  categoryID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "product code already exists"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category does not exist"})
			return
		}
		log.Printf("ERROR: create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update modifies an existing product. Stock is excluded on purpose:
// stock only changes through sales and stock adjustments so the movement
// trail stays complete.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	price, cost, categoryID, errMsg := validateProductRequest(req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	var description pgtype.Text
	if req.Description != "" {
		description = pgtype.Text{String: req.Description, Valid: true}
	}

	product, err := h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		ID:          productID,
		Code:        req.Code,
		Name:        req.Name,
		Description: description,
		Price:       price,
		Cost:        cost,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		CategoryID:  categoryID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "product code already exists"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category does not exist"})
			return
		}
		log.Printf("ERROR: update product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete soft-deletes a product by setting is_active=false.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	_, err = h.store.SoftDeleteProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: delete product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdjustStock handles POST /products/{id}/stock-adjustments. The quantity
// is signed: positive receives stock, negative removes it.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.inventory.AdjustStock(r.Context(), service.AdjustStockRequest{
		ProductID: productID,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		CreatedBy: claims.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidAdjustment),
			errors.Is(err, service.ErrMissingReason),
			errors.Is(err, service.ErrInsufficientStock):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: adjust stock: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	if h.hub != nil && result.LowStock != nil {
		broadcastLowStock(h.hub, *result.LowStock)
	}

	writeJSON(w, http.StatusCreated, toMovementResponse(result.Movement))
}

// broadcastLowStock pushes a product.low_stock event to the sale feed.
func broadcastLowStock(hub *ws.Hub, alert service.LowStockAlert) {
	payload, err := json.Marshal(map[string]interface{}{
		"product_id": alert.ProductID,
		"code":       alert.Code,
		"name":       alert.Name,
		"stock":      alert.Stock,
		"min_stock":  alert.MinStock,
	})
	if err != nil {
		return
	}
	hub.Broadcast(ws.Event{Type: "product.low_stock", Payload: payload})
}
