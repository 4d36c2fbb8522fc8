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
)

// CustomerStore defines the database methods needed by customer handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CustomerStore interface {
	ListCustomers(ctx context.Context, arg database.ListCustomersParams) ([]database.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (database.Customer, error)
	CreateCustomer(ctx context.Context, arg database.CreateCustomerParams) (database.Customer, error)
	UpdateCustomer(ctx context.Context, arg database.UpdateCustomerParams) (database.Customer, error)
	SoftDeleteCustomer(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListCredits(ctx context.Context, arg database.ListCreditsParams) ([]database.Credit, error)
}

// CustomerHandler handles customer CRUD endpoints.
type CustomerHandler struct {
	store CustomerStore
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// RegisterRoutes registers customer CRUD endpoints on the given Chi router.
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Get("/credits", h.Credits)
	})
}

// --- Request / Response types ---

type customerRequest struct {
	Name        string `json:"name"`
	DocumentID  string `json:"document_id"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CreditLimit string `json:"credit_limit"`
}

type customerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DocumentID  string    `json:"document_id"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
	CreditLimit string    `json:"credit_limit"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCustomerResponse(c database.Customer) customerResponse {
	resp := customerResponse{
		ID:          c.ID,
		Name:        c.Name,
		DocumentID:  c.DocumentID,
		CreditLimit: numericToString(c.CreditLimit),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Phone.Valid {
		resp.Phone = &c.Phone.String
	}
	if c.Email.Valid {
		resp.Email = &c.Email.String
	}
	if c.Address.Valid {
		resp.Address = &c.Address.String
	}
	return resp
}

// parseCustomerRequest validates the shared create/update fields.
func parseCustomerRequest(req customerRequest) (database.CreateCustomerParams, string) {
	var params database.CreateCustomerParams

	if req.Name == "" {
		return params, "name is required"
	}
	if req.DocumentID == "" {
		return params, "document_id is required"
	}

	params.Name = req.Name
	params.DocumentID = req.DocumentID

	if req.Phone != "" {
		params.Phone = pgtype.Text{String: req.Phone, Valid: true}
	}
	if req.Email != "" {
		params.Email = pgtype.Text{String: req.Email, Valid: true}
	}
	if req.Address != "" {
		params.Address = pgtype.Text{String: req.Address, Valid: true}
	}

	creditLimit := req.CreditLimit
	if creditLimit == "" {
		creditLimit = "0"
	}
	limit, err := parseMoney(creditLimit)
	if err != nil {
		return params, "invalid credit_limit"
	}
	params.CreditLimit = limit

	return params, ""
}

// --- Handlers ---

// List returns all active customers, with optional search by name or document.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var search pgtype.Text
	if s := r.URL.Query().Get("search"); s != "" {
		search = pgtype.Text{String: s, Valid: true}
	}

	customers, err := h.store.ListCustomers(r.Context(), database.ListCustomersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
		Search: search,
	})
	if err != nil {
		log.Printf("ERROR: list customers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	customer, err := h.store.GetCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		log.Printf("ERROR: get customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// Create adds a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, errMsg := parseCustomerRequest(req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	customer, err := h.store.CreateCustomer(r.Context(), params)
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "document_id already exists"})
			return
		}
		log.Printf("ERROR: create customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

// Update modifies an existing customer.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, errMsg := parseCustomerRequest(req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	customer, err := h.store.UpdateCustomer(r.Context(), database.UpdateCustomerParams{
		ID:          customerID,
		Name:        params.Name,
		DocumentID:  params.DocumentID,
		Phone:       params.Phone,
		Email:       params.Email,
		Address:     params.Address,
		CreditLimit: params.CreditLimit,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "document_id already exists"})
			return
		}
		log.Printf("ERROR: update customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// Delete soft-deletes a customer by setting is_active=false.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	_, err = h.store.SoftDeleteCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		log.Printf("ERROR: delete customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Credits returns the customer's receivables, newest first.
func (h *CustomerHandler) Credits(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	// Verify the customer exists first so a bad ID yields 404, not [].
	_, err = h.store.GetCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		log.Printf("ERROR: get customer for credits: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	limit, offset := parsePagination(r)

	credits, err := h.store.ListCredits(r.Context(), database.ListCreditsParams{
		Limit:      int32(limit),
		Offset:     int32(offset),
		CustomerID: pgtype.UUID{Bytes: customerID, Valid: true},
	})
	if err != nil {
		log.Printf("ERROR: list customer credits: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]creditResponse, len(credits))
	for i, c := range credits {
		resp[i] = toCreditResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}
