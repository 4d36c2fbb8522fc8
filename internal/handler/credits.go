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
)

// CreditServicer defines the service methods needed by credit handlers.
// Satisfied by *service.CreditService; narrow interface for testability.
type CreditServicer interface {
	RecordPayment(ctx context.Context, creditID, receivedBy uuid.UUID, amountStr string) (*service.RecordPaymentResult, error)
}

// CreditStore defines the database methods needed by the credit read
// endpoints. Satisfied by *database.Queries.
type CreditStore interface {
	ListCredits(ctx context.Context, arg database.ListCreditsParams) ([]database.Credit, error)
	GetCredit(ctx context.Context, id uuid.UUID) (database.Credit, error)
	ListCreditPaymentsByCredit(ctx context.Context, creditID uuid.UUID) ([]database.CreditPayment, error)
}

// CreditHandler handles customer credit (receivable) endpoints.
type CreditHandler struct {
	svc   CreditServicer
	store CreditStore
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(svc CreditServicer, store CreditStore) *CreditHandler {
	return &CreditHandler{svc: svc, store: store}
}

// RegisterRoutes registers credit endpoints on the given Chi router.
func (h *CreditHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/payments", h.ListPayments)
		r.Post("/payments", h.RecordPayment)
	})
}

// --- Request / Response types ---

type recordPaymentRequest struct {
	Amount string `json:"amount"`
}

type creditResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	SaleID     uuid.UUID `json:"sale_id"`
	Amount     string    `json:"amount"`
	Balance    string    `json:"balance"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type creditPaymentResponse struct {
	ID         uuid.UUID `json:"id"`
	CreditID   uuid.UUID `json:"credit_id"`
	Amount     string    `json:"amount"`
	ReceivedBy uuid.UUID `json:"received_by"`
	PaidAt     time.Time `json:"paid_at"`
}

// recordPaymentResponse returns the payment together with the updated
// credit so clients see the new balance without a second round trip.
type recordPaymentResponse struct {
	Payment creditPaymentResponse `json:"payment"`
	Credit  creditResponse        `json:"credit"`
}

func toCreditResponse(c database.Credit) creditResponse {
	resp := creditResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		SaleID:     c.SaleID,
		Amount:     numericToString(c.Amount),
		Balance:    numericToString(c.Balance),
		DueDate:    c.DueDate,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Notes.Valid {
		resp.Notes = &c.Notes.String
	}
	return resp
}

func toCreditPaymentResponse(p database.CreditPayment) creditPaymentResponse {
	return creditPaymentResponse{
		ID:         p.ID,
		CreditID:   p.CreditID,
		Amount:     numericToString(p.Amount),
		ReceivedBy: p.ReceivedBy,
		PaidAt:     p.PaidAt,
	}
}

// --- Handlers ---

// List returns credits, optionally filtered by status or customer.
func (h *CreditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	params := database.ListCreditsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		params.Status = database.NullCreditStatus{CreditStatus: database.CreditStatus(s), Valid: true}
	}
	if s := r.URL.Query().Get("customer_id"); s != "" {
		customerID, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer_id"})
			return
		}
		params.CustomerID = pgtype.UUID{Bytes: customerID, Valid: true}
	}

	credits, err := h.store.ListCredits(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list credits: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]creditResponse, len(credits))
	for i, c := range credits {
		resp[i] = toCreditResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single credit by ID.
func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	creditID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credit ID"})
		return
	}

	credit, err := h.store.GetCredit(r.Context(), creditID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "credit not found"})
			return
		}
		log.Printf("ERROR: get credit: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCreditResponse(credit))
}

// ListPayments returns the payment history for a credit, oldest first.
func (h *CreditHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	creditID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credit ID"})
		return
	}

	// Verify the credit exists first so a bad ID yields 404, not [].
	_, err = h.store.GetCredit(r.Context(), creditID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "credit not found"})
			return
		}
		log.Printf("ERROR: get credit for payments: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	payments, err := h.store.ListCreditPaymentsByCredit(r.Context(), creditID)
	if err != nil {
		log.Printf("ERROR: list credit payments: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]creditPaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toCreditPaymentResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// RecordPayment handles POST /credits/{id}/payments.
func (h *CreditHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	creditID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credit ID"})
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.RecordPayment(r.Context(), creditID, claims.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCreditNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrCreditAlreadyPaid):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPaymentAmount),
			errors.Is(err, service.ErrPaymentExceedsDebt):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: record credit payment: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, recordPaymentResponse{
		Payment: toCreditPaymentResponse(result.Payment),
		Credit:  toCreditResponse(result.Credit),
	})
}
