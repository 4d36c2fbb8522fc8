package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
)

// MovementStore defines the database methods needed by movement handlers.
// Satisfied by *database.Queries.
type MovementStore interface {
	ListInventoryMovements(ctx context.Context, arg database.ListInventoryMovementsParams) ([]database.InventoryMovement, error)
}

// MovementHandler serves the inventory movement audit trail.
type MovementHandler struct {
	store MovementStore
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(store MovementStore) *MovementHandler {
	return &MovementHandler{store: store}
}

// RegisterRoutes registers movement endpoints on the given Chi router.
func (h *MovementHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// List returns inventory movements, newest first, optionally filtered by product.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	params := database.ListInventoryMovementsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	}

	if s := r.URL.Query().Get("product_id"); s != "" {
		productID, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
			return
		}
		params.ProductID = pgtype.UUID{Bytes: productID, Valid: true}
	}

	movements, err := h.store.ListInventoryMovements(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list inventory movements: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = toMovementResponse(m)
	}

	writeJSON(w, http.StatusOK, resp)
}
