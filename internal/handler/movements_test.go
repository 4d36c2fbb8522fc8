package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/santiagosuaza01/suaza-erp-system/internal/handler"
)

// --- Mock store ---

type mockMovementStore struct {
	movements []database.InventoryMovement
}

func (m *mockMovementStore) ListInventoryMovements(_ context.Context, arg database.ListInventoryMovementsParams) ([]database.InventoryMovement, error) {
	if !arg.ProductID.Valid {
		return m.movements, nil
	}
	var result []database.InventoryMovement
	for _, mv := range m.movements {
		if mv.ProductID == uuid.UUID(arg.ProductID.Bytes) {
			result = append(result, mv)
		}
	}
	return result, nil
}

// --- Helpers ---

func setupMovementRouter(store *mockMovementStore) *chi.Mux {
	h := handler.NewMovementHandler(store)
	r := chi.NewRouter()
	r.Route("/inventory/movements", h.RegisterRoutes)
	return r
}

func makeMovement(productID uuid.UUID, movementType database.MovementType, quantity, previous, next int32, reference string) database.InventoryMovement {
	m := database.InventoryMovement{
		ID:            uuid.New(),
		ProductID:     productID,
		MovementType:  movementType,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		CreatedBy:     uuid.New(),
		CreatedAt:     time.Now(),
	}
	if reference != "" {
		m.Reference = pgtype.Text{String: reference, Valid: true}
	}
	return m
}

// --- Tests ---

func TestMovementList(t *testing.T) {
	productID := uuid.New()
	store := &mockMovementStore{
		movements: []database.InventoryMovement{
			makeMovement(productID, database.MovementTypeSALE, -2, 40, 38, "INV-000042"),
			makeMovement(productID, database.MovementTypeSALECANCELLATION, 2, 38, 40, "INV-000042"),
		},
	}
	router := setupMovementRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/inventory/movements", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeListResponse(t, rr)
	if len(resp) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(resp))
	}
	if resp[0]["movement_type"] != "SALE" {
		t.Errorf("movement_type: got %v, want SALE", resp[0]["movement_type"])
	}
	if resp[0]["reference"] != "INV-000042" {
		t.Errorf("reference: got %v, want INV-000042", resp[0]["reference"])
	}
	if resp[1]["movement_type"] != "SALE_CANCELLATION" {
		t.Errorf("movement_type: got %v, want SALE_CANCELLATION", resp[1]["movement_type"])
	}
}

func TestMovementListProductFilter(t *testing.T) {
	productID := uuid.New()
	store := &mockMovementStore{
		movements: []database.InventoryMovement{
			makeMovement(productID, database.MovementTypeADJUSTMENT, -5, 40, 35, ""),
			makeMovement(uuid.New(), database.MovementTypeSALE, -1, 10, 9, "INV-000001"),
		},
	}
	router := setupMovementRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/inventory/movements?product_id="+productID.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(resp))
	}
	if resp[0]["product_id"] != productID.String() {
		t.Errorf("product_id: got %v, want %v", resp[0]["product_id"], productID)
	}
	if resp[0]["reference"] != nil {
		t.Errorf("reference: got %v, want null", resp[0]["reference"])
	}
}

func TestMovementListInvalidProductID(t *testing.T) {
	router := setupMovementRouter(&mockMovementStore{})

	req := httptest.NewRequest(http.MethodGet, "/inventory/movements?product_id=abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}
