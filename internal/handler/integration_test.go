//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/santiagosuaza01/suaza-erp-system/internal/config"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/santiagosuaza01/suaza-erp-system/internal/router"
	"github.com/santiagosuaza01/suaza-erp-system/internal/ws"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

// TestIntegrationFlow exercises the full API lifecycle against a real
// PostgreSQL database: bootstrap an admin, build a small catalog, run a cash
// sale, a credit sale with a settling payment, and a cancellation that
// restores stock.
func TestIntegrationFlow(t *testing.T) {
	ctx := context.Background()

	pgContainer, connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	cfg := &config.Config{
		Port:        "8081",
		DatabaseURL: connStr,
		JWTSecret:   "integration-test-secret",
	}
	queries := database.New(pool)
	hub := ws.NewHub()
	// NOTE: hub.Run() goroutine leaks on test exit; Hub has no shutdown mechanism.
	// Acceptable for tests.
	go hub.Run()

	r := router.New(cfg, queries, pool, hub)

	server := httptest.NewServer(r)
	defer server.Close()

	// --- 1. Bootstrap admin user (manual DB insert, same as cmd/seed) ---
	adminID := createAdminUser(t, ctx, pool)

	// --- 2. Login as admin ---
	token := login(t, server, "admin@test.com", "password123")

	// --- 3. Create a seller through the API ---
	sellerResp := httpPostJSON(t, server, "/users", map[string]interface{}{
		"email":     "seller@test.com",
		"password":  "password123",
		"full_name": "Test Seller",
		"role":      "SELLER",
	}, token)
	sellerID := uuid.MustParse(sellerResp["id"].(string))

	// --- 4. Create category and product ---
	categoryResp := httpPostJSON(t, server, "/categories", map[string]interface{}{
		"name":        "Granos",
		"description": "Arroz, frijol, lentejas",
	}, token)
	categoryID := uuid.MustParse(categoryResp["id"].(string))

	productResp := httpPostJSON(t, server, "/products", map[string]interface{}{
		"code":        "ARR-001",
		"name":        "Arroz Diana 1kg",
		"price":       "5000",
		"cost":        "4000",
		"stock":       50,
		"min_stock":   10,
		"max_stock":   200,
		"category_id": categoryID.String(),
	}, token)
	productID := uuid.MustParse(productResp["id"].(string))

	// --- 5. Cash sale: 4 units with a 2000 discount ---
	// subtotal 20000, taxable 18000, tax 3420, total 21420
	saleResp := httpPostJSON(t, server, "/sales", map[string]interface{}{
		"payment_method": "CASH",
		"discount":       "2000",
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 4},
		},
	}, token)
	saleID := uuid.MustParse(saleResp["id"].(string))

	if got := saleResp["subtotal"].(string); got != "20000.00" {
		t.Fatalf("sale subtotal: got %s, want 20000.00", got)
	}
	if got := saleResp["tax_amount"].(string); got != "3420.00" {
		t.Fatalf("sale tax_amount: got %s, want 3420.00", got)
	}
	if got := saleResp["total_amount"].(string); got != "21420.00" {
		t.Fatalf("sale total_amount: got %s, want 21420.00", got)
	}
	if got := saleResp["status"].(string); got != "PAID" {
		t.Fatalf("cash sale status: got %s, want PAID", got)
	}
	if got := saleResp["invoice_number"].(string); got != "INV-000001" {
		t.Fatalf("invoice_number: got %s, want INV-000001", got)
	}

	// --- 6. Stock decremented and SALE movement recorded ---
	productAfter := httpGetJSON(t, server, "/products/"+productID.String(), token)
	if got := productAfter["stock"].(float64); got != 46 {
		t.Fatalf("stock after sale: got %v, want 46", got)
	}

	movements := httpGetJSONList(t, server, "/inventory/movements?product_id="+productID.String(), token)
	if len(movements) != 1 {
		t.Fatalf("movements after sale: got %d, want 1", len(movements))
	}
	if got := movements[0]["movement_type"].(string); got != "SALE" {
		t.Fatalf("movement type: got %s, want SALE", got)
	}

	// --- 7. Credit sale for a registered customer ---
	customerResp := httpPostJSON(t, server, "/customers", map[string]interface{}{
		"name":         "Maria Lopez",
		"document_id":  "1017231456",
		"credit_limit": "500000",
	}, token)
	customerID := uuid.MustParse(customerResp["id"].(string))

	creditSaleResp := httpPostJSON(t, server, "/sales", map[string]interface{}{
		"customer_id":    customerID.String(),
		"payment_method": "CREDIT",
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 2},
		},
	}, token)
	creditSaleID := uuid.MustParse(creditSaleResp["id"].(string))

	if got := creditSaleResp["status"].(string); got != "PENDING" {
		t.Fatalf("credit sale status: got %s, want PENDING", got)
	}
	creditObj, ok := creditSaleResp["credit"].(map[string]interface{})
	if !ok {
		t.Fatal("credit sale response missing credit object")
	}
	creditID := uuid.MustParse(creditObj["id"].(string))
	// subtotal 10000, tax 1900, total 11900
	if got := creditObj["balance"].(string); got != "11900.00" {
		t.Fatalf("credit balance: got %s, want 11900.00", got)
	}

	// --- 8. Settle the credit; sale flips to PAID ---
	paymentResp := httpPostJSON(t, server, "/credits/"+creditID.String()+"/payments", map[string]interface{}{
		"amount": "11900",
	}, token)
	settledCredit := paymentResp["credit"].(map[string]interface{})
	if got := settledCredit["status"].(string); got != "PAID" {
		t.Fatalf("credit status after settlement: got %s, want PAID", got)
	}

	settledSale := httpGetJSON(t, server, "/sales/"+creditSaleID.String(), token)
	if got := settledSale["status"].(string); got != "PAID" {
		t.Fatalf("sale status after credit settlement: got %s, want PAID", got)
	}

	// --- 9. Cancel the cash sale; stock restored with SALE_CANCELLATION ---
	httpPatchJSON(t, server, "/sales/"+saleID.String()+"/status", map[string]interface{}{
		"status": "CANCELLED",
	}, token)

	productFinal := httpGetJSON(t, server, "/products/"+productID.String(), token)
	// 50 - 4 (sale) - 2 (credit sale) + 4 (cancellation) = 48
	if got := productFinal["stock"].(float64); got != 48 {
		t.Fatalf("stock after cancellation: got %v, want 48", got)
	}

	movementsFinal := httpGetJSONList(t, server, "/inventory/movements?product_id="+productID.String(), token)
	if len(movementsFinal) != 3 {
		t.Fatalf("movements after cancellation: got %d, want 3", len(movementsFinal))
	}

	// --- 10. Delete a pending credit sale; credit and stock both revert ---
	secondCreditResp := httpPostJSON(t, server, "/sales", map[string]interface{}{
		"customer_id":    customerID.String(),
		"payment_method": "CREDIT",
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 3},
		},
	}, token)
	secondSaleID := uuid.MustParse(secondCreditResp["id"].(string))
	secondCreditID := uuid.MustParse(secondCreditResp["credit"].(map[string]interface{})["id"].(string))

	httpDelete(t, server, "/sales/"+secondSaleID.String(), token)

	productAfterDelete := httpGetJSON(t, server, "/products/"+productID.String(), token)
	// 48 - 3 (credit sale) + 3 (delete compensation) = 48
	if got := productAfterDelete["stock"].(float64); got != 48 {
		t.Fatalf("stock after sale deletion: got %v, want 48", got)
	}

	if code := httpGetStatus(t, server, "/sales/"+secondSaleID.String(), token); code != http.StatusNotFound {
		t.Fatalf("deleted sale lookup: got status %d, want 404", code)
	}
	if code := httpGetStatus(t, server, "/credits/"+secondCreditID.String(), token); code != http.StatusNotFound {
		t.Fatalf("voided credit lookup: got status %d, want 404", code)
	}

	t.Logf("Integration test passed: container=%s, admin=%s, seller=%s, product=%s, sale=%s, credit=%s",
		pgContainer.GetContainerID(), adminID, sellerID, productID, saleID, creditID)
}

// --- Setup helpers ---

func setupPostgresContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("suaza_test"),
		tcpostgres.WithUsername("suaza"),
		tcpostgres.WithPassword("suaza"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}

	return pgContainer, connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// Path relative to this test file's package directory.
	m, err := migrate.NewWithDatabaseInstance(
		"file://../../db/migrations",
		"postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}

func createAdminUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	var id uuid.UUID
	err = pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, hashed_password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		"Test Admin", "admin@test.com", string(hashedPassword), "ADMIN",
	).Scan(&id)
	if err != nil {
		t.Fatalf("create admin user: %v", err)
	}
	return id
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	resp := httpPostJSON(t, server, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	token, ok := resp["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("login failed: no access_token in response: %+v", resp)
	}
	return token
}

// --- HTTP helpers ---

func httpPostJSON(t *testing.T, server *httptest.Server, path string, body interface{}, token string) map[string]interface{} {
	t.Helper()
	return httpDoJSON(t, server, http.MethodPost, path, body, token)
}

func httpPatchJSON(t *testing.T, server *httptest.Server, path string, body interface{}, token string) map[string]interface{} {
	t.Helper()
	return httpDoJSON(t, server, http.MethodPatch, path, body, token)
}

func httpDoJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}, token string) map[string]interface{} {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		t.Fatalf("%s %s: status %d: %s", method, path, resp.StatusCode, errBody.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return result
}

func httpDelete(t *testing.T, server *httptest.Server, path, token string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		t.Fatalf("DELETE %s: status %d: %s", path, resp.StatusCode, errBody.String())
	}
}

func httpGetStatus(t *testing.T, server *httptest.Server, path, token string) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func httpGetJSON(t *testing.T, server *httptest.Server, path, token string) map[string]interface{} {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode GET %s response: %v", path, err)
	}
	return result
}

func httpGetJSONList(t *testing.T, server *httptest.Server, path, token string) []map[string]interface{} {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode GET %s response: %v", path, err)
	}
	return result
}
