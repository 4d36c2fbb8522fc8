package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
)

type mockCreditStore struct {
	getCreditForUpdateFn  func(ctx context.Context, id uuid.UUID) (database.Credit, error)
	createCreditPaymentFn func(ctx context.Context, arg database.CreateCreditPaymentParams) (database.CreditPayment, error)
	updateCreditBalanceFn func(ctx context.Context, arg database.UpdateCreditBalanceParams) (database.Credit, error)
	updateSaleStatusFn    func(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error)
}

func (m *mockCreditStore) GetCreditForUpdate(ctx context.Context, id uuid.UUID) (database.Credit, error) {
	return m.getCreditForUpdateFn(ctx, id)
}
func (m *mockCreditStore) CreateCreditPayment(ctx context.Context, arg database.CreateCreditPaymentParams) (database.CreditPayment, error) {
	return m.createCreditPaymentFn(ctx, arg)
}
func (m *mockCreditStore) UpdateCreditBalance(ctx context.Context, arg database.UpdateCreditBalanceParams) (database.Credit, error) {
	return m.updateCreditBalanceFn(ctx, arg)
}
func (m *mockCreditStore) UpdateSaleStatus(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error) {
	return m.updateSaleStatusFn(ctx, arg)
}

func newTestCreditService(store *mockCreditStore) (*CreditService, *mockTx) {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	newStore := func(db database.DBTX) CreditStore { return store }
	return NewCreditService(pool, newStore), tx
}

func creditFixture(id, saleID uuid.UUID, balance string) database.Credit {
	return database.Credit{
		ID:         id,
		SaleID:     saleID,
		CustomerID: uuid.New(),
		Amount:     makeNumeric("59500.00"),
		Balance:    makeNumeric(balance),
		Status:     database.CreditStatusACTIVE,
	}
}

func defaultCreditStore(creditID, saleID uuid.UUID, balance string) *mockCreditStore {
	return &mockCreditStore{
		getCreditForUpdateFn: func(ctx context.Context, id uuid.UUID) (database.Credit, error) {
			if id == creditID {
				return creditFixture(creditID, saleID, balance), nil
			}
			return database.Credit{}, pgx.ErrNoRows
		},
		createCreditPaymentFn: func(ctx context.Context, arg database.CreateCreditPaymentParams) (database.CreditPayment, error) {
			return database.CreditPayment{
				ID:         uuid.New(),
				CreditID:   arg.CreditID,
				Amount:     arg.Amount,
				ReceivedBy: arg.ReceivedBy,
			}, nil
		},
		updateCreditBalanceFn: func(ctx context.Context, arg database.UpdateCreditBalanceParams) (database.Credit, error) {
			c := creditFixture(creditID, saleID, "0")
			c.Balance = arg.Balance
			c.Status = arg.Status
			return c, nil
		},
		updateSaleStatusFn: func(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error) {
			return database.Sale{ID: arg.ID, Status: arg.Status}, nil
		},
	}
}

func TestRecordPayment_PartialPayment(t *testing.T) {
	creditID := uuid.New()
	store := defaultCreditStore(creditID, uuid.New(), "59500.00")

	var capturedUpdate database.UpdateCreditBalanceParams
	updateFn := store.updateCreditBalanceFn
	store.updateCreditBalanceFn = func(ctx context.Context, arg database.UpdateCreditBalanceParams) (database.Credit, error) {
		capturedUpdate = arg
		return updateFn(ctx, arg)
	}
	store.updateSaleStatusFn = func(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error) {
		t.Fatal("partial payment must not flip the sale")
		return database.Sale{}, nil
	}

	svc, _ := newTestCreditService(store)
	result, err := svc.RecordPayment(context.Background(), creditID, uuid.New(), "20000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !numericEquals(capturedUpdate.Balance, "39500.00") {
		t.Errorf("balance: got %v, want 39500.00", numericToDecimal(capturedUpdate.Balance))
	}
	if capturedUpdate.Status != database.CreditStatusACTIVE {
		t.Errorf("status: got %v, want ACTIVE", capturedUpdate.Status)
	}
	if !numericEquals(result.Payment.Amount, "20000.00") {
		t.Errorf("payment amount: got %v, want 20000.00", numericToDecimal(result.Payment.Amount))
	}
}

func TestRecordPayment_SettlingMarksPaidAndFlipsSale(t *testing.T) {
	creditID := uuid.New()
	saleID := uuid.New()
	store := defaultCreditStore(creditID, saleID, "20000.00")

	var capturedSale database.UpdateSaleStatusParams
	store.updateSaleStatusFn = func(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error) {
		capturedSale = arg
		return database.Sale{ID: arg.ID, Status: arg.Status}, nil
	}

	svc, _ := newTestCreditService(store)
	result, err := svc.RecordPayment(context.Background(), creditID, uuid.New(), "20000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Credit.Status != database.CreditStatusPAID {
		t.Errorf("credit status: got %v, want PAID", result.Credit.Status)
	}
	if capturedSale.ID != saleID || capturedSale.Status != database.SaleStatusPAID {
		t.Errorf("sale update: got %v -> %v, want %v -> PAID", capturedSale.ID, capturedSale.Status, saleID)
	}
	if capturedSale.CurrentStatus != database.SaleStatusPENDING {
		t.Errorf("sale guard: got %v, want PENDING", capturedSale.CurrentStatus)
	}
}

func TestRecordPayment_OverpaymentRejected(t *testing.T) {
	creditID := uuid.New()
	store := defaultCreditStore(creditID, uuid.New(), "10000.00")
	store.createCreditPaymentFn = func(ctx context.Context, arg database.CreateCreditPaymentParams) (database.CreditPayment, error) {
		t.Fatal("no payment row on overpayment")
		return database.CreditPayment{}, nil
	}

	svc, tx := newTestCreditService(store)
	_, err := svc.RecordPayment(context.Background(), creditID, uuid.New(), "10000.01")
	if !errors.Is(err, ErrPaymentExceedsDebt) {
		t.Fatalf("expected ErrPaymentExceedsDebt, got: %v", err)
	}
	if tx.committed {
		t.Error("transaction must not commit")
	}
}

func TestRecordPayment_ZeroAmountRejected(t *testing.T) {
	store := defaultCreditStore(uuid.New(), uuid.New(), "10000.00")
	svc, _ := newTestCreditService(store)

	for _, amount := range []string{"0", "-5", "abc", ""} {
		_, err := svc.RecordPayment(context.Background(), uuid.New(), uuid.New(), amount)
		if !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Errorf("amount %q: expected ErrInvalidPaymentAmount, got: %v", amount, err)
		}
	}
}

func TestRecordPayment_AlreadyPaid(t *testing.T) {
	creditID := uuid.New()
	store := defaultCreditStore(creditID, uuid.New(), "0.00")
	store.getCreditForUpdateFn = func(ctx context.Context, id uuid.UUID) (database.Credit, error) {
		c := creditFixture(creditID, uuid.New(), "0.00")
		c.Status = database.CreditStatusPAID
		return c, nil
	}

	svc, _ := newTestCreditService(store)
	_, err := svc.RecordPayment(context.Background(), creditID, uuid.New(), "100")
	if !errors.Is(err, ErrCreditAlreadyPaid) {
		t.Fatalf("expected ErrCreditAlreadyPaid, got: %v", err)
	}
}

func TestRecordPayment_NotFound(t *testing.T) {
	store := defaultCreditStore(uuid.New(), uuid.New(), "100.00")
	svc, _ := newTestCreditService(store)

	_, err := svc.RecordPayment(context.Background(), uuid.New(), uuid.New(), "100")
	if !errors.Is(err, ErrCreditNotFound) {
		t.Fatalf("expected ErrCreditNotFound, got: %v", err)
	}
}
