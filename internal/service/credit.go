package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/shopspring/decimal"
)

// Errors returned by the credit service.
var (
	ErrCreditNotFound       = errors.New("credit not found")
	ErrCreditAlreadyPaid    = errors.New("credit is already paid")
	ErrInvalidPaymentAmount = errors.New("amount must be > 0")
	ErrPaymentExceedsDebt   = errors.New("amount exceeds outstanding balance")
)

// CreditStore defines the DB methods needed to settle receivables.
type CreditStore interface {
	GetCreditForUpdate(ctx context.Context, id uuid.UUID) (database.Credit, error)
	CreateCreditPayment(ctx context.Context, arg database.CreateCreditPaymentParams) (database.CreditPayment, error)
	UpdateCreditBalance(ctx context.Context, arg database.UpdateCreditBalanceParams) (database.Credit, error)
	UpdateSaleStatus(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error)
}

// NewCreditStore creates a CreditStore from a DBTX (pool or tx).
type NewCreditStore func(db database.DBTX) CreditStore

// RecordPaymentResult is the payment together with the credit after the
// balance was decremented.
type RecordPaymentResult struct {
	Payment database.CreditPayment
	Credit  database.Credit
}

// CreditService handles receivable settlement.
type CreditService struct {
	pool     TxBeginner
	newStore NewCreditStore
}

// NewCreditService creates a new CreditService.
func NewCreditService(pool TxBeginner, newStore NewCreditStore) *CreditService {
	return &CreditService{pool: pool, newStore: newStore}
}

// RecordPayment registers a payment against a credit and decrements its
// balance. Settling the last peso marks the credit PAID and flips the
// underlying sale from PENDING to PAID. The credit row is locked for the
// duration, so two cashiers cannot overpay it between them.
func (s *CreditService) RecordPayment(ctx context.Context, creditID, receivedBy uuid.UUID, amountStr string) (*RecordPaymentResult, error) {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	credit, err := store.GetCreditForUpdate(ctx, creditID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCreditNotFound
		}
		return nil, fmt.Errorf("get credit: %w", err)
	}
	if credit.Status == database.CreditStatusPAID {
		return nil, ErrCreditAlreadyPaid
	}

	balance := numericToDecimal(credit.Balance)
	if amount.GreaterThan(balance) {
		return nil, fmt.Errorf("balance %s: %w", balance.StringFixed(2), ErrPaymentExceedsDebt)
	}

	payment, err := store.CreateCreditPayment(ctx, database.CreateCreditPaymentParams{
		CreditID:   creditID,
		Amount:     decimalToNumeric(amount),
		ReceivedBy: receivedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create credit payment: %w", err)
	}

	newBalance := balance.Sub(amount)
	newStatus := credit.Status
	if newBalance.IsZero() {
		newStatus = database.CreditStatusPAID
	}
	updated, err := store.UpdateCreditBalance(ctx, database.UpdateCreditBalanceParams{
		ID:      creditID,
		Balance: decimalToNumeric(newBalance),
		Status:  newStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("update credit balance: %w", err)
	}

	if newStatus == database.CreditStatusPAID {
		_, err := store.UpdateSaleStatus(ctx, database.UpdateSaleStatusParams{
			ID:            credit.SaleID,
			Status:        database.SaleStatusPAID,
			CurrentStatus: database.SaleStatusPENDING,
		})
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update sale status: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &RecordPaymentResult{Payment: payment, Credit: updated}, nil
}
