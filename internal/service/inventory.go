package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
)

// Errors returned by the inventory service.
var (
	ErrInvalidAdjustment = errors.New("quantity must be non-zero")
	ErrMissingReason     = errors.New("reason is required")
)

// InventoryStore defines the DB methods needed for stock adjustments.
type InventoryStore interface {
	GetProductForSale(ctx context.Context, id uuid.UUID) (database.GetProductForSaleRow, error)
	DecrementStock(ctx context.Context, arg database.DecrementStockParams) (int32, error)
	IncrementStock(ctx context.Context, arg database.IncrementStockParams) (int32, error)
	CreateInventoryMovement(ctx context.Context, arg database.CreateInventoryMovementParams) (database.InventoryMovement, error)
}

// NewInventoryStore creates an InventoryStore from a DBTX (pool or tx).
type NewInventoryStore func(db database.DBTX) InventoryStore

// AdjustStockRequest is the validated input for a manual stock adjustment.
type AdjustStockRequest struct {
	ProductID uuid.UUID
	Quantity  int32 // signed: positive adds stock, negative removes
	Reason    string
	CreatedBy uuid.UUID
}

// AdjustStockResult is the recorded movement plus a low-stock alert when
// the adjustment left the product at or under its minimum.
type AdjustStockResult struct {
	Movement database.InventoryMovement
	LowStock *LowStockAlert
}

// InventoryService handles manual stock corrections. It shares the atomic
// stock primitives with the sale workflow, so an adjustment can never push
// stock below zero either.
type InventoryService struct {
	pool     TxBeginner
	newStore NewInventoryStore
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(pool TxBeginner, newStore NewInventoryStore) *InventoryService {
	return &InventoryService{pool: pool, newStore: newStore}
}

// AdjustStock applies a signed stock delta and records the ADJUSTMENT
// movement in one transaction.
func (s *InventoryService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*AdjustStockResult, error) {
	if req.Quantity == 0 {
		return nil, ErrInvalidAdjustment
	}
	if req.Reason == "" {
		return nil, ErrMissingReason
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	product, err := store.GetProductForSale(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	var newStock int32
	if req.Quantity > 0 {
		newStock, err = store.IncrementStock(ctx, database.IncrementStockParams{
			ID:       req.ProductID,
			Quantity: req.Quantity,
		})
	} else {
		newStock, err = store.DecrementStock(ctx, database.DecrementStockParams{
			ID:       req.ProductID,
			Quantity: -req.Quantity,
		})
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: requested %d, available %d: %w",
				product.Name, -req.Quantity, product.Stock, ErrInsufficientStock)
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	movement, err := store.CreateInventoryMovement(ctx, database.CreateInventoryMovementParams{
		ProductID:     req.ProductID,
		MovementType:  database.MovementTypeADJUSTMENT,
		Quantity:      req.Quantity,
		PreviousStock: newStock - req.Quantity,
		NewStock:      newStock,
		Reference:     pgtype.Text{String: req.Reason, Valid: true},
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create inventory movement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	result := &AdjustStockResult{Movement: movement}
	if newStock <= product.MinStock {
		result.LowStock = &LowStockAlert{
			ProductID: product.ID,
			Code:      product.Code,
			Name:      product.Name,
			Stock:     newStock,
			MinStock:  product.MinStock,
		}
	}
	return result, nil
}
