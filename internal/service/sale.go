package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/shopspring/decimal"
)

// taxRate is the Colombian IVA applied to every sale.
var taxRate = decimal.NewFromFloat(0.19)

const creditTermDays = 30

// Errors returned by the sale service.
var (
	ErrEmptyItems           = errors.New("items are required")
	ErrInvalidQuantity      = errors.New("quantity must be > 0")
	ErrInvalidUnitPrice     = errors.New("invalid unit_price")
	ErrInvalidDiscount      = errors.New("discount must be >= 0 and not exceed subtotal")
	ErrInvalidPaymentMethod = errors.New("invalid payment_method")
	ErrCreditNeedsCustomer  = errors.New("customer_id is required for CREDIT sales")
	ErrInvalidProductID     = errors.New("invalid product_id")
	ErrInvalidCustomerID    = errors.New("invalid customer_id")
	ErrProductNotFound      = errors.New("product not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrSalePaid             = errors.New("paid sales cannot be deleted")
	ErrCreditHasPayments    = errors.New("credit has recorded payments")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SaleStore defines the DB methods needed by the sale workflow.
// Satisfied by *database.Queries (and its WithTx variant).
type SaleStore interface {
	NextInvoiceNumber(ctx context.Context) (int32, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (database.Customer, error)
	GetProductForSale(ctx context.Context, id uuid.UUID) (database.GetProductForSaleRow, error)
	DecrementStock(ctx context.Context, arg database.DecrementStockParams) (int32, error)
	IncrementStock(ctx context.Context, arg database.IncrementStockParams) (int32, error)
	CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	CreateInventoryMovement(ctx context.Context, arg database.CreateInventoryMovementParams) (database.InventoryMovement, error)
	CreateCredit(ctx context.Context, arg database.CreateCreditParams) (database.Credit, error)
	GetSaleForUpdate(ctx context.Context, id uuid.UUID) (database.Sale, error)
	UpdateSaleStatus(ctx context.Context, arg database.UpdateSaleStatusParams) (database.Sale, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.SaleItem, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	GetCreditBySale(ctx context.Context, saleID uuid.UUID) (database.Credit, error)
	ListCreditPaymentsByCredit(ctx context.Context, creditID uuid.UUID) ([]database.CreditPayment, error)
	DeleteCreditBySale(ctx context.Context, saleID uuid.UUID) error
}

// NewSaleStore creates a SaleStore from a DBTX (pool or tx).
type NewSaleStore func(db database.DBTX) SaleStore

// CreateSaleRequest is the validated input for creating a sale.
type CreateSaleRequest struct {
	CreatedBy     uuid.UUID
	CustomerID    string
	CustomerName  string
	PaymentMethod string
	Discount      string
	Notes         string
	Items         []CreateSaleItemRequest
}

// CreateSaleItemRequest is a single line in the sale. UnitPrice is optional;
// when empty the product's current price is snapshotted.
type CreateSaleItemRequest struct {
	ProductID string
	Quantity  int32
	UnitPrice string
}

// LowStockAlert reports a product whose stock fell to or below its minimum.
type LowStockAlert struct {
	ProductID uuid.UUID
	Code      string
	Name      string
	Stock     int32
	MinStock  int32
}

// CreateSaleResult is the created sale with its lines and, for CREDIT
// sales, the receivable opened alongside it.
type CreateSaleResult struct {
	Sale     database.Sale
	Items    []database.SaleItem
	Credit   *database.Credit
	LowStock []LowStockAlert
}

// SaleService handles the sale transaction workflow.
type SaleService struct {
	pool     TxBeginner
	newStore NewSaleStore
}

// NewSaleService creates a new SaleService.
func NewSaleService(pool TxBeginner, newStore NewSaleStore) *SaleService {
	return &SaleService{pool: pool, newStore: newStore}
}

// processedLine holds a validated line before any write happens.
type processedLine struct {
	productID uuid.UUID
	code      string
	name      string
	minStock  int32
	quantity  int32
	unitPrice decimal.Decimal
	lineTotal decimal.Decimal
}

// CreateSale validates the request, decrements stock, computes totals and
// persists the sale, its items, the movement trail and (for CREDIT sales)
// the receivable, all in one transaction. Any failure rolls everything back.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*CreateSaleResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if !isValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if req.PaymentMethod == string(database.PaymentMethodCREDIT) && req.CustomerID == "" {
		return nil, ErrCreditNeedsCustomer
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		if item.UnitPrice != "" {
			p, err := decimal.NewFromString(item.UnitPrice)
			if err != nil || p.IsNegative() {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidUnitPrice)
			}
		}
	}

	discount := decimal.Zero
	if req.Discount != "" {
		d, err := decimal.NewFromString(req.Discount)
		if err != nil || d.IsNegative() {
			return nil, ErrInvalidDiscount
		}
		discount = d
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Resolve customer ---
	customerID := pgtype.UUID{}
	customerName := "General Customer"
	if req.CustomerID != "" {
		cid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, ErrInvalidCustomerID
		}
		customer, err := store.GetCustomer(ctx, cid)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrCustomerNotFound
			}
			return nil, fmt.Errorf("get customer: %w", err)
		}
		customerID = pgtype.UUID{Bytes: customer.ID, Valid: true}
		customerName = customer.Name
	}
	if req.CustomerName != "" {
		customerName = req.CustomerName
	}

	// --- Validate lines and compute subtotal (no writes yet) ---
	subtotal := decimal.Zero
	var lines []processedLine
	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidProductID)
		}
		product, err := store.GetProductForSale(ctx, productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrProductNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get product: %w", i, err)
		}

		unitPrice := numericToDecimal(product.Price)
		if item.UnitPrice != "" {
			unitPrice, _ = decimal.NewFromString(item.UnitPrice)
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		subtotal = subtotal.Add(lineTotal)

		lines = append(lines, processedLine{
			productID: productID,
			code:      product.Code,
			name:      product.Name,
			minStock:  product.MinStock,
			quantity:  item.Quantity,
			unitPrice: unitPrice,
			lineTotal: lineTotal,
		})
	}

	if discount.GreaterThan(subtotal) {
		return nil, ErrInvalidDiscount
	}

	// --- Totals: 19% tax on the discounted base ---
	taxable := subtotal.Sub(discount)
	taxAmount := taxable.Mul(taxRate)
	totalAmount := taxable.Add(taxAmount)

	// --- Reserve invoice number (row lock serializes concurrent sales) ---
	nextNum, err := store.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("next invoice number: %w", err)
	}
	invoiceNumber := fmt.Sprintf("INV-%06d", nextNum)

	// --- Decrement stock per line; the conditional update is the guard ---
	type stockChange struct {
		line   processedLine
		before int32
		after  int32
	}
	var changes []stockChange
	var lowStock []LowStockAlert
	for i, line := range lines {
		newStock, err := store.DecrementStock(ctx, database.DecrementStockParams{
			ID:       line.productID,
			Quantity: line.quantity,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Re-read inside the tx so the error names what is left.
				product, perr := store.GetProductForSale(ctx, line.productID)
				if perr != nil {
					return nil, fmt.Errorf("items[%d]: %w", i, ErrInsufficientStock)
				}
				return nil, fmt.Errorf("items[%d]: %s: requested %d, available %d: %w",
					i, product.Name, line.quantity, product.Stock, ErrInsufficientStock)
			}
			return nil, fmt.Errorf("items[%d]: decrement stock: %w", i, err)
		}
		changes = append(changes, stockChange{
			line:   line,
			before: newStock + line.quantity,
			after:  newStock,
		})
		if newStock <= line.minStock {
			lowStock = append(lowStock, LowStockAlert{
				ProductID: line.productID,
				Code:      line.code,
				Name:      line.name,
				Stock:     newStock,
				MinStock:  line.minStock,
			})
		}
	}

	// --- Insert sale ---
	status := database.SaleStatusPAID
	if req.PaymentMethod == string(database.PaymentMethodCREDIT) {
		status = database.SaleStatusPENDING
	}
	notes := pgtype.Text{}
	if req.Notes != "" {
		notes = pgtype.Text{String: req.Notes, Valid: true}
	}
	sale, err := store.CreateSale(ctx, database.CreateSaleParams{
		InvoiceNumber: invoiceNumber,
		CustomerID:    customerID,
		CustomerName:  customerName,
		Subtotal:      decimalToNumeric(subtotal),
		Discount:      decimalToNumeric(discount),
		TaxAmount:     decimalToNumeric(taxAmount),
		TotalAmount:   decimalToNumeric(totalAmount),
		PaymentMethod: database.PaymentMethod(req.PaymentMethod),
		Status:        status,
		Notes:         notes,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	// --- Insert items and movement trail ---
	var items []database.SaleItem
	for _, c := range changes {
		item, err := store.CreateSaleItem(ctx, database.CreateSaleItemParams{
			SaleID:     sale.ID,
			ProductID:  c.line.productID,
			Quantity:   c.line.quantity,
			UnitPrice:  decimalToNumeric(c.line.unitPrice),
			TotalPrice: decimalToNumeric(c.line.lineTotal),
		})
		if err != nil {
			return nil, fmt.Errorf("create sale item: %w", err)
		}
		items = append(items, item)

		_, err = store.CreateInventoryMovement(ctx, database.CreateInventoryMovementParams{
			ProductID:     c.line.productID,
			MovementType:  database.MovementTypeSALE,
			Quantity:      -c.line.quantity,
			PreviousStock: c.before,
			NewStock:      c.after,
			Reference:     pgtype.Text{String: invoiceNumber, Valid: true},
			CreatedBy:     req.CreatedBy,
		})
		if err != nil {
			return nil, fmt.Errorf("create inventory movement: %w", err)
		}
	}

	// --- CREDIT: open the receivable ---
	var credit *database.Credit
	if status == database.SaleStatusPENDING {
		c, err := store.CreateCredit(ctx, database.CreateCreditParams{
			CustomerID: uuid.UUID(customerID.Bytes),
			SaleID:     sale.ID,
			Amount:     decimalToNumeric(totalAmount),
			Balance:    decimalToNumeric(totalAmount),
			DueDate:    time.Now().AddDate(0, 0, creditTermDays),
			Status:     database.CreditStatusACTIVE,
			Notes:      pgtype.Text{},
		})
		if err != nil {
			return nil, fmt.Errorf("create credit: %w", err)
		}
		credit = &c
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CreateSaleResult{
		Sale:     sale,
		Items:    items,
		Credit:   credit,
		LowStock: lowStock,
	}, nil
}

// UpdateStatus transitions a sale between lifecycle states. A transition
// into CANCELLED restores stock, appends one SALE_CANCELLATION movement
// per line and voids any open credit, all in the same transaction. A sale
// whose credit already has payments cannot be cancelled.
func (s *SaleService) UpdateStatus(ctx context.Context, saleID, userID uuid.UUID, newStatus string) (*database.Sale, error) {
	if newStatus != string(database.SaleStatusPAID) && newStatus != string(database.SaleStatusCANCELLED) {
		return nil, ErrInvalidStatus
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	sale, err := store.GetSaleForUpdate(ctx, saleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	if !canTransition(sale.Status, database.SaleStatus(newStatus)) {
		return nil, fmt.Errorf("%s -> %s: %w", sale.Status, newStatus, ErrInvalidTransition)
	}

	updated, err := store.UpdateSaleStatus(ctx, database.UpdateSaleStatusParams{
		ID:            saleID,
		Status:        database.SaleStatus(newStatus),
		CurrentStatus: sale.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s -> %s: %w", sale.Status, newStatus, ErrInvalidTransition)
		}
		return nil, fmt.Errorf("update sale status: %w", err)
	}

	if database.SaleStatus(newStatus) == database.SaleStatusCANCELLED {
		if err := s.releaseCredit(ctx, store, sale.ID); err != nil {
			return nil, err
		}
		reference := fmt.Sprintf("Sale %s cancelled", sale.InvoiceNumber)
		if err := s.restoreStock(ctx, store, sale.ID, userID, reference); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &updated, nil
}

// DeleteSale removes a sale and its items, compensating stock the same way
// a cancellation does and dropping the linked credit. PAID sales and sales
// whose credit has recorded payments are never deleted.
func (s *SaleService) DeleteSale(ctx context.Context, saleID, userID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	sale, err := store.GetSaleForUpdate(ctx, saleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("get sale: %w", err)
	}
	if sale.Status == database.SaleStatusPAID {
		return ErrSalePaid
	}

	// A credit sale keeps its receivable row until the sale goes away.
	// Cancellation already dropped it, so this is a no-op for CANCELLED.
	if err := s.releaseCredit(ctx, store, sale.ID); err != nil {
		return err
	}

	// CANCELLED sales already had their stock restored.
	if sale.Status != database.SaleStatusCANCELLED {
		reference := fmt.Sprintf("Sale %s deleted", sale.InvoiceNumber)
		if err := s.restoreStock(ctx, store, sale.ID, userID, reference); err != nil {
			return err
		}
	}

	if err := store.DeleteSale(ctx, saleID); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// releaseCredit voids the receivable opened for a CREDIT sale. Once money
// has been received against it the sale is locked in and the caller gets
// ErrCreditHasPayments. Runs inside the caller's transaction.
func (s *SaleService) releaseCredit(ctx context.Context, store SaleStore, saleID uuid.UUID) error {
	credit, err := store.GetCreditBySale(ctx, saleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get credit: %w", err)
	}

	payments, err := store.ListCreditPaymentsByCredit(ctx, credit.ID)
	if err != nil {
		return fmt.Errorf("list credit payments: %w", err)
	}
	if len(payments) > 0 {
		return ErrCreditHasPayments
	}

	if err := store.DeleteCreditBySale(ctx, saleID); err != nil {
		return fmt.Errorf("delete credit: %w", err)
	}
	return nil
}

// restoreStock puts every line's quantity back and appends the
// compensating movement. Runs inside the caller's transaction.
func (s *SaleService) restoreStock(ctx context.Context, store SaleStore, saleID, userID uuid.UUID, reference string) error {
	items, err := store.ListSaleItemsBySale(ctx, saleID)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	for _, item := range items {
		newStock, err := store.IncrementStock(ctx, database.IncrementStockParams{
			ID:       item.ProductID,
			Quantity: item.Quantity,
		})
		if err != nil {
			return fmt.Errorf("increment stock: %w", err)
		}
		_, err = store.CreateInventoryMovement(ctx, database.CreateInventoryMovementParams{
			ProductID:     item.ProductID,
			MovementType:  database.MovementTypeSALECANCELLATION,
			Quantity:      item.Quantity,
			PreviousStock: newStock - item.Quantity,
			NewStock:      newStock,
			Reference:     pgtype.Text{String: reference, Valid: true},
			CreatedBy:     userID,
		})
		if err != nil {
			return fmt.Errorf("create inventory movement: %w", err)
		}
	}
	return nil
}

// --- Helpers ---

func canTransition(from, to database.SaleStatus) bool {
	switch from {
	case database.SaleStatusPENDING:
		return to == database.SaleStatusPAID || to == database.SaleStatusCANCELLED
	case database.SaleStatusPAID:
		return to == database.SaleStatusCANCELLED
	}
	return false
}

func isValidPaymentMethod(s string) bool {
	switch database.PaymentMethod(s) {
	case database.PaymentMethodCASH, database.PaymentMethodCARD,
		database.PaymentMethodTRANSFER, database.PaymentMethodCREDIT:
		return true
	}
	return false
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
