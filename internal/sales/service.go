package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pos_backend/internal/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// receiptPrefix and receiptTokenLen define the receipt number format:
// RCP followed by 8 uppercase hex characters.
const (
	receiptPrefix   = "RCP"
	receiptTokenLen = 8
)

// maxReceiptAttempts bounds how often a fresh receipt number is generated
// before the sale is given up as a transient failure.
const maxReceiptAttempts = 5

// CatalogStore is the slice of the catalog the sale engine depends on.
// Implemented by catalog.LocalStorage.
type CatalogStore interface {
	ReserveStock(ownerID string, requests []catalog.StockRequest) (map[string]catalog.StockSnapshot, error)
	ReleaseStock(ownerID string, requests []catalog.StockRequest)
	CountAll(ownerID string) int
	CountLowStock(ownerID string, threshold int) int
}

// Service provides sale creation and read operations on a Storage backend,
// decrementing stock through the catalog.
type Service struct {
	storage Storage
	catalog CatalogStore
	logger  *zap.Logger
}

// NewService creates a new sales Service.
func NewService(storage Storage, catalogStore CatalogStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage: storage,
		catalog: catalogStore,
		logger:  logger,
	}
}

// CreateSale validates and commits a multi-item sale for one owner.
// Either the whole sale commits (sale record, line items and every stock
// decrement) or nothing does.
//
// Validation and stock errors carry enough detail to identify the offending
// products. A product that exists but belongs to another owner is reported
// with the same catalog.ErrNotFound as a missing one.
func (s *Service) CreateSale(ownerID, paymentMethod string, items []RequestedItem) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
	}
	if !ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, paymentMethod)
	}

	requests := make([]catalog.StockRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, catalog.StockRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	// Ownership resolution, stock check and decrement happen inside one
	// critical section in the catalog. Anything after this point must
	// release the reservation on failure.
	snapshots, err := s.catalog.ReserveStock(ownerID, requests)
	if err != nil {
		s.logger.Info("sale rejected",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	sale := &Sale{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		TotalAmount:   decimal.Zero,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
		Items:         make([]SaleItem, 0, len(items)),
	}
	for _, item := range items {
		snap := snapshots[item.ProductID]
		totalPrice := snap.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sale.Items = append(sale.Items, SaleItem{
			ID:          uuid.NewString(),
			SaleID:      sale.ID,
			ProductID:   item.ProductID,
			ProductName: snap.Name,
			Quantity:    item.Quantity,
			UnitPrice:   snap.UnitPrice,
			TotalPrice:  totalPrice,
		})
		sale.TotalAmount = sale.TotalAmount.Add(totalPrice)
	}

	for attempt := 1; attempt <= maxReceiptAttempts; attempt++ {
		sale.ReceiptNumber = newReceiptNumber()
		if s.storage.ReceiptExists(sale.ReceiptNumber) {
			continue
		}

		err := s.storage.Set(sale)
		if errors.Is(err, ErrDuplicateReceipt) {
			// Lost the race on this receipt number; only the number is
			// regenerated, not the whole sale.
			s.logger.Warn("receipt number collision",
				zap.String("receipt_number", sale.ReceiptNumber),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			s.catalog.ReleaseStock(ownerID, requests)
			s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to save sale: %w", err)
		}

		s.logger.Info("sale created",
			zap.String("sale_id", sale.ID),
			zap.String("owner_id", ownerID),
			zap.String("receipt_number", sale.ReceiptNumber),
			zap.String("total_amount", sale.TotalAmount.String()),
			zap.Int("items", len(sale.Items)),
		)
		return sale, nil
	}

	s.catalog.ReleaseStock(ownerID, requests)
	s.logger.Error("receipt generation exhausted, sale rolled back",
		zap.String("owner_id", ownerID),
		zap.Int("attempts", maxReceiptAttempts),
	)
	return nil, ErrTransientCommit
}

// GetSale retrieves one of the owner's sales by ID.
func (s *Service) GetSale(ownerID, id string) (*Sale, error) {
	return s.storage.Read(ownerID, id)
}

// ListSales returns all of the owner's sales, newest first.
func (s *Service) ListSales(ownerID string) ([]*Sale, error) {
	return s.storage.GetAll(ownerID)
}

// newReceiptNumber generates a human-readable receipt number: the RCP
// prefix plus 8 uppercase hex characters of fresh random entropy.
func newReceiptNumber() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:receiptTokenLen]
	return receiptPrefix + strings.ToUpper(token)
}
