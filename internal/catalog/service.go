package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation errors for product input.
var (
	ErrNameRequired = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must be greater than or equal to zero")
	ErrInvalidStock = errors.New("stock_quantity must be greater than or equal to zero")
)

// ProductInput carries the caller-supplied fields for creating or updating
// a product. Identity, ownership and timestamps are assigned by the service.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Barcode       string          `json:"barcode"`
	Category      string          `json:"category"`
}

// Service provides owner-scoped catalog management on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new catalog Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func validateInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.Price.LessThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	if in.StockQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}

// CreateProduct adds a new product to the owner's catalog.
func (s *Service) CreateProduct(ownerID string, in ProductInput) (*Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &Product{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Barcode:       in.Barcode,
		Category:      in.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.Set(product); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", product.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("owner_id", ownerID),
		zap.String("name", product.Name),
	)
	return product, nil
}

// GetProduct retrieves one product from the owner's catalog.
func (s *Service) GetProduct(ownerID, id string) (*Product, error) {
	return s.storage.Read(ownerID, id)
}

// UpdateProduct replaces the caller-editable fields of a product and
// touches its updated timestamp.
func (s *Service) UpdateProduct(ownerID, id string, in ProductInput) (*Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	product, err := s.storage.Read(ownerID, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.StockQuantity = in.StockQuantity
	product.Barcode = in.Barcode
	product.Category = in.Category
	product.UpdatedAt = time.Now()

	if err := s.storage.Set(product); err != nil {
		s.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the owner's catalog.
func (s *Service) DeleteProduct(ownerID, id string) error {
	if err := s.storage.Delete(ownerID, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id), zap.String("owner_id", ownerID))
	return nil
}

// ListProducts returns the owner's full catalog.
func (s *Service) ListProducts(ownerID string) ([]*Product, error) {
	return s.storage.GetAll(ownerID)
}

// Search returns the owner's products whose name or barcode contains the
// query, case-insensitive. An empty query returns the full catalog.
func (s *Service) Search(ownerID, query string) ([]*Product, error) {
	all, err := s.storage.GetAll(ownerID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	q := strings.ToLower(query)
	matched := make([]*Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Barcode), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// LowStock returns the owner's products with stock below LowStockThreshold.
func (s *Service) LowStock(ownerID string) ([]*Product, error) {
	all, err := s.storage.GetAll(ownerID)
	if err != nil {
		return nil, err
	}

	low := make([]*Product, 0)
	for _, p := range all {
		if p.StockQuantity < LowStockThreshold {
			low = append(low, p)
		}
	}
	return low, nil
}
