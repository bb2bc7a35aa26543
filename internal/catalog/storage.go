package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when a product does not exist in the owner's
// catalog. A product owned by somebody else produces the exact same error,
// so callers cannot probe for other owners' inventory.
var ErrNotFound = errors.New("product not found")

// ErrEmptyID is returned when trying to store a product with an empty ID.
var ErrEmptyID = errors.New("empty product ID")

// ErrDuplicateBarcode is returned when a barcode is already taken by
// another product, in any catalog.
var ErrDuplicateBarcode = errors.New("barcode already in use")

// ErrInvalidQuantity is returned when a reservation asks for a quantity
// that is not a sane positive amount, including per-product totals large
// enough to overflow the stock arithmetic.
var ErrInvalidQuantity = errors.New("invalid quantity requested")

// maxReservableQuantity caps the combined quantity of one product in a
// single reservation. Anything above it could never be honest stock and
// keeps the aggregation far away from integer overflow.
const maxReservableQuantity = math.MaxInt32

// StockShortage describes one product that could not cover a requested quantity.
type StockShortage struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError reports every product in a reservation whose stock
// was too low. The reservation as a whole is rejected.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		names = append(names, fmt.Sprintf("%s (requested %d, available %d)", s.Name, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(names, ", ")
}

// Storage is the interface for the product catalog storage layer.
type Storage interface {
	Set(product *Product) error
	Read(ownerID, id string) (*Product, error)
	GetAll(ownerID string) ([]*Product, error)
	Delete(ownerID, id string) error
	CountAll(ownerID string) int
	CountLowStock(ownerID string, threshold int) int
	ReserveStock(ownerID string, requests []StockRequest) (map[string]StockSnapshot, error)
	ReleaseStock(ownerID string, requests []StockRequest)
}

// LocalStorage provides an in-memory implementation for storing products.
// All methods are safe for concurrent use.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]*Product
}

// NewLocalStorage instantiates a new LocalStorage with an empty catalog.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Product{},
	}
}

// Set inserts or replaces a product. Returns ErrEmptyID if the product has
// an empty ID and ErrDuplicateBarcode if its barcode belongs to another
// product anywhere in the system.
func (l *LocalStorage) Set(product *Product) error {
	if product.ID == "" {
		return ErrEmptyID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if product.Barcode != "" {
		for _, other := range l.m {
			if other.ID != product.ID && other.Barcode == product.Barcode {
				return fmt.Errorf("%w: %s", ErrDuplicateBarcode, product.Barcode)
			}
		}
	}

	clone := *product
	l.m[product.ID] = &clone
	return nil
}

// Read retrieves a copy of a product from the owner's catalog.
// Returns ErrNotFound if the product does not exist or belongs to another owner.
func (l *LocalStorage) Read(ownerID, id string) (*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.m[id]
	if !ok || p.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// GetAll retrieves the owner's full catalog, ordered by product name.
func (l *LocalStorage) GetAll(ownerID string) ([]*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	products := make([]*Product, 0)
	for _, p := range l.m {
		if p.OwnerID != ownerID {
			continue
		}
		clone := *p
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// Delete removes a product from the owner's catalog.
// Returns ErrNotFound if the product does not exist or belongs to another owner.
func (l *LocalStorage) Delete(ownerID, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.m[id]
	if !ok || p.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}

// CountAll returns the number of products in the owner's catalog.
func (l *LocalStorage) CountAll(ownerID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, p := range l.m {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count
}

// CountLowStock returns the number of the owner's products with
// stock_quantity below threshold.
func (l *LocalStorage) CountLowStock(ownerID string, threshold int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, p := range l.m {
		if p.OwnerID == ownerID && p.StockQuantity < threshold {
			count++
		}
	}
	return count
}

// ReserveStock validates and decrements stock for a whole sale in one
// critical section, so two concurrent reservations for the same product can
// never both pass the stock check. On success it returns a price/name
// snapshot per product; on any failure nothing is decremented.
//
// Returns ErrInvalidQuantity when any line or combined per-product quantity
// is out of range, ErrNotFound (wrapped, listing the offending ids) when any
// product is absent or owned by another tenant, and *InsufficientStockError
// when any product cannot cover the requested quantity.
func (l *LocalStorage) ReserveStock(ownerID string, requests []StockRequest) (map[string]StockSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// The same product may appear on several lines; the stock check has to
	// see the combined quantity. The running sum is guarded before adding,
	// so a pair of huge line quantities can never wrap negative and slip
	// past the stock check.
	needed := make(map[string]int)
	for _, req := range requests {
		if req.Quantity < 1 || req.Quantity > maxReservableQuantity ||
			needed[req.ProductID] > maxReservableQuantity-req.Quantity {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, req.ProductID)
		}
		needed[req.ProductID] += req.Quantity
	}

	var missing []string
	for id := range needed {
		p, ok := l.m[id]
		if !ok || p.OwnerID != ownerID {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(missing, ", "))
	}

	var shortages []StockShortage
	for id, qty := range needed {
		p := l.m[id]
		if p.StockQuantity < qty {
			shortages = append(shortages, StockShortage{
				ProductID: id,
				Name:      p.Name,
				Requested: qty,
				Available: p.StockQuantity,
			})
		}
	}
	if len(shortages) > 0 {
		sort.Slice(shortages, func(i, j int) bool {
			return shortages[i].ProductID < shortages[j].ProductID
		})
		return nil, &InsufficientStockError{Shortages: shortages}
	}

	snapshots := make(map[string]StockSnapshot, len(needed))
	for id, qty := range needed {
		p := l.m[id]
		p.StockQuantity -= qty
		snapshots[id] = StockSnapshot{
			ProductID: id,
			Name:      p.Name,
			UnitPrice: p.Price,
		}
	}
	return snapshots, nil
}

// ReleaseStock returns previously reserved quantities to stock. It is the
// compensation path for a reservation whose sale could not be committed;
// requests must match the reservation exactly.
func (l *LocalStorage) ReleaseStock(ownerID string, requests []StockRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, req := range requests {
		p, ok := l.m[req.ProductID]
		if !ok || p.OwnerID != ownerID {
			continue
		}
		p.StockQuantity += req.Quantity
	}
}
