package sales

import (
	"sort"
	"sync"
)

// Storage is the interface for the sales storage layer.
type Storage interface {
	// Set stores a committed sale. It enforces receipt-number uniqueness
	// and returns ErrDuplicateReceipt on a collision.
	Set(sale *Sale) error
	Read(ownerID, id string) (*Sale, error)
	GetAll(ownerID string) ([]*Sale, error)
	ReceiptExists(receiptNumber string) bool
}

// LocalStorage provides an in-memory implementation for storing sales.
// All methods are safe for concurrent use.
type LocalStorage struct {
	mu       sync.RWMutex
	m        map[string]*Sale
	receipts map[string]struct{}
}

// NewLocalStorage instantiates a new LocalStorage for sales.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m:        map[string]*Sale{},
		receipts: map[string]struct{}{},
	}
}

// cloneSale copies a sale together with its items, so callers and the
// store never share mutable state.
func cloneSale(s *Sale) *Sale {
	clone := *s
	clone.Items = append([]SaleItem(nil), s.Items...)
	return &clone
}

// Set stores a sale. Returns ErrEmptyID if the sale has an empty ID and
// ErrDuplicateReceipt if its receipt number is already taken, which makes
// the store the final authority on receipt uniqueness.
func (l *LocalStorage) Set(sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.receipts[sale.ReceiptNumber]; taken {
		return ErrDuplicateReceipt
	}
	l.receipts[sale.ReceiptNumber] = struct{}{}
	l.m[sale.ID] = cloneSale(sale)
	return nil
}

// Read retrieves a copy of a sale from the owner's records by ID.
// Returns ErrNotFound if the sale is not found or belongs to another owner.
func (l *LocalStorage) Read(ownerID, id string) (*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.m[id]
	if !ok || s.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return cloneSale(s), nil
}

// GetAll retrieves copies of all the owner's sales, newest first.
func (l *LocalStorage) GetAll(ownerID string) ([]*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Sale, 0)
	for _, s := range l.m {
		if s.OwnerID == ownerID {
			result = append(result, cloneSale(s))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ReceiptExists reports whether a receipt number is already taken.
func (l *LocalStorage) ReceiptExists(receiptNumber string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, taken := l.receipts[receiptNumber]
	return taken
}
