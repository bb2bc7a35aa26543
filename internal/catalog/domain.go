package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product counts as low stock.
const LowStockThreshold = 10

// Product represents a sellable item in an owner's catalog.
type Product struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Barcode       string          `json:"barcode,omitempty"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InStock reports whether the product has any stock left. It is derived
// from StockQuantity, never stored.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductView is the wire shape of a Product, carrying the derived in_stock flag.
type ProductView struct {
	*Product
	InStock bool `json:"in_stock"`
}

// View returns the product ready for serialization.
func (p *Product) View() ProductView {
	return ProductView{Product: p, InStock: p.InStock()}
}

// Views maps a product slice to its wire shape.
func Views(products []*Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views
}

// StockRequest asks for a quantity of one product inside a reservation.
type StockRequest struct {
	ProductID string
	Quantity  int
}

// StockSnapshot captures the product state a reservation was granted against.
// UnitPrice is the price at reservation time; later price changes must not
// leak into an already-reserved sale.
type StockSnapshot struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
}
