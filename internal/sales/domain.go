package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

// ValidPaymentMethod reports whether method is one of the accepted values.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// Sale represents one committed checkout. Sales are append-only: once
// committed they are never updated.
type Sale struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	ReceiptNumber string          `json:"receipt_number"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItem      `json:"items"`
}

// SaleItem is one line of a sale: a quantity of one product at the price
// it had when the sale was committed. UnitPrice is a snapshot; later price
// changes on the product do not affect it.
type SaleItem struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// RequestedItem is one line of an incoming sale request.
type RequestedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
