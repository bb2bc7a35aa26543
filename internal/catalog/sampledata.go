package catalog

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// sampleProducts is a small demo catalog for trying the API without
// creating products by hand.
var sampleProducts = []ProductInput{
	{Name: "Coca Cola 500ml", Description: "Refreshing cola drink", Price: decimal.RequireFromString("40.00"), StockQuantity: 50, Barcode: "1234567890123", Category: "Beverages"},
	{Name: "Lay's Chips Classic", Description: "Crispy potato chips", Price: decimal.RequireFromString("20.00"), StockQuantity: 30, Barcode: "1234567890124", Category: "Snacks"},
	{Name: "Amul Milk 1L", Description: "Fresh whole milk", Price: decimal.RequireFromString("60.00"), StockQuantity: 25, Barcode: "1234567890125", Category: "Dairy"},
	{Name: "Parle-G Biscuits", Description: "Glucose biscuits", Price: decimal.RequireFromString("15.00"), StockQuantity: 100, Barcode: "1234567890126", Category: "Snacks"},
	{Name: "Maggi Noodles", Description: "2-minute instant noodles", Price: decimal.RequireFromString("12.00"), StockQuantity: 75, Barcode: "1234567890127", Category: "Instant Food"},
	{Name: "Colgate Toothpaste", Description: "Dental care toothpaste", Price: decimal.RequireFromString("85.00"), StockQuantity: 8, Barcode: "1234567890128", Category: "Personal Care"},
	{Name: "Dove Soap", Description: "Moisturizing soap bar", Price: decimal.RequireFromString("45.00"), StockQuantity: 0, Barcode: "1234567890129", Category: "Personal Care"},
	{Name: "Britannia Bread", Description: "Fresh white bread", Price: decimal.RequireFromString("25.00"), StockQuantity: 20, Barcode: "1234567890130", Category: "Bakery"},
	{Name: "Tata Tea Premium", Description: "Premium tea leaves", Price: decimal.RequireFromString("120.00"), StockQuantity: 15, Barcode: "1234567890131", Category: "Beverages"},
	{Name: "Sunfeast Biscuits", Description: "Cream biscuits", Price: decimal.RequireFromString("30.00"), StockQuantity: 5, Barcode: "1234567890132", Category: "Snacks"},
}

// LoadSampleData seeds the demo catalog for one owner. Products whose
// barcode is already taken are skipped, so reseeding is harmless.
func LoadSampleData(service *Service, ownerID string, logger *zap.Logger) {
	loaded := 0
	for _, in := range sampleProducts {
		if _, err := service.CreateProduct(ownerID, in); err != nil {
			logger.Warn("skipping sample product", zap.String("name", in.Name), zap.Error(err))
			continue
		}
		loaded++
	}
	logger.Info("sample data loaded", zap.Int("products", loaded), zap.String("owner_id", ownerID))
}
