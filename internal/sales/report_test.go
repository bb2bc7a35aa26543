package sales

import (
	"testing"
	"time"

	"pos_backend/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) addSale(t *testing.T, ownerID, receipt, amount string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.salesStorage.Set(&Sale{
		ID:            "sale-" + receipt,
		OwnerID:       ownerID,
		TotalAmount:   decimal.RequireFromString(amount),
		PaymentMethod: PaymentCash,
		ReceiptNumber: receipt,
		CreatedAt:     createdAt,
	}))
}

func TestTodaySales(t *testing.T) {
	f := newFixture(t)
	today := startOfDay(time.Now())

	f.addSale(t, "owner-a", "RCP00000001", "30.00", today.Add(2*time.Hour))
	f.addSale(t, "owner-a", "RCP00000002", "45.50", today.Add(time.Hour))
	f.addSale(t, "owner-a", "RCP00000003", "100.00", today.Add(-time.Hour)) // yesterday
	f.addSale(t, "owner-b", "RCP00000004", "999.00", today.Add(time.Hour))  // other owner

	summary, err := f.service.TodaySales("owner-a")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalSales)
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("75.50")),
		"expected revenue 75.50, got %s", summary.TotalRevenue)
	require.Len(t, summary.Sales, 2)
	assert.Equal(t, "RCP00000001", summary.Sales[0].ReceiptNumber, "newest sale first")
}

func TestTodaySales_Empty(t *testing.T) {
	f := newFixture(t)

	summary, err := f.service.TodaySales("owner-a")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSales)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.NotNil(t, summary.Sales)
	assert.Empty(t, summary.Sales)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	addProduct := func(id string, stock int) {
		require.NoError(t, f.catalogStorage.Set(&catalog.Product{
			ID:            id,
			OwnerID:       "owner-a",
			Name:          id,
			Price:         decimal.RequireFromString("10.00"),
			StockQuantity: stock,
		}))
	}
	addProduct("p1", 50)
	addProduct("p2", 3) // low stock
	addProduct("p3", 0) // low stock

	f.addSale(t, "owner-a", "RCP00000001", "30.00", now)
	f.addSale(t, "owner-a", "RCP00000002", "20.00", now.AddDate(0, 0, -3)) // this week only
	f.addSale(t, "owner-a", "RCP00000003", "50.00", now.AddDate(0, 0, -30)) // too old
	f.addSale(t, "owner-b", "RCP00000004", "999.00", now)

	stats, err := f.service.DashboardStats("owner-a")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TodaySales)
	assert.True(t, stats.TodayRevenue.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 2, stats.WeekSales)
	assert.True(t, stats.WeekRevenue.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStockProducts)
}

func TestReportsAreReadOnly(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", "owner-a", "Cola", "10.00", 5)
	sale, err := f.service.CreateSale("owner-a", PaymentCash, []RequestedItem{
		{ProductID: "p1", Quantity: 2},
	})
	require.NoError(t, err)

	_, err = f.service.TodaySales("owner-a")
	require.NoError(t, err)
	_, err = f.service.DashboardStats("owner-a")
	require.NoError(t, err)

	assert.Equal(t, 3, f.stock(t, "owner-a", "p1"))
	stored, err := f.salesStorage.Read("owner-a", sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("20.00")))
}
