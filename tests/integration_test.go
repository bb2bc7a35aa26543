package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos_backend/api"
	"pos_backend/internal/catalog"
	"pos_backend/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := zaptest.NewLogger(t)
	catalogStorage := catalog.NewLocalStorage()
	catalogService := catalog.NewService(catalogStorage, logger)
	salesStorage := sales.NewLocalStorage()
	salesService := sales.NewService(salesStorage, catalogStorage, logger)

	api.InitRoutes(router, catalogService, salesService, logger)
	return router
}

func doJSON(router *gin.Engine, method, path, owner string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, router *gin.Engine, owner, name, price string, stock int) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/products", owner, map[string]any{
		"name":           name,
		"price":          price,
		"stock_quantity": stock,
	})
	require.Equal(t, http.StatusCreated, w.Code, "product creation failed: %s", w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

// TestCheckoutFullFlow walks the whole happy path: create a product, sell
// it, watch stock drop and the sale show up in the reports.
func TestCheckoutFullFlow(t *testing.T) {
	router := newTestRouter(t)
	productID := createProduct(t, router, ownerA, "Cola", "10.00", 5)

	var sale sales.Sale

	t.Run("POST_CreateSale", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", ownerA, map[string]any{
			"payment_method": "cash",
			"items": []map[string]any{
				{"product_id": productID, "quantity": 3},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created for successful sale: %s", w.Body.String())

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
		assert.NotEmpty(t, sale.ID)
		assert.Equal(t, ownerA, sale.OwnerID)
		assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("30.00")), "Expected total 30.00, got %s", sale.TotalAmount)
		assert.Regexp(t, `^RCP[0-9A-F]{8}$`, sale.ReceiptNumber)
		require.Len(t, sale.Items, 1)
		assert.Equal(t, 3, sale.Items[0].Quantity)
	})

	t.Run("GET_ProductShowsDecrementedStock", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products/"+productID, ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var product struct {
			StockQuantity int  `json:"stock_quantity"`
			InStock       bool `json:"in_stock"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, 2, product.StockQuantity)
		assert.True(t, product.InStock)
	})

	t.Run("GET_SaleByID", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/sales/"+sale.ID, ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got sales.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, sale.ReceiptNumber, got.ReceiptNumber)
	})

	t.Run("GET_TodaySales", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/sales/today-sales", ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summary sales.TodaySummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 1, summary.TotalSales)
		assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("30.00")))
		assert.Len(t, summary.Sales, 1)
	})

	t.Run("GET_DashboardStats", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/sales/dashboard-stats", ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats sales.DashboardStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.TodaySales)
		assert.Equal(t, 1, stats.WeekSales)
		assert.Equal(t, 1, stats.TotalProducts)
		assert.Equal(t, 1, stats.LowStockProducts, "stock 2 is below the threshold")
	})
}

func TestCreateSale_InsufficientStockHTTP(t *testing.T) {
	router := newTestRouter(t)
	productID := createProduct(t, router, ownerA, "Cola", "10.00", 2)

	w := doJSON(router, http.MethodPost, "/sales", ownerA, map[string]any{
		"payment_method": "cash",
		"items": []map[string]any{
			{"product_id": productID, "quantity": 3},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
		Items []struct {
			ProductID string `json:"product_id"`
			Requested int    `json:"requested"`
			Available int    `json:"available"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient stock", resp.Error)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, productID, resp.Items[0].ProductID)
	assert.Equal(t, 3, resp.Items[0].Requested)
	assert.Equal(t, 2, resp.Items[0].Available)

	// Stock untouched, no sale recorded.
	got := doJSON(router, http.MethodGet, "/products/"+productID, ownerA, nil)
	var product struct {
		StockQuantity int `json:"stock_quantity"`
	}
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &product))
	assert.Equal(t, 2, product.StockQuantity)

	list := doJSON(router, http.MethodGet, "/sales", ownerA, nil)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestCreateSale_CrossOwnerHTTP(t *testing.T) {
	router := newTestRouter(t)
	mine := createProduct(t, router, ownerA, "Cola", "10.00", 5)
	theirs := createProduct(t, router, ownerB, "Bread", "25.00", 10)

	w := doJSON(router, http.MethodPost, "/sales", ownerA, map[string]any{
		"payment_method": "card",
		"items": []map[string]any{
			{"product_id": mine, "quantity": 1},
			{"product_id": theirs, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "product not found", "other owners' products must look absent")

	// No partial sale of the valid line.
	got := doJSON(router, http.MethodGet, "/products/"+mine, ownerA, nil)
	var product struct {
		StockQuantity int `json:"stock_quantity"`
	}
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &product))
	assert.Equal(t, 5, product.StockQuantity)
}

func TestCreateSale_ValidationHTTP(t *testing.T) {
	router := newTestRouter(t)
	productID := createProduct(t, router, ownerA, "Cola", "10.00", 5)

	t.Run("empty items", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", ownerA, map[string]any{
			"payment_method": "cash",
			"items":          []map[string]any{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero quantity", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", ownerA, map[string]any{
			"payment_method": "cash",
			"items": []map[string]any{
				{"product_id": productID, "quantity": 0},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", ownerA, map[string]any{
			"payment_method": "bitcoin",
			"items": []map[string]any{
				{"product_id": productID, "quantity": 1},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString("{not json"))
		req.Header.Set("X-Owner-ID", ownerA)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductEndpoints(t *testing.T) {
	router := newTestRouter(t)
	createProduct(t, router, ownerA, "Coca Cola 500ml", "40.00", 50)
	lowID := createProduct(t, router, ownerA, "Sunfeast Biscuits", "30.00", 5)
	createProduct(t, router, ownerB, "Keyboard", "75.00", 100)

	t.Run("list is owner scoped", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products", ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 2)
		for _, p := range products {
			assert.NotEqual(t, "Keyboard", p.Name)
		}
	})

	t.Run("search by name", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products/search?q=cola", ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 1)
		assert.Equal(t, "Coca Cola 500ml", products[0].Name)
	})

	t.Run("low stock", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products/low-stock", ownerA, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 1)
		assert.Equal(t, lowID, products[0].ID)
	})

	t.Run("cross-owner read returns 404", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products/"+lowID, ownerB, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update touches product", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, fmt.Sprintf("/products/%s", lowID), ownerA, map[string]any{
			"name":           "Sunfeast Biscuits",
			"price":          "32.00",
			"stock_quantity": 12,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var product struct {
			StockQuantity int  `json:"stock_quantity"`
			InStock       bool `json:"in_stock"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, 12, product.StockQuantity)
		assert.True(t, product.InStock)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/products/"+lowID, ownerA, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		gone := doJSON(router, http.MethodGet, "/products/"+lowID, ownerA, nil)
		assert.Equal(t, http.StatusNotFound, gone.Code)
	})
}

func TestMissingOwnerHeader(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/products", "/sales", "/sales/today-sales", "/sales/dashboard-stats"} {
		w := doJSON(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "GET %s without owner header", path)
	}
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
