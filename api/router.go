package api

import (
	"net/http"

	"pos_backend/internal/catalog"
	"pos_backend/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitRoutes registers all catalog, sale and reporting endpoints on the
// given Gin engine. Every endpoint below requires an owner identity; the
// serving layer stays thin and all behavior lives in the services.
func InitRoutes(e *gin.Engine, catalogService *catalog.Service, salesService *sales.Service, logger *zap.Logger) {
	productHandler := NewProductHandler(catalogService, logger)
	salesHandler := NewSalesHandler(salesService, logger)

	owned := e.Group("/", RequireOwner())
	{
		owned.POST("/products", productHandler.handleCreateProduct)
		owned.GET("/products", productHandler.handleListProducts)
		owned.GET("/products/search", productHandler.handleSearchProducts)
		owned.GET("/products/low-stock", productHandler.handleLowStock)
		owned.GET("/products/:id", productHandler.handleGetProduct)
		owned.PUT("/products/:id", productHandler.handleUpdateProduct)
		owned.DELETE("/products/:id", productHandler.handleDeleteProduct)

		owned.POST("/sales", salesHandler.handleCreateSale)
		owned.GET("/sales", salesHandler.handleListSales)
		owned.GET("/sales/today-sales", salesHandler.handleTodaySales)
		owned.GET("/sales/dashboard-stats", salesHandler.handleDashboardStats)
		owned.GET("/sales/:id", salesHandler.handleGetSale)
	}

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
