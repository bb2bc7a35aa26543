package api

import (
	"errors"
	"net/http"

	"pos_backend/internal/catalog"
	"pos_backend/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for
// sale creation and reporting.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// handleCreateSale handles the POST /sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req struct {
		PaymentMethod string                `json:"payment_method"`
		Items         []sales.RequestedItem `json:"items"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.CreateSale(ownerID(ctx), req.PaymentMethod, req.Items)
	if err != nil {
		var stockErr *catalog.InsufficientStockError
		switch {
		case errors.Is(err, sales.ErrEmptyItems),
			errors.Is(err, sales.ErrInvalidQuantity),
			errors.Is(err, sales.ErrInvalidPaymentMethod),
			errors.Is(err, catalog.ErrInvalidQuantity),
			errors.Is(err, catalog.ErrNotFound):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &stockErr):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "insufficient stock",
				"items": stockErr.Shortages,
			})
		case errors.Is(err, sales.ErrTransientCommit):
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to create sale", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sale"})
		}
		return
	}

	salesCreatedTotal.WithLabelValues(sale.PaymentMethod).Inc()
	ctx.JSON(http.StatusCreated, sale)
}

// handleGetSale handles the GET /sales/:id endpoint.
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.GetSale(ownerID(ctx), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

// handleListSales handles the GET /sales endpoint.
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	result, err := h.salesService.ListSales(ownerID(ctx))
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// handleTodaySales handles the GET /sales/today-sales endpoint.
func (h *salesHandler) handleTodaySales(ctx *gin.Context) {
	summary, err := h.salesService.TodaySales(ownerID(ctx))
	if err != nil {
		h.logger.Error("failed to build today summary", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build today summary"})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// handleDashboardStats handles the GET /sales/dashboard-stats endpoint.
func (h *salesHandler) handleDashboardStats(ctx *gin.Context) {
	stats, err := h.salesService.DashboardStats(ownerID(ctx))
	if err != nil {
		h.logger.Error("failed to build dashboard stats", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard stats"})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
