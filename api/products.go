package api

import (
	"errors"
	"net/http"

	"pos_backend/internal/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// productHandler holds the catalog service and implements HTTP handlers
// for product CRUD, search and low-stock listing.
type productHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalogService *catalog.Service, logger *zap.Logger) *productHandler {
	return &productHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

func (h *productHandler) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, catalog.ErrDuplicateBarcode):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("catalog operation failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// handleCreateProduct handles the POST /products endpoint.
func (h *productHandler) handleCreateProduct(ctx *gin.Context) {
	var in catalog.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.catalogService.CreateProduct(ownerID(ctx), in)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product.View())
}

// handleGetProduct handles the GET /products/:id endpoint.
func (h *productHandler) handleGetProduct(ctx *gin.Context) {
	product, err := h.catalogService.GetProduct(ownerID(ctx), ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product.View())
}

// handleUpdateProduct handles the PUT /products/:id endpoint.
func (h *productHandler) handleUpdateProduct(ctx *gin.Context) {
	var in catalog.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.catalogService.UpdateProduct(ownerID(ctx), ctx.Param("id"), in)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product.View())
}

// handleDeleteProduct handles the DELETE /products/:id endpoint.
func (h *productHandler) handleDeleteProduct(ctx *gin.Context) {
	if err := h.catalogService.DeleteProduct(ownerID(ctx), ctx.Param("id")); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleListProducts handles the GET /products endpoint.
func (h *productHandler) handleListProducts(ctx *gin.Context) {
	products, err := h.catalogService.ListProducts(ownerID(ctx))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, catalog.Views(products))
}

// handleSearchProducts handles the GET /products/search?q= endpoint.
func (h *productHandler) handleSearchProducts(ctx *gin.Context) {
	products, err := h.catalogService.Search(ownerID(ctx), ctx.Query("q"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, catalog.Views(products))
}

// handleLowStock handles the GET /products/low-stock endpoint.
func (h *productHandler) handleLowStock(ctx *gin.Context) {
	products, err := h.catalogService.LowStock(ownerID(ctx))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, catalog.Views(products))
}
