package controllers

import (
	"github.com/gin-gonic/gin"

	"trendline/cache"
	"trendline/dto"
	"trendline/repository"
	"trendline/utils"
)

// StockPublisher receives stock-change notifications after a quantity
// overwrite succeeds
type StockPublisher interface {
	PublishStock(product dto.ProductDTO)
}

// QuantityController handles the stock report and stock overwrite endpoints
type QuantityController struct {
	products repository.ProductRepository
	cache    *cache.ResponseCache
	stock    StockPublisher
}

// NewQuantityController creates the quantity controller; stock may be nil
// when no subscriber transport is wired
func NewQuantityController(products repository.ProductRepository, responseCache *cache.ResponseCache, stock StockPublisher) *QuantityController {
	return &QuantityController{products: products, cache: responseCache, stock: stock}
}

// GetProductQuantity reports initial, sold and current stock for a product
func (qc *QuantityController) GetProductQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetProductQuantity called id=%d", id)

	key := cache.ProductQuantityKey(id)
	if cached, ok := qc.cache.Get(key); ok {
		if report, ok := cached.(dto.ProductQuantityDTO); ok {
			utils.LogDebug("GetProductQuantity: cache hit id=%d", id)
			utils.Success(c, "Quantity retrieved", report)
			return
		}
	}

	report, err := qc.products.GetQuantity(id)
	if err != nil {
		utils.LogError("GetProductQuantity: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve quantity", nil)
		return
	}
	if report == nil {
		utils.NotFound(c, "Product not found")
		return
	}

	qc.cache.Set(key, *report)
	utils.Success(c, "Quantity retrieved", *report)
}

// UpdateProductQuantity overwrites the stored stock level. The new value
// replaces the old outright; it is not a delta.
func (qc *QuantityController) UpdateProductQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateProductQuantity called id=%d", id)

	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid quantity data", err.Error())
		return
	}
	if req.Quantity < 0 {
		utils.BadRequest(c, "Invalid quantity", "quantity must not be negative")
		return
	}

	if err := qc.products.UpdateQuantity(id, req.Quantity); err != nil {
		if isRecordNotFound(err) {
			utils.NotFound(c, "Product not found")
			return
		}
		utils.LogError("UpdateProductQuantity: update failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to update quantity", nil)
		return
	}

	qc.cache.Remove(
		cache.ProductKey(id),
		cache.ProductQuantityKey(id),
		cache.AllProducts,
		cache.CountAvailableKey,
		cache.CountOutOfStockKey,
	)
	utils.LogInfo("UpdateProductQuantity: updated id=%d quantity=%d", id, req.Quantity)

	product, err := qc.products.GetByID(id)
	if err != nil || product == nil {
		utils.Success(c, "Quantity updated", gin.H{"id": id, "quantity": req.Quantity})
		return
	}

	d := dto.NewProductDTO(product)
	if qc.stock != nil {
		qc.stock.PublishStock(d)
	}
	utils.Success(c, "Quantity updated", d)
}
