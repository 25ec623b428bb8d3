package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"trendline/repository"
	"trendline/search"
	"trendline/utils"
)

// SearchController handles the full-text index endpoints. The index is
// optional; when it is not wired every endpoint answers 503.
type SearchController struct {
	products repository.ProductRepository
	index    search.ProductIndex
}

// NewSearchController creates the search controller; index may be nil
func NewSearchController(products repository.ProductRepository, index search.ProductIndex) *SearchController {
	return &SearchController{products: products, index: index}
}

func (sc *SearchController) available(c *gin.Context) bool {
	if sc.index == nil {
		utils.ServiceUnavailable(c, "Search index is not configured")
		return false
	}
	return true
}

// SyncIndex rebuilds the index from the relational store. The index only
// changes through this and the per-product endpoints, so it may lag behind
// the store between calls.
func (sc *SearchController) SyncIndex(c *gin.Context) {
	utils.LogInfo("SyncIndex called")
	if !sc.available(c) {
		return
	}

	products, err := sc.products.GetAll()
	if err != nil {
		utils.LogError("SyncIndex: query failed: %v", err)
		utils.InternalServerError(c, "Failed to load products", nil)
		return
	}

	if err := sc.index.Sync(c.Request.Context(), products); err != nil {
		utils.LogError("SyncIndex: sync failed: %v", err)
		utils.ServiceUnavailable(c, "Search index is unreachable")
		return
	}

	utils.LogInfo("SyncIndex: indexed %d products", len(products))
	utils.Success(c, "Index synchronized", gin.H{"indexed": len(products)})
}

// IndexProductRequest names the product to index
type IndexProductRequest struct {
	ID uint `json:"id" binding:"required"`
}

// IndexProduct writes one product into the index
func (sc *SearchController) IndexProduct(c *gin.Context) {
	var req IndexProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid index request", err.Error())
		return
	}
	id := req.ID
	utils.LogInfo("IndexProduct called id=%d", id)
	if !sc.available(c) {
		return
	}

	product, err := sc.products.GetByID(id)
	if err != nil {
		utils.LogError("IndexProduct: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to load product", nil)
		return
	}
	if product == nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := sc.index.Index(c.Request.Context(), product); err != nil {
		utils.LogError("IndexProduct: index failed id=%d: %v", id, err)
		utils.ServiceUnavailable(c, "Search index is unreachable")
		return
	}
	utils.Success(c, "Product indexed", gin.H{"id": id})
}

// RemoveFromIndex deletes one product's document; a document that was
// never indexed is not an error
func (sc *SearchController) RemoveFromIndex(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("RemoveFromIndex called id=%d", id)
	if !sc.available(c) {
		return
	}

	if err := sc.index.Delete(c.Request.Context(), id); err != nil {
		utils.LogError("RemoveFromIndex: delete failed id=%d: %v", id, err)
		utils.ServiceUnavailable(c, "Search index is unreachable")
		return
	}
	utils.Success(c, "Product removed from index", gin.H{"id": id})
}

// FullTextSearch queries the index by text with optional narrowing filters
func (sc *SearchController) FullTextSearch(c *gin.Context) {
	utils.LogInfo("FullTextSearch called")
	if !sc.available(c) {
		return
	}

	text := c.Query("query")
	if text == "" {
		utils.BadRequest(c, "Invalid search", "query must not be empty")
		return
	}

	query := search.Query{
		Text:   text,
		Fuzzy:  c.Query("fuzzy") == "true",
		SortBy: c.DefaultQuery("sortBy", search.SortRelevance),
	}
	switch query.SortBy {
	case search.SortRelevance, search.SortPriceAsc, search.SortPriceDesc:
	default:
		utils.BadRequest(c, "Invalid search", "sortBy must be relevance, price_asc or price_desc")
		return
	}

	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(c, "Invalid search", "categoryId must be a positive integer")
			return
		}
		categoryID := uint(id)
		query.CategoryID = &categoryID
	}
	if raw := c.Query("brandId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(c, "Invalid search", "brandId must be a positive integer")
			return
		}
		brandID := uint(id)
		query.BrandID = &brandID
	}
	if raw := c.Query("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.BadRequest(c, "Invalid search", "minPrice must be a number")
			return
		}
		query.PriceMin = &value
	}
	if raw := c.Query("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.BadRequest(c, "Invalid search", "maxPrice must be a number")
			return
		}
		query.PriceMax = &value
	}

	docs, err := sc.index.Search(c.Request.Context(), query)
	if err != nil {
		utils.LogError("FullTextSearch: query failed: %v", err)
		utils.ServiceUnavailable(c, "Search index is unreachable")
		return
	}

	utils.Success(c, "Search results retrieved", docs)
}
