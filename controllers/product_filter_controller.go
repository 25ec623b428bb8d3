package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"trendline/cache"
	"trendline/dto"
	"trendline/middleware"
	"trendline/models"
	"trendline/utils"
)

// filtered serves one cached product filter: on miss it runs query, caches
// the DTO list under key and responds with per-role list links attached
func (pc *ProductController) filtered(c *gin.Context, key string, query func() ([]models.Product, error)) {
	roles := middleware.RolesFromContext(c)

	if cached, ok := pc.cache.Get(key); ok {
		if dtos, ok := cached.([]dto.ProductDTO); ok {
			utils.LogDebug("filtered: cache hit key=%s", key)
			utils.Success(c, "Products retrieved", withListLinks(dtos, roles))
			return
		}
	}

	products, err := query()
	if err != nil {
		utils.LogError("filtered: query failed key=%s: %v", key, err)
		utils.InternalServerError(c, "Failed to retrieve products", nil)
		return
	}

	dtos := dto.NewProductDTOs(products)
	pc.cache.Set(key, dtos)

	utils.Success(c, "Products retrieved", withListLinks(dtos, roles))
}

// GetProductsByCategory lists products in the named category
func (pc *ProductController) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")
	utils.LogInfo("GetProductsByCategory called category=%s", category)
	pc.filtered(c, cache.ProductsByCategoryKey(category), func() ([]models.Product, error) {
		return pc.products.FindByCategory(category)
	})
}

// GetProductsByBrand lists products of the named brand
func (pc *ProductController) GetProductsByBrand(c *gin.Context) {
	brand := c.Param("brand")
	utils.LogInfo("GetProductsByBrand called brand=%s", brand)
	pc.filtered(c, cache.ProductsByBrandKey(brand), func() ([]models.Product, error) {
		return pc.products.FindByBrand(brand)
	})
}

// GetProductsByGender lists products for a gender; the value is matched
// case-insensitively and an unknown value yields an empty list
func (pc *ProductController) GetProductsByGender(c *gin.Context) {
	gender := c.Param("gender")
	utils.LogInfo("GetProductsByGender called gender=%s", gender)
	pc.filtered(c, cache.ProductsByGenderKey(gender), func() ([]models.Product, error) {
		return pc.products.FindByGender(gender)
	})
}

// GetProductsByPriceRange lists products priced within
// [minPrice, maxPrice]; an inverted range yields an empty set rather than
// an error
func (pc *ProductController) GetProductsByPriceRange(c *gin.Context) {
	minPrice, err := strconv.ParseFloat(c.Query("minPrice"), 64)
	if err != nil {
		utils.BadRequest(c, "Invalid price range", "minPrice must be a number")
		return
	}
	maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64)
	if err != nil {
		utils.BadRequest(c, "Invalid price range", "maxPrice must be a number")
		return
	}

	utils.LogInfo("GetProductsByPriceRange called min=%v max=%v", minPrice, maxPrice)
	pc.filtered(c, cache.ProductsByPriceRangeKey(minPrice, maxPrice), func() ([]models.Product, error) {
		return pc.products.FindByPriceRange(minPrice, maxPrice)
	})
}

// GetProductsBySize lists products with the given size label
func (pc *ProductController) GetProductsBySize(c *gin.Context) {
	size := c.Param("size")
	utils.LogInfo("GetProductsBySize called size=%s", size)
	pc.filtered(c, cache.ProductsBySizeKey(size), func() ([]models.Product, error) {
		return pc.products.FindBySize(size)
	})
}

// GetProductsByColor lists products with the given color
func (pc *ProductController) GetProductsByColor(c *gin.Context) {
	color := c.Param("color")
	utils.LogInfo("GetProductsByColor called color=%s", color)
	pc.filtered(c, cache.ProductsByColorKey(color), func() ([]models.Product, error) {
		return pc.products.FindByColor(color)
	})
}

// counted serves one cached count endpoint
func (pc *ProductController) counted(c *gin.Context, key string, query func() (int64, error)) {
	if cached, ok := pc.cache.Get(key); ok {
		if count, ok := cached.(int64); ok {
			utils.LogDebug("counted: cache hit key=%s", key)
			utils.Success(c, "Count retrieved", gin.H{"count": count})
			return
		}
	}

	count, err := query()
	if err != nil {
		utils.LogError("counted: query failed key=%s: %v", key, err)
		utils.InternalServerError(c, "Failed to count products", nil)
		return
	}

	pc.cache.Set(key, count)
	utils.Success(c, "Count retrieved", gin.H{"count": count})
}

// CountProductsByCategory counts products in the named category
func (pc *ProductController) CountProductsByCategory(c *gin.Context) {
	category := c.Param("category")
	utils.LogInfo("CountProductsByCategory called category=%s", category)
	pc.counted(c, cache.CountByCategoryKey(category), func() (int64, error) {
		return pc.products.CountByCategory(category)
	})
}

// CountProductsByBrand counts products of the named brand
func (pc *ProductController) CountProductsByBrand(c *gin.Context) {
	brand := c.Param("brand")
	utils.LogInfo("CountProductsByBrand called brand=%s", brand)
	pc.counted(c, cache.CountByBrandKey(brand), func() (int64, error) {
		return pc.products.CountByBrand(brand)
	})
}

// CountAvailableProducts counts products with stock on hand
func (pc *ProductController) CountAvailableProducts(c *gin.Context) {
	utils.LogInfo("CountAvailableProducts called")
	pc.counted(c, cache.CountAvailableKey, pc.products.CountAvailable)
}

// CountOutOfStockProducts counts products with zero stock
func (pc *ProductController) CountOutOfStockProducts(c *gin.Context) {
	utils.LogInfo("CountOutOfStockProducts called")
	pc.counted(c, cache.CountOutOfStockKey, pc.products.CountOutOfStock)
}

// SearchProducts narrows the catalog by the conjunction of every supplied
// query filter; absent parameters impose no constraint
func (pc *ProductController) SearchProducts(c *gin.Context) {
	var params dto.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.BadRequest(c, "Invalid search parameters", err.Error())
		return
	}

	utils.LogInfo("SearchProducts called")
	pc.filtered(c, cache.SearchProductsKey(params), func() ([]models.Product, error) {
		return pc.products.Search(params)
	})
}
